// Package testutil holds fixtures shared by the test suites.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/xufeiok/PineScript-Study/core"
	"github.com/xufeiok/PineScript-Study/core/lesson"
	"github.com/xufeiok/PineScript-Study/core/obfuscate"
)

// NewLesson returns a minimal valid lesson in category.
func NewLesson(id, title, category string) lesson.Lesson {
	return lesson.Lesson{
		ID:         id,
		Title:      title,
		Category:   category,
		Concept:    obfuscate.Plain("<h3>" + title + "</h3>"),
		PineCode:   obfuscate.Plain(fmt.Sprintf("//@version=5\nindicator(%q)", id)),
		PythonCode: obfuscate.Plain("print('" + id + "')"),
		Quiz: []lesson.QuizItem{{
			Question: "what is " + id + "?",
			Choices: []lesson.Choice{
				{Text: "this", IsCorrect: true},
				{Text: "that"},
			},
			Explain: "because",
		}},
	}
}

// LockedLesson is NewLesson with isLocked set.
func LockedLesson(id, title, category string) lesson.Lesson {
	l := NewLesson(id, title, category)
	l.IsLocked = true
	return l
}

// MarshalLessons serializes lessons the way the store does.
func MarshalLessons(t *testing.T, lessons ...lesson.Lesson) []byte {
	t.Helper()
	data, err := lesson.Marshal(lesson.Document{Lessons: lessons})
	if err != nil {
		t.Fatalf("MarshalLessons() failed: %v", err)
	}
	return data
}

// WriteFile writes data to name under dir, creating parents, and returns the full path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

// SaveLessons stores lessons through repo.
func SaveLessons(t *testing.T, repo lesson.Repository, lessons ...lesson.Lesson) {
	t.Helper()
	if err := repo.Save(context.Background(), lesson.Document{Lessons: lessons}); err != nil {
		t.Fatalf("SaveLessons() failed: %v", err)
	}
}

// LoadLessons reads back what repo holds.
func LoadLessons(t *testing.T, repo lesson.Repository) []lesson.Lesson {
	t.Helper()
	doc, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("LoadLessons() failed: %v", err)
	}
	return doc.Lessons
}

// NewValidator returns a validator with every custom rule registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	lesson.InitValidators(validate, translator)
	return validate, translator
}

// Logger records messages per level.
type Logger struct {
	mu      sync.Mutex
	entries []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+": "+msg)
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log("DEBUG", msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log("INFO", msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log("WARN", msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log("ERROR", msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log("FATAL", msg) }

// Count returns how many entries were logged at level.
func (l *Logger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int
	for _, e := range l.entries {
		if strings.HasPrefix(e, level+": ") {
			n++
		}
	}
	return n
}
