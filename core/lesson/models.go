package lesson

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core/obfuscate"
)

// DefaultCategory is used by renumbering for lessons that have not been categorized yet.
const DefaultCategory = "其他"

// requiredFields must be present on every stored lesson.
var requiredFields = []string{"id", "title", "pine_code", "python_code", "quiz"}

// known keys, anything else on a lesson is carried in Lesson.Extra
var knownFields = map[string]bool{
	"id": true, "title": true, "subtitle": true, "category": true,
	"concept": true, "concept_extra": true, "summary": true,
	"pine_code": true, "python_code": true, "quiz": true,
	"isLocked": true, "isEncrypted": true,
}

type (
	Choice struct {
		Text      string `json:"text" validate:"required"`
		IsCorrect bool   `json:"isCorrect"`
	}

	QuizItem struct {
		Question string   `json:"q" validate:"required"`
		Choices  []Choice `json:"choices" validate:"min=2,dive"`
		Explain  string   `json:"explain"`
	}

	Lesson struct {
		ID           string         `json:"id" validate:"required,notblank"`
		Title        string         `json:"title" validate:"required,notblank"`
		Subtitle     string         `json:"subtitle,omitempty"`
		Category     string         `json:"category,omitempty"`
		Concept      obfuscate.Text `json:"concept"`
		ConceptExtra obfuscate.Text `json:"concept_extra"`
		Summary      []string       `json:"summary,omitempty"`
		PineCode     obfuscate.Text `json:"pine_code"`
		PythonCode   obfuscate.Text `json:"python_code"`
		Quiz         []QuizItem     `json:"quiz" validate:"dive"`
		IsLocked     bool           `json:"isLocked,omitempty"`
		IsEncrypted  bool           `json:"isEncrypted,omitempty"`

		// Extra holds keys this package does not know about, written back untouched.
		Extra map[string]json.RawMessage `json:"-"`
	}

	// Document is the on-disk shape: {"lessons": [...]}.
	Document struct {
		Lessons []Lesson `json:"lessons"`
	}
)

// ContentField names one of the four obfuscatable fields.
type ContentField string

const (
	FieldConcept      ContentField = "concept"
	FieldConceptExtra ContentField = "concept_extra"
	FieldPineCode     ContentField = "pine_code"
	FieldPythonCode   ContentField = "python_code"
)

var ContentFields = []ContentField{FieldConcept, FieldConceptExtra, FieldPineCode, FieldPythonCode}

// Content returns a pointer to the named content field.
func (l *Lesson) Content(f ContentField) *obfuscate.Text {
	switch f {
	case FieldConcept:
		return &l.Concept
	case FieldConceptExtra:
		return &l.ConceptExtra
	case FieldPineCode:
		return &l.PineCode
	case FieldPythonCode:
		return &l.PythonCode
	}
	return nil
}

// Clone returns a deep copy, transforms never share slices with their input.
func (l Lesson) Clone() Lesson {
	c := l
	if l.Summary != nil {
		c.Summary = append([]string(nil), l.Summary...)
	}
	if l.Quiz != nil {
		c.Quiz = make([]QuizItem, len(l.Quiz))
		for i, q := range l.Quiz {
			q.Choices = append([]Choice(nil), q.Choices...)
			c.Quiz[i] = q
		}
	}
	if l.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(l.Extra))
		for k, v := range l.Extra {
			c.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// CloneAll deep-copies a lesson list.
func CloneAll(lessons []Lesson) []Lesson {
	out := make([]Lesson, len(lessons))
	for i, l := range lessons {
		out[i] = l.Clone()
	}
	return out
}

// IDs returns lesson ids in order.
func IDs(lessons []Lesson) []string {
	ids := make([]string, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	return ids
}

// Find returns the index of the lesson with id, or -1.
func Find(lessons []Lesson, id string) int {
	for i := range lessons {
		if lessons[i].ID == id {
			return i
		}
	}
	return -1
}

// MissingFieldError reports a required key absent from a stored lesson.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field " + e.Field
}

type lessonAlias Lesson

func (l *Lesson) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, name := range requiredFields {
		raw, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return &MissingFieldError{Field: name}
		}
	}

	var a lessonAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	for k, v := range fields {
		if knownFields[k] {
			continue
		}
		if a.Extra == nil {
			a.Extra = make(map[string]json.RawMessage)
		}
		a.Extra[k] = v
	}
	*l = Lesson(a)
	return nil
}

// wireLesson fixes the key order on disk and drops an empty concept_extra.
type wireLesson struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle,omitempty"`
	Category     string          `json:"category,omitempty"`
	Concept      obfuscate.Text  `json:"concept"`
	ConceptExtra *obfuscate.Text `json:"concept_extra,omitempty"`
	Summary      []string        `json:"summary,omitempty"`
	PineCode     obfuscate.Text  `json:"pine_code"`
	PythonCode   obfuscate.Text  `json:"python_code"`
	Quiz         []QuizItem      `json:"quiz"`
	IsLocked     bool            `json:"isLocked,omitempty"`
	IsEncrypted  bool            `json:"isEncrypted,omitempty"`
}

func (l Lesson) MarshalJSON() ([]byte, error) {
	w := wireLesson{
		ID:          l.ID,
		Title:       l.Title,
		Subtitle:    l.Subtitle,
		Category:    l.Category,
		Concept:     l.Concept,
		Summary:     l.Summary,
		PineCode:    l.PineCode,
		PythonCode:  l.PythonCode,
		Quiz:        l.Quiz,
		IsLocked:    l.IsLocked,
		IsEncrypted: l.IsEncrypted,
	}
	if !l.ConceptExtra.IsEmpty() {
		extra := l.ConceptExtra
		w.ConceptExtra = &extra
	}
	if w.Quiz == nil {
		w.Quiz = []QuizItem{}
	}
	b, err := encodeNoEscape(w)
	if err != nil {
		return nil, err
	}
	if len(l.Extra) == 0 {
		return b, nil
	}

	keys := make([]string, 0, len(l.Extra))
	for k := range l.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(b[:len(b)-1]) // drop "}"
	for _, k := range keys {
		name, err := encodeNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(l.Extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encoding json")
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Marshal serializes a document the way it is kept on disk:
// two-space indentation, HTML and non-ASCII left as is, trailing newline.
func Marshal(doc Document) ([]byte, error) {
	if doc.Lessons == nil {
		doc.Lessons = []Lesson{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "encoding lesson document")
	}
	return buf.Bytes(), nil
}
