package lesson

import (
	"encoding/json"
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core"
)

var (
	oneCorrectTag  = "onecorrect"
	oneCorrectText = "exactly one choice must be correct"
)

// InitValidators registers lesson-specific struct checks.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(quizItemStructValidation, QuizItem{})
	core.RegisterCustomTranslation(validate, translator, oneCorrectTag, oneCorrectText)
}

// quizItemStructValidation expects exactly one correct choice per question.
func quizItemStructValidation(sl validator.StructLevel) {
	item, ok := sl.Current().Interface().(QuizItem)
	if !ok {
		return
	}
	var correct int
	for _, c := range item.Choices {
		if c.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		sl.ReportError(item.Choices, "choices", "Choices", oneCorrectTag, "")
	}
}

// Decode parses a lesson document and runs the structural checks every stored document must pass.
// Any failure is reported as ErrInvalid.
func Decode(data []byte) (Document, error) {
	var doc struct {
		Lessons *[]json.RawMessage `json:"lessons"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, newInvalidError(errors.Wrap(err, "parsing document"))
	}
	if doc.Lessons == nil {
		return Document{}, newInvalidError(core.NewValidationError(nil,
			core.FieldError{Field: "lessons", Error: "this field is required"}))
	}

	out := Document{Lessons: make([]Lesson, 0, len(*doc.Lessons))}
	var flds []core.FieldError
	for i, raw := range *doc.Lessons {
		var l Lesson
		if err := json.Unmarshal(raw, &l); err != nil {
			fld := fmt.Sprintf("lessons[%d]", i)
			var mfErr *MissingFieldError
			if errors.As(err, &mfErr) {
				fld += "." + mfErr.Field
				flds = append(flds, core.FieldError{Field: fld, Error: "this field is required"})
				continue
			}
			flds = append(flds, core.FieldError{Field: fld, Error: err.Error()})
			continue
		}
		out.Lessons = append(out.Lessons, l)
	}
	if len(flds) > 0 {
		return Document{}, newInvalidError(core.NewValidationError(nil, flds...))
	}
	if err := Check(out.Lessons); err != nil {
		return Document{}, newInvalidError(err)
	}
	return out, nil
}

// Check verifies ids and titles: non-empty, ids unique.
func Check(lessons []Lesson) error {
	var flds []core.FieldError
	seen := make(map[string]int, len(lessons))
	for i, l := range lessons {
		if core.CleanString(l.ID) == "" {
			flds = append(flds, core.FieldError{Field: fmt.Sprintf("lessons[%d].id", i), Error: "this field cannot be blank"})
		} else if first, dup := seen[l.ID]; dup {
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("lessons[%d].id", i),
				Error: fmt.Sprintf("duplicate id %q (first at lessons[%d])", l.ID, first),
			})
		} else {
			seen[l.ID] = i
		}
		if core.CleanString(l.Title) == "" {
			flds = append(flds, core.FieldError{Field: fmt.Sprintf("lessons[%d].title", i), Error: "this field cannot be blank"})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// Lint runs the full validator over every lesson and returns the findings as field errors.
// Findings are advisory: a document with lint findings still loads.
func Lint(lessons []Lesson, validate *validator.Validate, translator ut.Translator) []core.FieldError {
	var flds []core.FieldError
	for i := range lessons {
		err := validate.Struct(lessons[i])
		if err == nil {
			continue
		}
		vErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			flds = append(flds, core.FieldError{Field: fmt.Sprintf("lessons[%d]", i), Error: err.Error()})
			continue
		}
		for _, vErr := range vErrs {
			ns := vErr.Namespace()
			if dot := strings.IndexByte(ns, '.'); dot >= 0 {
				ns = ns[dot+1:] // drop the "Lesson." root
			}
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("lessons[%d](%s).%s", i, lessons[i].ID, ns),
				Error: vErr.Translate(translator),
			})
		}
	}
	return flds
}
