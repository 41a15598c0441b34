// Package appfs bundles the course plan and lesson batches shipped with the binaries.
package appfs

import (
	"bytes"
	"embed"

	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core/lesson"
)

const (
	CoursePlan      = "plans/course.yaml"
	AdvancedLessons = "batches/advanced_lessons.json"
)

//go:embed plans batches
var files embed.FS

// ReadFile returns an embedded file by its path under fs/.
func ReadFile(name string) ([]byte, error) {
	data, err := files.ReadFile(name)
	return data, errors.Wrapf(err, "reading embedded %s", name)
}

// DefaultPlan is the course layout bundled with the binaries.
func DefaultPlan() (lesson.Plan, error) {
	data, err := ReadFile(CoursePlan)
	if err != nil {
		return lesson.Plan{}, err
	}
	return lesson.LoadPlan(bytes.NewReader(data))
}

// DefaultBatch is the advanced lessons batch bundled with the binaries.
func DefaultBatch() ([]lesson.Lesson, error) {
	data, err := ReadFile(AdvancedLessons)
	if err != nil {
		return nil, err
	}
	doc, err := lesson.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding embedded %s", AdvancedLessons)
	}
	return doc.Lessons, nil
}
