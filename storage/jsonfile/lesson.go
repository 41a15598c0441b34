package jsonfile

import (
	"context"

	"github.com/xufeiok/PineScript-Study/core/lesson"
)

type LessonRepository struct {
	path string
}

var _ lesson.Repository = (*LessonRepository)(nil)

func NewLessonRepository(path string) *LessonRepository {
	return &LessonRepository{path: path}
}

func (repo *LessonRepository) Location() string { return repo.path }

func (repo *LessonRepository) Exists(ctx context.Context) (bool, error) {
	return exists(ctx, repo.path)
}

func (repo *LessonRepository) Load(ctx context.Context) (lesson.Document, error) {
	data, err := repo.ReadRaw(ctx)
	if err != nil {
		return lesson.Document{}, err
	}
	return lesson.Decode(data)
}

func (repo *LessonRepository) Save(ctx context.Context, doc lesson.Document) error {
	data, err := lesson.Marshal(doc)
	if err != nil {
		return err
	}
	return write(ctx, repo.path, data)
}

func (repo *LessonRepository) ReadRaw(ctx context.Context) ([]byte, error) {
	return read(ctx, repo.path, lesson.ErrNotFound)
}

func (repo *LessonRepository) WriteRaw(ctx context.Context, data []byte) error {
	return write(ctx, repo.path, data)
}
