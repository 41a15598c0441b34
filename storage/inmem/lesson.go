package inmemdb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core/lesson"
)

type lessonRepository struct {
	name string
	db   *table
}

// NewLessonRepository returns a repository over the named in-memory document.
func NewLessonRepository(db *DB, name string) lesson.Repository {
	return &lessonRepository{name: name, db: db.lessonTable(name)}
}

// FailLessonWrites makes every write to the named document fail with err (nil restores writes).
func (db *DB) FailLessonWrites(name string, err error) {
	db.lessonTable(name).failWrites(err)
}

func (repo *lessonRepository) Location() string { return "inmem:" + repo.name }

func (repo *lessonRepository) Exists(ctx context.Context) (bool, error) {
	_, ok := repo.db.read()
	return ok, ctx.Err()
}

func (repo *lessonRepository) Load(ctx context.Context) (lesson.Document, error) {
	data, err := repo.ReadRaw(ctx)
	if err != nil {
		return lesson.Document{}, err
	}
	return lesson.Decode(data)
}

func (repo *lessonRepository) Save(ctx context.Context, doc lesson.Document) error {
	data, err := lesson.Marshal(doc)
	if err != nil {
		return err
	}
	return repo.WriteRaw(ctx, data)
}

func (repo *lessonRepository) ReadRaw(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := repo.db.read()
	if !ok {
		return nil, errors.WithMessage(lesson.ErrNotFound, repo.Location())
	}
	return data, nil
}

func (repo *lessonRepository) WriteRaw(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Wrapf(repo.db.write(data), "writing %s", repo.Location())
}
