package inmemdb

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core/progress"
)

type progressRepository struct {
	db *table
}

func NewProgressRepository(db *DB) progress.Repository {
	return &progressRepository{db: db.progress}
}

// FailProgressWrites makes every progress update fail with err (nil restores writes).
func (db *DB) FailProgressWrites(err error) {
	db.progress.failWrites(err)
}

// SetProgressRaw replaces the stored progress document with data as is.
func (db *DB) SetProgressRaw(data []byte) {
	db.progress.mutex.Lock()
	defer db.progress.mutex.Unlock()
	db.progress.data = append([]byte(nil), data...)
}

func (repo *progressRepository) Location() string { return "inmem:progress" }

func (repo *progressRepository) Load(ctx context.Context) (progress.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := repo.db.read()
	if !ok {
		return nil, progress.ErrNotFound
	}
	return decodeProgress(data)
}

func (repo *progressRepository) Update(ctx context.Context, fn func(progress.Document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	doc := make(progress.Document)
	if repo.db.data != nil {
		var err error
		if doc, err = decodeProgress(repo.db.data); err != nil {
			return err
		}
	}
	if err := fn(doc); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding progress")
	}
	return repo.db.writeLocked(data)
}

func decodeProgress(data []byte) (progress.Document, error) {
	var doc progress.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing progress")
	}
	if doc == nil {
		doc = make(progress.Document)
	}
	return doc, nil
}
