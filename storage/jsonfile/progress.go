package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core/progress"
)

// ProgressRepository keeps every user's progress in a single file.
// Updates are serialized inside this process; writers in other processes still race
// and the last one wins.
type ProgressRepository struct {
	path string
	mu   sync.Mutex
}

var _ progress.Repository = (*ProgressRepository)(nil)

func NewProgressRepository(path string) *ProgressRepository {
	return &ProgressRepository{path: path}
}

func (repo *ProgressRepository) Location() string { return repo.path }

func (repo *ProgressRepository) Load(ctx context.Context) (progress.Document, error) {
	data, err := read(ctx, repo.path, progress.ErrNotFound)
	if err != nil {
		return nil, err
	}
	var doc progress.Document
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", repo.path)
	}
	if doc == nil {
		doc = make(progress.Document)
	}
	return doc, nil
}

func (repo *ProgressRepository) Update(ctx context.Context, fn func(progress.Document) error) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	doc, err := repo.Load(ctx)
	if err != nil {
		if errors.Cause(err) != progress.ErrNotFound {
			return err
		}
		doc = make(progress.Document)
	}
	if err = fn(doc); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err = enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding progress")
	}
	return write(ctx, repo.path, buf.Bytes())
}
