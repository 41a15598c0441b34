package progress

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core"
)

var (
	// ErrNotFound means no progress document exists yet. It is an empty state, not a failure.
	ErrNotFound = errors.New("progress data not found")
)

type (
	// Repository stores the whole user → progress map in one document.
	Repository interface {
		Location() string
		// Load returns ErrNotFound when nothing has been saved yet.
		Load(ctx context.Context) (Document, error)
		// Update runs fn over the current map (empty if missing) and persists the result.
		Update(ctx context.Context, fn func(Document) error) error
	}

	Service interface {
		Get(ctx context.Context, user string) UserProgress
		Save(ctx context.Context, user string, rec Record) error
	}

	service struct {
		repo   Repository
		logger core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, logger core.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// Get never fails: unknown users, a missing store and an unreadable store all yield empty progress.
func (svc *service) Get(ctx context.Context, user string) UserProgress {
	user = UserOrDefault(user)
	empty := UserProgress{User: user, Progress: Empty()}

	doc, err := svc.repo.Load(ctx)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			svc.logger.Warn(fmt.Sprintf("reading progress from %s", svc.repo.Location()), err)
		}
		return empty
	}
	rec, ok := doc[user]
	if !ok || len(rec) == 0 {
		return empty
	}
	return UserProgress{User: user, Progress: rec}
}

// Save overwrites the progress of user. There is no merge with what was stored before.
func (svc *service) Save(ctx context.Context, user string, rec Record) error {
	err := svc.repo.Update(ctx, func(doc Document) error {
		doc[user] = append(Record(nil), rec...)
		return nil
	})
	return errors.Wrapf(err, "saving progress of %q", user)
}
