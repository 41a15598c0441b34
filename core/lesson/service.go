package lesson

import (
	"bytes"
	"context"
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/xufeiok/PineScript-Study/core"
	"github.com/xufeiok/PineScript-Study/core/obfuscate"
)

type (
	// Transform computes a new lesson list. It must not touch its input.
	Transform func(lessons []Lesson) ([]Lesson, error)

	// Change is the outcome of applying a Transform to a stored document.
	Change struct {
		Location string
		Before   []byte
		After    []byte
		Written  bool
	}

	PublishReport struct {
		Source     string
		Target     string
		Migrated   bool     // source of truth was cloned from the published document
		Encrypted  []string // titles of the sealed lessons
		FieldCount int
		Total      int
	}

	Service interface {
		Apply(ctx context.Context, repo Repository, tf Transform, dryRun bool) (Change, error)
		Insert(ctx context.Context, repo Repository, batch []Lesson, opts InsertOptions, dryRun bool) (InsertReport, Change, error)
		Renumber(ctx context.Context, repo Repository, scheme TitleScheme, dryRun bool) (Change, error)
		Reorganize(ctx context.Context, repo Repository, plan Plan, dryRun bool) (Change, error)
		Publish(ctx context.Context, source, target Repository) (PublishReport, error)
		Reveal(ctx context.Context, repo Repository, id string) (Lesson, error)
		Lint(ctx context.Context, repo Repository) ([]core.FieldError, int, error)
	}

	service struct {
		codec      *obfuscate.Codec
		logger     core.Logger
		validate   *validator.Validate
		translator ut.Translator
	}
)

var _ Service = (*service)(nil)

func NewService(codec *obfuscate.Codec, logger core.Logger, validate *validator.Validate, translator ut.Translator) Service {
	return &service{
		codec:      codec,
		logger:     logger,
		validate:   validate,
		translator: translator,
	}
}

// Changed reports whether the transform altered the serialized document.
func (c Change) Changed() bool {
	return !bytes.Equal(c.Before, c.After)
}

// Diff renders the change as a unified diff.
func (c Change) Diff() (string, error) {
	if !c.Changed() {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(c.Before)),
		B:        difflib.SplitLines(string(c.After)),
		FromFile: c.Location,
		ToFile:   c.Location + " (new)",
		Context:  2,
	})
}

// Apply loads the document, runs tf fully in memory and only then writes the result.
// Nothing is written on error, on a dry run, or when the output is identical.
func (svc *service) Apply(ctx context.Context, repo Repository, tf Transform, dryRun bool) (Change, error) {
	change := Change{Location: repo.Location()}

	doc, err := repo.Load(ctx)
	if err != nil {
		return change, errors.Wrap(err, "loading lessons")
	}
	if change.Before, err = Marshal(doc); err != nil {
		return change, err
	}

	lessons, err := tf(doc.Lessons)
	if err != nil {
		return change, errors.Wrap(err, "transforming lessons")
	}
	if err = Check(lessons); err != nil {
		return change, errors.Wrap(newInvalidError(err), "checking transformed lessons")
	}
	newDoc := Document{Lessons: lessons}
	if change.After, err = Marshal(newDoc); err != nil {
		return change, err
	}

	if dryRun || !change.Changed() {
		return change, nil
	}
	if err = repo.Save(ctx, newDoc); err != nil {
		return change, errors.Wrap(err, "saving lessons")
	}
	change.Written = true
	svc.logger.Info(fmt.Sprintf("lessons written to %s", change.Location))
	return change, nil
}

func (svc *service) Insert(ctx context.Context, repo Repository, batch []Lesson, opts InsertOptions, dryRun bool) (InsertReport, Change, error) {
	if err := Check(batch); err != nil {
		return InsertReport{}, Change{}, errors.Wrap(newInvalidError(err), "checking batch")
	}
	var report InsertReport
	change, err := svc.Apply(ctx, repo, func(lessons []Lesson) ([]Lesson, error) {
		var out []Lesson
		out, report = Insert(lessons, batch, opts)
		return out, nil
	}, dryRun)
	return report, change, err
}

func (svc *service) Renumber(ctx context.Context, repo Repository, scheme TitleScheme, dryRun bool) (Change, error) {
	if err := scheme.Validate(); err != nil {
		return Change{}, err
	}
	return svc.Apply(ctx, repo, func(lessons []Lesson) ([]Lesson, error) {
		return Renumber(lessons, scheme), nil
	}, dryRun)
}

func (svc *service) Reorganize(ctx context.Context, repo Repository, plan Plan, dryRun bool) (Change, error) {
	if err := plan.Validate(); err != nil {
		return Change{}, err
	}
	return svc.Apply(ctx, repo, func(lessons []Lesson) ([]Lesson, error) {
		return Reorganize(lessons, plan), nil
	}, dryRun)
}

// Publish seals the content of locked lessons from source into target.
// source is only ever read; when it does not exist yet, target is cloned into it first.
// A source that already holds sealed text is refused before anything is written.
func (svc *service) Publish(ctx context.Context, source, target Repository) (PublishReport, error) {
	report := PublishReport{Source: source.Location(), Target: target.Location()}

	exists, err := source.Exists(ctx)
	if err != nil {
		return report, errors.Wrap(err, "checking source of truth")
	}
	var (
		raw []byte
		doc Document
	)
	if exists {
		if doc, err = source.Load(ctx); err != nil {
			return report, errors.Wrap(err, "loading source of truth")
		}
	} else {
		if raw, err = target.ReadRaw(ctx); err != nil {
			return report, errors.Wrap(err, "reading published lessons")
		}
		if doc, err = Decode(raw); err != nil {
			return report, errors.Wrap(err, "loading published lessons")
		}
	}
	report.Total = len(doc.Lessons)

	published := Document{Lessons: CloneAll(doc.Lessons)}
	for i := range published.Lessons {
		l := &published.Lessons[i]
		if !l.IsLocked {
			continue
		}
		for _, f := range ContentFields {
			txt := l.Content(f)
			if txt.IsEmpty() {
				continue
			}
			sealed, err := svc.codec.Seal(*txt)
			if err != nil {
				return report, errors.Wrapf(err, "sealing %s of lesson %q", f, l.ID)
			}
			*txt = sealed
			report.FieldCount++
		}
		l.IsEncrypted = true
		report.Encrypted = append(report.Encrypted, l.Title)
	}

	if !exists {
		if err = source.WriteRaw(ctx, raw); err != nil {
			return report, errors.Wrap(err, "creating source of truth")
		}
		report.Migrated = true
		svc.logger.Info(fmt.Sprintf("source of truth created from %s", target.Location()))
	}
	if err = target.Save(ctx, published); err != nil {
		return report, errors.Wrap(err, "writing published lessons")
	}
	svc.logger.Info(fmt.Sprintf("published %d lessons (%d encrypted) to %s", report.Total, len(report.Encrypted), report.Target))
	return report, nil
}

// Reveal returns lesson id with every sealed field opened.
func (svc *service) Reveal(ctx context.Context, repo Repository, id string) (Lesson, error) {
	doc, err := repo.Load(ctx)
	if err != nil {
		return Lesson{}, errors.Wrap(err, "loading lessons")
	}
	i := Find(doc.Lessons, id)
	if i < 0 {
		return Lesson{}, errors.Errorf("lesson %q not found in %s", id, repo.Location())
	}
	l := doc.Lessons[i].Clone()
	for _, f := range ContentFields {
		txt := l.Content(f)
		*txt = svc.codec.Open(*txt)
	}
	return l, nil
}

// Lint loads the document and returns advisory findings plus the lesson count.
func (svc *service) Lint(ctx context.Context, repo Repository) ([]core.FieldError, int, error) {
	doc, err := repo.Load(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "loading lessons")
	}
	return Lint(doc.Lessons, svc.validate, svc.translator), len(doc.Lessons), nil
}
