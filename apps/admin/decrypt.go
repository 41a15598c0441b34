package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/xufeiok/PineScript-Study/core/lesson"
)

// runDecrypt prints the content of a lesson as a reader of the published document sees it.
func (cli *commandLine) runDecrypt(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("decrypt")
	id := cmd.String("id", "", "Id of the lesson to print.")
	file := cmd.String("file", "", "Lesson document to read (default: published).")
	field := cmd.String("field", "", "Only print this field: concept, concept_extra, pine_code or python_code.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}
	if *id == "" {
		cmd.Usage()
		return errHelp
	}

	fields := lesson.ContentFields
	if *field != "" {
		f := lesson.ContentField(*field)
		if (&lesson.Lesson{}).Content(f) == nil {
			return errors.Errorf("unknown field %q", *field)
		}
		fields = []lesson.ContentField{f}
	}

	repo := cli.published
	if *file != "" {
		repo = cli.openRepo(*file)
	}
	l, err := cli.svc.Reveal(ctx, repo, *id)
	if err != nil {
		return err
	}

	if len(fields) == 1 {
		fmt.Fprintln(cli.out, l.Content(fields[0]).String())
		return nil
	}
	fmt.Fprintf(cli.out, "# %s\n", l.Title)
	for _, f := range fields {
		txt := l.Content(f)
		if txt.IsEmpty() {
			continue
		}
		fmt.Fprintf(cli.out, "\n== %s ==\n%s\n", f, txt.String())
	}
	return nil
}
