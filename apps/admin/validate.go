package main

import (
	"context"
	"fmt"
)

// runValidate loads the document, which enforces the hard rules, then prints advisory findings.
func (cli *commandLine) runValidate(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("validate")
	file := cmd.String("file", "", "Lesson document to check (default: source of truth, else published).")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}

	repo, err := cli.editable(ctx, *file)
	if err != nil {
		return err
	}
	findings, total, err := cli.svc.Lint(ctx, repo)
	if err != nil {
		return err
	}
	for _, f := range findings {
		fmt.Fprintf(cli.out, "warning: %s: %s\n", f.Field, f.Error)
	}
	fmt.Fprintf(cli.out, "%s: %d lessons, %d warnings\n", repo.Location(), total, len(findings))
	return nil
}
