package main

import (
	"context"
)

func (cli *commandLine) runRenumber(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("renumber")
	file := cmd.String("file", "", "Lesson document to edit (default: source of truth, else published).")
	planFile := cmd.String("plan", "", "YAML plan holding the title scheme (default: bundled course plan).")
	dryRun := cmd.Bool("dry-run", false, "Print the resulting diff without writing.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}

	plan, err := cli.loadPlan(*planFile)
	if err != nil {
		return err
	}
	repo, err := cli.editable(ctx, *file)
	if err != nil {
		return err
	}
	change, err := cli.svc.Renumber(ctx, repo, plan.Titles, *dryRun)
	if err != nil {
		return err
	}
	return cli.report(change, *dryRun)
}

func (cli *commandLine) runReorganize(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("reorganize")
	file := cmd.String("file", "", "Lesson document to edit (default: source of truth, else published).")
	planFile := cmd.String("plan", "", "YAML category plan (default: bundled course plan).")
	dryRun := cmd.Bool("dry-run", false, "Print the resulting diff without writing.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}

	plan, err := cli.loadPlan(*planFile)
	if err != nil {
		return err
	}
	repo, err := cli.editable(ctx, *file)
	if err != nil {
		return err
	}
	change, err := cli.svc.Reorganize(ctx, repo, plan, *dryRun)
	if err != nil {
		return err
	}
	return cli.report(change, *dryRun)
}
