package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/xufeiok/PineScript-Study/core/lesson"
)

func (cli *commandLine) runInsert(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("insert")
	file := cmd.String("file", "", "Lesson document to edit (default: source of truth, else published).")
	batch := cmd.String("batch", "", "JSON document holding the lessons to add (default: bundled advanced lessons).")
	sentinel := cmd.String("sentinel", "", "Id new lessons are inserted before (default: the plan's sentinel).")
	replace := cmd.Bool("replace", false, "Refresh lessons that already exist instead of skipping them.")
	dryRun := cmd.Bool("dry-run", false, "Print the resulting diff without writing.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}

	lessons, err := cli.loadBatch(ctx, *batch)
	if err != nil {
		return err
	}
	if *sentinel == "" {
		plan, err := cli.loadPlan("")
		if err != nil {
			return err
		}
		*sentinel = plan.Sentinel
	}
	repo, err := cli.editable(ctx, *file)
	if err != nil {
		return err
	}

	report, change, err := cli.svc.Insert(ctx, repo, lessons, lesson.InsertOptions{Sentinel: *sentinel, Replace: *replace}, *dryRun)
	if err != nil {
		return err
	}
	cli.printIDs("added", report.Added)
	cli.printIDs("replaced", report.Replaced)
	cli.printIDs("skipped", report.Skipped)
	return cli.report(change, *dryRun)
}

func (cli *commandLine) printIDs(what string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(cli.out, "%s %d: %s\n", what, len(ids), strings.Join(ids, ", "))
}
