package main

import (
	"context"
	"fmt"
	"os"
)

func (cli *commandLine) runPublish(ctx context.Context, args []string) error {
	cmd := cli.newFlagSet("publish")
	yes := cmd.Bool("yes", false, "Do not ask for confirmation.")
	if err := cli.parse(cmd, args); err != nil {
		return err
	}

	if !*yes && isTerminalFunc(int(os.Stdin.Fd())) {
		question := fmt.Sprintf("Encrypt locked lessons of %s into %s?", cli.source.Location(), cli.published.Location())
		ok, err := confirmFunc(os.Stdin, cli.out, question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cli.out, "aborted")
			return nil
		}
	}

	report, err := cli.svc.Publish(ctx, cli.source, cli.published)
	if err != nil {
		return err
	}
	if report.Migrated {
		fmt.Fprintf(cli.out, "created source of truth %s from %s\n", report.Source, report.Target)
	}
	for _, title := range report.Encrypted {
		fmt.Fprintf(cli.out, "encrypted: %s\n", title)
	}
	fmt.Fprintf(cli.out, "published %d lessons to %s: %d locked, %d fields encrypted\n",
		report.Total, report.Target, len(report.Encrypted), report.FieldCount)
	return nil
}
