package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/xufeiok/PineScript-Study/core"
	"github.com/xufeiok/PineScript-Study/core/lesson"
	appfs "github.com/xufeiok/PineScript-Study/fs"
)

var (
	isTerminalFunc = term.IsTerminal // mockable
	confirmFunc    = confirm         // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf      *core.Config
	svc       lesson.Service
	source    lesson.Repository // plaintext source of truth
	published lesson.Repository // what the API serves
	openRepo  func(path string) lesson.Repository
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  validate   [-file PATH]                                  - check the lesson document")
	fmt.Fprintln(cli.out, "  insert     [-file PATH] [-batch PATH] [-sentinel ID] [-replace] [-dry-run]")
	fmt.Fprintln(cli.out, "                                                           - add a batch of lessons")
	fmt.Fprintln(cli.out, "  renumber   [-file PATH] [-plan PATH] [-dry-run]          - rewrite title prefixes")
	fmt.Fprintln(cli.out, "  reorganize [-file PATH] [-plan PATH] [-dry-run]          - order lessons by category plan")
	fmt.Fprintln(cli.out, "  publish    [-yes]                                        - encrypt locked lessons into the published document")
	fmt.Fprintln(cli.out, "  decrypt    -id ID [-file PATH] [-field NAME]             - print a published lesson in clear")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()
	cmd, rest := args[1], args[2:]
	switch cmd {
	case "validate":
		return cli.runValidate(ctx, rest)
	case "insert":
		return cli.runInsert(ctx, rest)
	case "renumber":
		return cli.runRenumber(ctx, rest)
	case "reorganize":
		return cli.runReorganize(ctx, rest)
	case "publish":
		return cli.runPublish(ctx, rest)
	case "decrypt":
		return cli.runDecrypt(ctx, rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(cli.out, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return errHelp
	}
	return nil
}

// editable picks the document transforms work on: the explicit file,
// else the source of truth when there is one, else the published document.
func (cli *commandLine) editable(ctx context.Context, file string) (lesson.Repository, error) {
	if file != "" {
		return cli.openRepo(file), nil
	}
	exists, err := cli.source.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return cli.source, nil
	}
	return cli.published, nil
}

func (cli *commandLine) loadPlan(path string) (lesson.Plan, error) {
	if path == "" {
		path = cli.conf.Data.PlanFile
	}
	if path == "" {
		return appfs.DefaultPlan()
	}
	f, err := os.Open(cli.conf.Path(path))
	if err != nil {
		return lesson.Plan{}, errors.Wrap(err, "opening plan")
	}
	defer f.Close()
	plan, err := lesson.LoadPlan(f)
	return plan, errors.Wrapf(err, "loading plan %s", path)
}

func (cli *commandLine) loadBatch(ctx context.Context, path string) ([]lesson.Lesson, error) {
	if path == "" {
		path = cli.conf.Data.BatchFile
	}
	if path == "" {
		return appfs.DefaultBatch()
	}
	doc, err := cli.openRepo(path).Load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "loading batch %s", path)
	}
	return doc.Lessons, nil
}

// report prints the outcome of a transform; a dry run shows the diff instead of writing.
func (cli *commandLine) report(change lesson.Change, dryRun bool) error {
	switch {
	case !change.Changed():
		fmt.Fprintf(cli.out, "%s: already up to date\n", change.Location)
	case dryRun:
		diff, err := change.Diff()
		if err != nil {
			return errors.Wrap(err, "computing diff")
		}
		fmt.Fprint(cli.out, diff)
		fmt.Fprintf(cli.out, "dry run: %s left untouched\n", change.Location)
	case change.Written:
		fmt.Fprintf(cli.out, "%s: updated\n", change.Location)
	}
	return nil
}

func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = core.CleanString(answer, true /* lower */)
	return answer == "y" || answer == "yes", nil
}
