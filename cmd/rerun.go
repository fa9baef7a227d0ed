package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capsim"
	"github.com/etnz/capsim/renderer"
	"github.com/etnz/capsim/runlog"
	"github.com/google/subcommands"
)

type rerunCmd struct{}

func (*rerunCmd) Name() string     { return "rerun" }
func (*rerunCmd) Synopsis() string { return "replay a stored run from its exact inputs" }
func (*rerunCmd) Usage() string {
	return `wcs rerun [<run-id>]

  Replays a past run from the inputs stored in the run log. The engines
  are deterministic, so the replay reproduces the original ledger to the
  last decimal. Without an id, the most recent run is replayed.

  The run id may be abbreviated to any unambiguous prefix.
`
}

func (c *rerunCmd) SetFlags(f *flag.FlagSet) {}

func (c *rerunCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	l, err := runlog.Open(cfg.RunLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the run log: %v\n", err)
		return subcommands.ExitFailure
	}
	defer l.Close()

	var entry runlog.Entry
	if f.NArg() == 0 {
		entry, err = l.Latest()
	} else {
		entry, err = l.Get(f.Arg(0))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	s, p, err := entry.Params()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rebuilding run %s: %v\n", shortID(entry.ID), err)
		return subcommands.ExitFailure
	}

	res, err := capsim.NewEngine(s).Run(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	replay, err := recordRun(cfg, s, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing run artifacts: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(res))
	fmt.Printf("Run %s replayed as %s in %s\n", shortID(entry.ID), shortID(replay.ID), replay.OutputDir)
	return subcommands.ExitSuccess
}
