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

type reportCmd struct {
	runID   string
	weekly  bool
	monthly bool
	summary bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "re-render the reports of a stored run" }
func (*reportCmd) Usage() string {
	return `wcs report [-run <id>] [-weekly] [-monthly] [-summary]

  Replays a stored run from its exact inputs and renders its reports.
  Without a report flag, the summary is printed. Without -run, the most
  recent run is used.

Usage Examples:
# The weekly ledger of the last run.
$ wcs report -weekly

# The monthly report of run 3fa8.
$ wcs report -monthly -run 3fa8

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.runID, "run", "", "Run id, or an unambiguous prefix (defaults to the latest run)")
	f.BoolVar(&c.weekly, "weekly", false, "Render the week-by-week ledger")
	f.BoolVar(&c.monthly, "monthly", false, "Render the monthly report")
	f.BoolVar(&c.summary, "summary", false, "Render the run summary")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	res, err := replayStored(c.runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.weekly && !c.monthly && !c.summary {
		c.summary = true
	}
	if c.summary {
		printMarkdown(renderer.SummaryMarkdown(res))
	}
	if c.weekly {
		printMarkdown(renderer.WeeklyMarkdown(res))
	}
	if c.monthly {
		printMarkdown(renderer.MonthlyMarkdown(res))
	}
	return subcommands.ExitSuccess
}

// replayStored loads a run entry and replays it. An empty id means the
// latest run.
func replayStored(id string) (*capsim.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	l, err := runlog.Open(cfg.RunLog)
	if err != nil {
		return nil, fmt.Errorf("opening the run log: %w", err)
	}
	defer l.Close()

	var entry runlog.Entry
	if id == "" {
		entry, err = l.Latest()
	} else {
		entry, err = l.Get(id)
	}
	if err != nil {
		return nil, err
	}

	s, p, err := entry.Params()
	if err != nil {
		return nil, fmt.Errorf("rebuilding run %s: %w", shortID(entry.ID), err)
	}
	return capsim.NewEngine(s).Run(p)
}
