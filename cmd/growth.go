package cmd

import (
	"context"
	"flag"

	"github.com/etnz/capsim"
	"github.com/google/subcommands"
)

type growthCmd struct {
	engine engineCmd
}

func (*growthCmd) Name() string     { return "growth" }
func (*growthCmd) Synopsis() string { return "simulate pure weekly compounding" }
func (*growthCmd) Usage() string {
	return `wcs growth [-pot <amount>] [-rate <rate>] [-weeks <n>] [-start <date>]

  Simulates a pot compounding at the weekly rate with every profit
  reinvested in full. Prints the run summary and stores the full weekly
  ledger, reports and chart in the output directory.

Usage Examples:
# A year at 25% a week starting from 220.
$ wcs growth -pot 220 -rate 0.25 -weeks 52

`
}

func (c *growthCmd) SetFlags(f *flag.FlagSet) {
	c.engine.setFlags(f)
}

func (c *growthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.engine.run(capsim.Growth)
}
