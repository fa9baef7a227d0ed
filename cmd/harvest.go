package cmd

import (
	"context"
	"flag"

	"github.com/etnz/capsim"
	"github.com/google/subcommands"
)

type harvestCmd struct {
	engine engineCmd
}

func (*harvestCmd) Name() string     { return "harvest" }
func (*harvestCmd) Synopsis() string { return "simulate compounding up to a cap, harvesting the excess" }
func (*harvestCmd) Usage() string {
	return `wcs harvest [-pot <amount>] [-rate <rate>] [-weeks <n>] [-cap <amount>] [-start <date>]

  Simulates a pot compounding at the weekly rate until it reaches the cap.
  From then on the pot stays pinned at the cap and each week's excess
  profit is withdrawn, half to the vault and half to spend. Prints the run
  summary and stores the full weekly ledger, reports and chart in the
  output directory.

Usage Examples:
# A year at 25% a week starting from 220, capped at 10000.
$ wcs harvest -pot 220 -rate 0.25 -weeks 52 -cap 10000

`
}

func (c *harvestCmd) SetFlags(f *flag.FlagSet) {
	c.engine.setFlags(f)
	f.StringVar(&c.engine.cap, "cap", "", "Pot ceiling; must be greater than the starting pot (defaults from config)")
}

func (c *harvestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.engine.run(capsim.Harvest)
}
