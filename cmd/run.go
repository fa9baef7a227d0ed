package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capsim"
	"github.com/etnz/capsim/config"
	"github.com/etnz/capsim/renderer"
	"github.com/google/subcommands"
)

// engineCmd carries the flags and the pipeline shared by the growth and
// harvest commands. Unset flags fall back to the params file, then to the
// configuration defaults.
type engineCmd struct {
	pot        string
	rate       string
	weeks      int
	cap        string
	currency   string
	start      string
	paramsFile string
}

func (c *engineCmd) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.pot, "pot", "", "Starting capital, e.g. 220 (defaults from config)")
	f.StringVar(&c.rate, "rate", "", "Weekly fractional return, e.g. 0.25 for 25% (defaults from config)")
	f.IntVar(&c.weeks, "weeks", 0, "Number of weeks to simulate (defaults from config)")
	f.StringVar(&c.currency, "currency", "", "ISO currency code for all amounts (defaults from config)")
	f.StringVar(&c.start, "start", "", "Date of week 1, YYYY-MM-DD or 'today'; the run starts on that week's Monday")
	f.StringVar(&c.paramsFile, "params", "", "Load parameters from a JSON file; explicit flags override it")
}

// parameters resolves the effective parameters: config defaults first, then
// the params file, then explicit flags.
func (c *engineCmd) parameters(cfg *config.Config, s capsim.Strategy) (capsim.Parameters, error) {
	p, err := cfg.DefaultParameters()
	if err != nil {
		return p, err
	}
	if c.paramsFile != "" {
		if _, p, err = capsim.LoadParams(c.paramsFile); err != nil {
			return p, err
		}
	}

	currency := p.Currency()
	if c.currency != "" && c.currency != currency {
		// Re-denominate the inherited amounts, their figures are kept.
		currency = c.currency
		p.InitialPot = capsim.M(p.InitialPot.Amount(), currency)
		p.Cap = capsim.M(p.Cap.Amount(), currency)
	}

	if c.pot != "" {
		if p.InitialPot, err = capsim.ParseMoney(c.pot, currency); err != nil {
			return p, fmt.Errorf("invalid -pot: %w", err)
		}
	}
	if c.rate != "" {
		if p.WeeklyRate, err = capsim.ParseRate(c.rate); err != nil {
			return p, fmt.Errorf("invalid -rate: %w", err)
		}
	}
	if c.weeks > 0 {
		p.TotalWeeks = c.weeks
	}
	if c.cap != "" {
		if p.Cap, err = capsim.ParseMoney(c.cap, currency); err != nil {
			return p, fmt.Errorf("invalid -cap: %w", err)
		}
	}
	if c.start != "" {
		start, err := capsim.ParseDate(c.start)
		if err != nil {
			return p, fmt.Errorf("invalid -start: %w", err)
		}
		p.Start = start.StartMonday()
	}
	return p, nil
}

// run executes the engine, stores the run and prints its summary.
func (c *engineCmd) run(s capsim.Strategy) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	p, err := c.parameters(cfg, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	res, err := capsim.NewEngine(s).Run(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	entry, err := recordRun(cfg, s, res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing run artifacts: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(res))
	fmt.Printf("Run %s stored in %s\n", shortID(entry.ID), entry.OutputDir)
	return subcommands.ExitSuccess
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
