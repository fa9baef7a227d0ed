package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capsim"
	"github.com/etnz/capsim/runlog"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type runsCmd struct {
	n int
}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "list the recorded runs, newest first" }
func (*runsCmd) Usage() string {
	return `wcs runs [-n <count>]

  Lists the most recent runs from the run log. The printed id (or any
  unambiguous prefix of it) selects a run for rerun, report and chart.
`
}

func (c *runsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 10, "How many runs to list, 0 for all")
}

func (c *runsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	entries, err := l.List(c.n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		return subcommands.ExitSuccess
	}

	printMarkdown(runsMarkdown(entries))
	return subcommands.ExitSuccess
}

func runsMarkdown(entries []runlog.Entry) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Recorded Runs")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"ID", "When", "Engine", "Weeks", "Pot", "Final", "Harvested"},
		Rows:   [][]string{},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			shortID(e.ID),
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Engine,
			fmt.Sprintf("%d", e.TotalWeeks),
			amountCell(e.InitialPot, e.Currency),
			amountCell(e.FinalPot, e.Currency),
			harvestedCell(e),
		})
	}
	doc.Table(table)

	return doc.String()
}

// amountCell formats a stored decimal in its currency, falling back to the
// raw text if it no longer parses.
func amountCell(amount, currency string) string {
	m, err := capsim.ParseMoney(amount, currency)
	if err != nil {
		return amount
	}
	return m.String()
}

func harvestedCell(e runlog.Entry) string {
	vault, err := capsim.ParseMoney(e.VaultTotal, e.Currency)
	if err != nil {
		return e.VaultTotal
	}
	spend, err := capsim.ParseMoney(e.SpendTotal, e.Currency)
	if err != nil {
		return e.SpendTotal
	}
	total := vault.Add(spend)
	if total.IsZero() {
		return ""
	}
	return total.String()
}
