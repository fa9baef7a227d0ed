package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capsim"
	md "github.com/nao1215/markdown"
)

// MonthlyMarkdown renders the run aggregated by calendar month.
func MonthlyMarkdown(r *capsim.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Monthly Report (%s)", r.Strategy))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Month", "Weeks", "Profit", "Vault", "Spend", "End Pot"},
		Rows:   [][]string{},
	}

	months := r.Months()
	for _, row := range months {
		table.Rows = append(table.Rows, []string{
			row.Month.Format("2006-01"),
			fmt.Sprintf("%d", row.Weeks),
			row.Profit.SignedString(),
			cellOrBlank(row.Vault),
			cellOrBlank(row.Spend),
			row.EndPot.String(),
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"),
		md.Bold(fmt.Sprintf("%d", r.Params.TotalWeeks)),
		"",
		boldOrBlank(r.VaultTotal()),
		boldOrBlank(r.SpendTotal()),
		md.Bold(r.FinalPot().String()),
	})
	doc.Table(table)

	return doc.String()
}
