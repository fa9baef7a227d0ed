package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capsim"
	md "github.com/nao1215/markdown"
)

// WeeklyMarkdown renders the full week-by-week ledger of a run.
func WeeklyMarkdown(r *capsim.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Weekly Ledger (%s)", r.Strategy))
	doc.PlainText(fmt.Sprintf("%d weeks from %s, compounding at %s per week.",
		r.Params.TotalWeeks, r.Params.StartDate(), r.Params.WeeklyRate.Percent()))

	if r.Strategy == capsim.Harvest {
		doc.Table(harvestTable(r))
	} else {
		doc.Table(growthTable(r))
	}

	return doc.String()
}

func growthTable(r *capsim.Result) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Week", "Date", "Pot Before", "Profit", "Pot After"},
		Rows:   [][]string{},
	}
	for _, rec := range r.Records {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", rec.Week),
			rec.Date.String(),
			rec.PotBefore.String(),
			rec.Profit.SignedString(),
			rec.PotAfter.String(),
		})
	}
	return table
}

func harvestTable(r *capsim.Result) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Week", "Date", "Pot Before", "Profit", "Vault", "Spend", "Pot After", "Phase"},
		Rows:   [][]string{},
	}
	for _, rec := range r.Records {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", rec.Week),
			rec.Date.String(),
			rec.PotBefore.String(),
			rec.Profit.SignedString(),
			cellOrBlank(rec.VaultDelta),
			cellOrBlank(rec.SpendDelta),
			rec.PotAfter.String(),
			rec.Phase.String(),
		})
	}
	return table
}

// cellOrBlank leaves zero amounts out of the table, so the accumulation
// weeks read as empty rather than a column of zeros.
func cellOrBlank(m capsim.Money) string {
	if m.IsZero() {
		return ""
	}
	return m.String()
}

func boldOrBlank(m capsim.Money) string {
	if m.IsZero() {
		return ""
	}
	return md.Bold(m.String())
}
