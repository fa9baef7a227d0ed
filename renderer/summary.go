package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/capsim"
	md "github.com/nao1215/markdown"
)

func SummaryMarkdown(r *capsim.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Run Summary (%s)", r.Strategy))

	last := r.Records[len(r.Records)-1]
	doc.PlainText(fmt.Sprintf("%s to %s, %d weeks at %s per week, starting from %s.",
		r.Params.StartDate(), last.Date, r.Params.TotalWeeks,
		r.Params.WeeklyRate.Percent(), r.Params.InitialPot))

	doc.H2("Outcome")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Final Pot"),
			md.Bold(r.FinalPot().String()),
		},
		Rows: [][]string{},
	}
	if !r.VaultTotal().IsZero() {
		table.Rows = append(table.Rows, []string{"Vault Total", r.VaultTotal().String()})
	}
	if !r.SpendTotal().IsZero() {
		table.Rows = append(table.Rows, []string{"Spend Total", r.SpendTotal().String()})
	}
	outcome := r.FinalPot().Add(r.VaultTotal()).Add(r.SpendTotal())
	table.Rows = append(table.Rows, []string{"Net Outcome", outcome.String()})
	table.Rows = append(table.Rows, []string{"Total Return", totalReturn(r.Params.InitialPot, outcome).SignedString()})
	doc.Table(table)

	if r.Strategy == capsim.Harvest {
		if week, ok := r.CapHit(); ok {
			doc.PlainText(fmt.Sprintf("Cap of %s reached on week %d; harvesting from then on.",
				r.Params.Cap, week))
		} else {
			doc.PlainText(fmt.Sprintf("Cap of %s never reached; the pot compounded for the whole run.",
				r.Params.Cap))
		}
	}

	return doc.String()
}

// totalReturn is display only, so the rounding division does not matter.
func totalReturn(initial, outcome capsim.Money) capsim.Percent {
	ratio := outcome.Amount().Sub(initial.Amount()).Div(initial.Amount())
	return capsim.Percent(ratio.InexactFloat64() * 100)
}
