package capsim

import "fmt"

// Phase identifies which stage of the harvest strategy a week belongs to.
type Phase int

const (
	// NoPhase marks records produced by engines without phase logic.
	NoPhase Phase = iota
	// Accumulation reinvests all weekly profit into the pot.
	Accumulation
	// Distribution holds the pot at the cap and withdraws weekly excess.
	Distribution
)

func (p Phase) String() string {
	switch p {
	case Accumulation:
		return "accumulation"
	case Distribution:
		return "distribution"
	default:
		return ""
	}
}

// ParsePhase parses a string into a Phase.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "":
		return NoPhase, nil
	case "accumulation":
		return Accumulation, nil
	case "distribution":
		return Distribution, nil
	default:
		return 0, fmt.Errorf("unknown phase: %q", s)
	}
}

// WeeklyRecord is one simulated week. An engine produces each record
// exactly once; it is read-only afterward.
type WeeklyRecord struct {
	// Week is the 1-based week number.
	Week int
	// Date is the Monday of that week.
	Date Date
	// PotBefore and PotAfter are the capital before and after the week's
	// reinvestment or withdrawal. PotAfter of week n is PotBefore of week
	// n+1.
	PotBefore Money
	PotAfter  Money
	// Profit is PotBefore times the weekly rate. It may be negative.
	Profit Money
	// VaultDelta and SpendDelta are the amounts withdrawn to each bucket
	// this week, zero unless the week distributed above the cap. They are
	// always equal to each other.
	VaultDelta Money
	SpendDelta Money
	// Phase is the phase active during this week, NoPhase for strategies
	// without phases.
	Phase Phase
}

func (r WeeklyRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("week", r.Week)
	w.Append("date", r.Date)
	w.Append("pot_before", r.PotBefore.Amount())
	w.Append("profit", r.Profit.Amount())
	w.Append("vault_delta", r.VaultDelta.Amount())
	w.Append("spend_delta", r.SpendDelta.Amount())
	w.Append("pot_after", r.PotAfter.Amount())
	w.Optional("phase", r.Phase.String())
	return w.MarshalJSON()
}

// Result is the outcome of a run: the ordered weekly records plus the
// inputs and derived totals the reporting layers consume. Records are
// chronological and never reordered.
type Result struct {
	Strategy Strategy
	Params   Parameters
	Records  []WeeklyRecord
	// CapHitWeek is the week the pot first reached the cap, 0 when the cap
	// was never reached (or the strategy has no cap).
	CapHitWeek int
}

// FinalPot returns the pot after the last simulated week.
func (r *Result) FinalPot() Money {
	if len(r.Records) == 0 {
		return r.Params.InitialPot
	}
	return r.Records[len(r.Records)-1].PotAfter
}

// VaultTotal returns the cumulative amount withdrawn to the vault bucket.
func (r *Result) VaultTotal() Money {
	total := M(0, r.Params.Currency())
	for _, rec := range r.Records {
		total = total.Add(rec.VaultDelta)
	}
	return total
}

// SpendTotal returns the cumulative amount withdrawn to the spend bucket.
func (r *Result) SpendTotal() Money {
	total := M(0, r.Params.Currency())
	for _, rec := range r.Records {
		total = total.Add(rec.SpendDelta)
	}
	return total
}

// CapHit returns the week the pot first reached the cap, and whether it
// ever did.
func (r *Result) CapHit() (week int, ok bool) {
	return r.CapHitWeek, r.CapHitWeek > 0
}

func (r *Result) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("engine", r.Strategy.String())
	w.Append("currency", r.Params.Currency())
	w.Append("total_weeks", len(r.Records))
	w.Append("final_pot", r.FinalPot().Amount())
	w.Append("vault_total", r.VaultTotal().Amount())
	w.Append("spend_total", r.SpendTotal().Amount())
	w.Optional("cap_hit_week", r.CapHitWeek)
	w.Append("records", r.Records)
	return w.MarshalJSON()
}
