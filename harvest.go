package capsim

import "fmt"

// HarvestEngine compounds the pot up to the cap, then holds it there and
// withdraws any weekly excess, split evenly between the vault and spend
// buckets.
//
// The engine is a two-state machine. It starts in Accumulation and moves to
// Distribution the first week the pot, grown by that week's profit, reaches
// the cap. The transition fires at most once and never reverts. In
// Distribution the cap acts as a ceiling: profit above it is extracted
// instead of compounding, and a week whose return does not clear the cap
// absorbs the shortfall silently with no withdrawal. That deficit
// protection also tolerates negative rates without breaking the cap bound.
type HarvestEngine struct{}

func (HarvestEngine) Kind() Strategy { return Harvest }

// distribute applies the phase rules to the candidate pot, the pot already
// grown by the week's profit. The withdrawal is the per-bucket amount, half
// of the excess above the cap.
func distribute(candidate Money, phase Phase, cap Money) (after, withdrawal Money, next Phase) {
	switch phase {
	case Accumulation:
		if candidate.LessThan(cap) {
			return candidate, M(0, candidate.Currency()), Accumulation
		}
		// The transition fires this week, even on an exact hit with
		// nothing to withdraw.
		return cap, candidate.Sub(cap).Half(), Distribution
	default: // Distribution
		if candidate.LessThanOrEqual(cap) {
			// Deficit protection: absorb the shortfall, no withdrawal.
			return candidate, M(0, candidate.Currency()), Distribution
		}
		return cap, candidate.Sub(cap).Half(), Distribution
	}
}

// Run simulates p.TotalWeeks weeks of capped accumulation and harvesting.
func (HarvestEngine) Run(p Parameters) (*Result, error) {
	if err := p.ValidateHarvest(); err != nil {
		return nil, err
	}
	start := p.StartDate()
	p.Start = start

	records := make([]WeeklyRecord, 0, p.TotalWeeks)
	pot := p.InitialPot
	phase := Accumulation
	hitWeek := 0
	for n := 1; n <= p.TotalWeeks; n++ {
		profit := p.WeeklyRate.Apply(pot)
		candidate := pot.Add(profit)
		if err := checkOverflow(candidate); err != nil {
			return nil, fmt.Errorf("week %d: %w", n, err)
		}

		after, withdrawal, next := distribute(candidate, phase, p.Cap)
		if phase == Accumulation && next == Distribution {
			hitWeek = n
		}
		phase = next

		records = append(records, WeeklyRecord{
			Week:       n,
			Date:       start.AddWeeks(n - 1),
			PotBefore:  pot,
			PotAfter:   after,
			Profit:     profit,
			VaultDelta: withdrawal,
			SpendDelta: withdrawal,
			Phase:      phase,
		})
		pot = after
	}
	return &Result{Strategy: Harvest, Params: p, Records: records, CapHitWeek: hitWeek}, nil
}
