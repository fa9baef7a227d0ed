package capsim

import "fmt"

// GrowthEngine compounds the pot at the weekly rate, reinvesting every
// week's profit in full. It has no phases and never withdraws.
type GrowthEngine struct{}

func (GrowthEngine) Kind() Strategy { return Growth }

// Run simulates p.TotalWeeks weeks of pure compounding.
func (GrowthEngine) Run(p Parameters) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := p.StartDate()
	p.Start = start

	records := make([]WeeklyRecord, 0, p.TotalWeeks)
	pot := p.InitialPot
	zero := M(0, p.Currency())
	for n := 1; n <= p.TotalWeeks; n++ {
		profit := p.WeeklyRate.Apply(pot)
		after := pot.Add(profit)
		if err := checkOverflow(after); err != nil {
			return nil, fmt.Errorf("week %d: %w", n, err)
		}
		records = append(records, WeeklyRecord{
			Week:       n,
			Date:       start.AddWeeks(n - 1),
			PotBefore:  pot,
			PotAfter:   after,
			Profit:     profit,
			VaultDelta: zero,
			SpendDelta: zero,
			Phase:      NoPhase,
		})
		pot = after
	}
	return &Result{Strategy: Growth, Params: p, Records: records}, nil
}
