package capsim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Strategy identifies which engine produced, or should produce, a run.
type Strategy int

const (
	// Growth compounds the pot indefinitely with no withdrawals.
	Growth Strategy = iota
	// Harvest compounds up to a cap, then withdraws any weekly excess.
	Harvest
)

func (s Strategy) String() string {
	switch s {
	case Growth:
		return "growth"
	case Harvest:
		return "harvest"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "growth":
		return Growth, nil
	case "harvest":
		return Harvest, nil
	default:
		return 0, fmt.Errorf("unknown strategy: %q", s)
	}
}

// Engine advances a pot of capital week by week. Implementations are pure:
// the same parameters always produce the same result, and no state is
// shared between runs.
type Engine interface {
	// Kind identifies the engine's strategy.
	Kind() Strategy
	// Run validates p and simulates p.TotalWeeks weeks. On validation
	// failure no record is produced.
	Run(p Parameters) (*Result, error)
}

// NewEngine returns the engine implementing the given strategy.
func NewEngine(s Strategy) Engine {
	if s == Harvest {
		return HarvestEngine{}
	}
	return GrowthEngine{}
}

// potLimit bounds the pot's magnitude. Decimal arithmetic has no infinity,
// so a runaway rate grows digits instead of overflowing; past this bound
// records are no longer renderable or persistable and a run fails fast.
var potLimit = decimal.New(1, 40)

func checkOverflow(pot Money) error {
	if pot.value.Abs().GreaterThan(potLimit) {
		return fmt.Errorf("%w: pot magnitude exceeds %s", ErrNumericOverflow, potLimit)
	}
	return nil
}
