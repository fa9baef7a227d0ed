package capsim

import "fmt"

// Parameters is the immutable input of a simulation run. A value is
// constructed once per run, validated by the engine, and never mutated.
type Parameters struct {
	// InitialPot is the starting capital. Its currency is the currency of
	// every amount the run produces.
	InitialPot Money
	// WeeklyRate is the fractional return applied each week.
	WeeklyRate Rate
	// TotalWeeks is the number of weekly steps to produce.
	TotalWeeks int
	// Cap is the accumulation ceiling, harvest strategy only. It must
	// exceed InitialPot.
	Cap Money
	// GrowthVaultPct and HarvestVaultPct are reserved split ratios in
	// [0,1]. They are parsed, validated and persisted, but the withdrawal
	// rule splits excess evenly between vault and spend regardless.
	GrowthVaultPct  float64
	HarvestVaultPct float64
	// Start is the Monday stamped on week 1. When zero it is derived from
	// today (see Date.StartMonday).
	Start Date
}

// Currency returns the currency code every amount of the run carries.
func (p Parameters) Currency() string { return p.InitialPot.Currency() }

// StartDate returns the Monday stamped on week 1.
func (p Parameters) StartDate() Date {
	if p.Start.IsZero() {
		return Today().StartMonday()
	}
	return p.Start
}

// Validate checks the constraints shared by every strategy.
func (p Parameters) Validate() error {
	if !p.InitialPot.IsPositive() {
		return fmt.Errorf("%w: initial pot must be positive, got %s", ErrInvalidParameter, p.InitialPot)
	}
	if p.TotalWeeks <= 0 {
		return fmt.Errorf("%w: total weeks must be positive, got %d", ErrInvalidParameter, p.TotalWeeks)
	}
	if p.GrowthVaultPct < 0 || p.GrowthVaultPct > 1 {
		return fmt.Errorf("%w: growth vault pct must be in [0,1], got %v", ErrInvalidParameter, p.GrowthVaultPct)
	}
	if p.HarvestVaultPct < 0 || p.HarvestVaultPct > 1 {
		return fmt.Errorf("%w: harvest vault pct must be in [0,1], got %v", ErrInvalidParameter, p.HarvestVaultPct)
	}
	return nil
}

// ValidateHarvest checks the harvest-only constraints on top of Validate.
func (p Parameters) ValidateHarvest() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if c := p.Cap.Currency(); c != "" && c != p.Currency() {
		return fmt.Errorf("%w: cap currency %s differs from pot currency %s", ErrInvalidParameter, c, p.Currency())
	}
	if !p.Cap.IsPositive() {
		return fmt.Errorf("%w: cap must be positive, got %s", ErrInvalidParameter, p.Cap)
	}
	if !p.Cap.GreaterThan(p.InitialPot) {
		return fmt.Errorf("%w: cap %s must exceed initial pot %s", ErrInvalidParameter, p.Cap, p.InitialPot)
	}
	return nil
}
