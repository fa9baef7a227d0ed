package capsim

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestGrowthEngine_Run(t *testing.T) {
	p := Parameters{
		InitialPot: M(220, "EUR"),
		WeeklyRate: R(0.25),
		TotalWeeks: 4,
		Start:      NewDate(2026, 8, 17),
	}
	res, err := GrowthEngine{}.Run(p)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if got, want := len(res.Records), p.TotalWeeks; got != want {
		t.Fatalf("Run() produced %d records, want %d", got, want)
	}
	if res.Strategy != Growth {
		t.Errorf("Run() strategy = %v, want %v", res.Strategy, Growth)
	}

	// compounding at 25% from 220 stays exact in decimal.
	wants := []string{"275", "343.75", "429.6875", "537.109375"}
	for i, rec := range res.Records {
		if got, want := rec.Week, i+1; got != want {
			t.Errorf("record[%d].Week = %d, want %d", i, got, want)
		}
		if got, want := rec.Date, p.Start.AddWeeks(i); got != want {
			t.Errorf("record[%d].Date = %v, want %v", i, got, want)
		}
		if rec.Date.Weekday() != time.Monday {
			t.Errorf("record[%d].Date = %v, not a Monday", i, rec.Date)
		}
		if got := rec.PotAfter.Amount().String(); got != wants[i] {
			t.Errorf("record[%d].PotAfter = %s, want %s", i, got, wants[i])
		}
		if !rec.PotAfter.Equal(rec.PotBefore.Add(rec.Profit)) {
			t.Errorf("record[%d] pot after %v != pot before %v + profit %v", i, rec.PotAfter, rec.PotBefore, rec.Profit)
		}
		if !rec.VaultDelta.IsZero() || !rec.SpendDelta.IsZero() {
			t.Errorf("record[%d] has withdrawals %v/%v, want none", i, rec.VaultDelta, rec.SpendDelta)
		}
		if rec.Phase != NoPhase {
			t.Errorf("record[%d].Phase = %v, want NoPhase", i, rec.Phase)
		}
	}

	if got, want := res.FinalPot(), M(537.109375, "EUR"); !got.Equal(want) {
		t.Errorf("FinalPot() = %v, want %v", got, want)
	}
	if !res.VaultTotal().IsZero() || !res.SpendTotal().IsZero() {
		t.Errorf("totals = %v/%v, want zero", res.VaultTotal(), res.SpendTotal())
	}
	if week, ok := res.CapHit(); ok {
		t.Errorf("CapHit() = %d, true; want never", week)
	}
}

func TestGrowthEngine_Chain(t *testing.T) {
	p := Parameters{
		InitialPot: M(1000, "EUR"),
		WeeklyRate: R(0.031),
		TotalWeeks: 120,
		Start:      NewDate(2026, 8, 17),
	}
	res, err := GrowthEngine{}.Run(p)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	for i := 1; i < len(res.Records); i++ {
		prev, cur := res.Records[i-1], res.Records[i]
		if !prev.PotAfter.Equal(cur.PotBefore) {
			t.Fatalf("week %d pot after %v != week %d pot before %v", prev.Week, prev.PotAfter, cur.Week, cur.PotBefore)
		}
		if cur.Date != prev.Date.AddWeeks(1) {
			t.Fatalf("week %d date %v is not 7 days after %v", cur.Week, cur.Date, prev.Date)
		}
	}
}

func TestGrowthEngine_Compounding(t *testing.T) {
	res, err := GrowthEngine{}.Run(Parameters{
		InitialPot: M(1000, "EUR"),
		WeeklyRate: R(0.25),
		TotalWeeks: 52,
		Start:      NewDate(2026, 8, 17),
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	got := res.FinalPot().Float64()
	want := 1000 * math.Pow(1.25, 52)
	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("FinalPot() = %g, want %g", got, want)
	}
}

func TestGrowthEngine_FlatAndNegativeRates(t *testing.T) {
	t.Run("zero rate keeps the pot flat", func(t *testing.T) {
		res, err := GrowthEngine{}.Run(Parameters{
			InitialPot: M(220, "EUR"),
			WeeklyRate: R(0),
			TotalWeeks: 10,
			Start:      NewDate(2026, 8, 17),
		})
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if got, want := res.FinalPot(), M(220, "EUR"); !got.Equal(want) {
			t.Errorf("FinalPot() = %v, want %v", got, want)
		}
		for _, rec := range res.Records {
			if !rec.Profit.IsZero() {
				t.Errorf("week %d profit = %v, want zero", rec.Week, rec.Profit)
			}
		}
	})

	t.Run("negative rate shrinks the pot", func(t *testing.T) {
		res, err := GrowthEngine{}.Run(Parameters{
			InitialPot: M(1000, "EUR"),
			WeeklyRate: R(-0.5),
			TotalWeeks: 3,
			Start:      NewDate(2026, 8, 17),
		})
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if got, want := res.FinalPot(), M(125, "EUR"); !got.Equal(want) {
			t.Errorf("FinalPot() = %v, want %v", got, want)
		}
		for _, rec := range res.Records {
			if !rec.Profit.IsNegative() {
				t.Errorf("week %d profit = %v, want negative", rec.Week, rec.Profit)
			}
		}
	})
}

func TestGrowthEngine_InvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		p    Parameters
	}{
		{"zero pot", Parameters{InitialPot: M(0, "EUR"), WeeklyRate: R(0.25), TotalWeeks: 52}},
		{"negative pot", Parameters{InitialPot: M(-1, "EUR"), WeeklyRate: R(0.25), TotalWeeks: 52}},
		{"zero weeks", Parameters{InitialPot: M(220, "EUR"), WeeklyRate: R(0.25), TotalWeeks: 0}},
		{"negative weeks", Parameters{InitialPot: M(220, "EUR"), WeeklyRate: R(0.25), TotalWeeks: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := GrowthEngine{}.Run(tt.p)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("Run() error = %v, want ErrInvalidParameter", err)
			}
			if res != nil {
				t.Errorf("Run() = %v, want no records for invalid parameters", res)
			}
		})
	}
}

func TestGrowthEngine_Overflow(t *testing.T) {
	res, err := GrowthEngine{}.Run(Parameters{
		InitialPot: M(1000, "EUR"),
		WeeklyRate: R(1e10),
		TotalWeeks: 52,
		Start:      NewDate(2026, 8, 17),
	})
	if !errors.Is(err, ErrNumericOverflow) {
		t.Errorf("Run() error = %v, want ErrNumericOverflow", err)
	}
	if res != nil {
		t.Errorf("Run() = %v, want no records on overflow", res)
	}
}
