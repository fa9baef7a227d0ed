package capsim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// This file persists the last run's parameters in a human-readable JSON
// file, so the exact same simulation can be re-run later. Only the inputs
// are saved, never the records: a run is deterministic, replaying the
// parameters reproduces it.

// EncodeParams writes the strategy and parameters as a single indented JSON
// object with a stable field order. Amounts are written with all their
// digits.
func EncodeParams(w io.Writer, s Strategy, p Parameters) error {
	var obj jsonObjectWriter
	obj.Append("engine", s.String())
	obj.Append("currency", p.Currency())
	obj.Append("initial_pot", p.InitialPot.Amount())
	obj.Append("weekly_rate", p.WeeklyRate)
	obj.Append("total_weeks", p.TotalWeeks)
	if s == Harvest {
		obj.Append("engine_cap", p.Cap.Amount())
	}
	obj.Append("growth_vault_pct", p.GrowthVaultPct)
	obj.Append("harvest_vault_pct", p.HarvestVaultPct)
	obj.Optional("start", p.Start)

	data, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode parameters: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("could not encode parameters: %w", err)
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// DecodeParams reads back a parameter file written by EncodeParams.
func DecodeParams(r io.Reader) (Strategy, Parameters, error) {
	// to parse the json, we use a dedicated local struct with tag annotation.
	type jparams struct {
		Engine          string          `json:"engine"`
		Currency        string          `json:"currency"`
		InitialPot      decimal.Decimal `json:"initial_pot"`
		WeeklyRate      Rate            `json:"weekly_rate"`
		TotalWeeks      int             `json:"total_weeks"`
		EngineCap       decimal.Decimal `json:"engine_cap"`
		GrowthVaultPct  float64         `json:"growth_vault_pct"`
		HarvestVaultPct float64         `json:"harvest_vault_pct"`
		Start           Date            `json:"start"`
	}

	var jp jparams
	dec := json.NewDecoder(r)
	if err := dec.Decode(&jp); err != nil {
		return 0, Parameters{}, fmt.Errorf("format error in parameter file: %w", err)
	}
	s, err := ParseStrategy(jp.Engine)
	if err != nil {
		return 0, Parameters{}, fmt.Errorf("format error in parameter file: %w", err)
	}
	p := Parameters{
		InitialPot:      M(jp.InitialPot, jp.Currency),
		WeeklyRate:      jp.WeeklyRate,
		TotalWeeks:      jp.TotalWeeks,
		GrowthVaultPct:  jp.GrowthVaultPct,
		HarvestVaultPct: jp.HarvestVaultPct,
		Start:           jp.Start,
	}
	if s == Harvest {
		p.Cap = M(jp.EngineCap, jp.Currency)
	}
	return s, p, nil
}

// SaveParams writes the parameter file at path, creating its directory if
// needed.
func SaveParams(path string, s Strategy, p Parameters) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening parameter file %q for writing: %w", path, err)
	}
	defer f.Close()
	return EncodeParams(f, s, p)
}

// LoadParams reads the parameter file at path.
func LoadParams(path string) (Strategy, Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, Parameters{}, fmt.Errorf("could not open parameter file %q: %w", path, err)
	}
	defer f.Close()
	return DecodeParams(f)
}
