package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/capsim"
	"github.com/etnz/capsim/config"
	"github.com/etnz/capsim/runlog"
	"github.com/google/subcommands"
)

// testConfig writes a self-contained configuration under a temp dir and
// points the global -config flag at it.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmp := t.TempDir()

	content := `
output_dir: ` + filepath.Join(tmp, "output") + `
params_file: ` + filepath.Join(tmp, "last_params.json") + `
runlog: ` + filepath.Join(tmp, "runs.db") + `
`
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	oldConfigPath := configPath
	configPath = &path
	t.Cleanup(func() { configPath = oldConfigPath })

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestEngineParameters(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name     string
		cmd      engineCmd
		wantPot  string
		wantRate string
		wantWeek int
		wantCur  string
	}{
		{
			name:     "defaults from config",
			cmd:      engineCmd{},
			wantPot:  "220",
			wantRate: "0.25",
			wantWeek: 52,
			wantCur:  "EUR",
		},
		{
			name:     "flags override",
			cmd:      engineCmd{pot: "1000", rate: "0.1", weeks: 10},
			wantPot:  "1000",
			wantRate: "0.1",
			wantWeek: 10,
			wantCur:  "EUR",
		},
		{
			name:     "currency re-denominates defaults",
			cmd:      engineCmd{currency: "USD"},
			wantPot:  "220",
			wantRate: "0.25",
			wantWeek: 52,
			wantCur:  "USD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.cmd.parameters(cfg, capsim.Growth)
			if err != nil {
				t.Fatalf("parameters() error = %v", err)
			}
			if got := p.InitialPot.Amount().String(); got != tt.wantPot {
				t.Errorf("pot = %s, want %s", got, tt.wantPot)
			}
			if got := p.WeeklyRate.String(); got != tt.wantRate {
				t.Errorf("rate = %s, want %s", got, tt.wantRate)
			}
			if p.TotalWeeks != tt.wantWeek {
				t.Errorf("weeks = %d, want %d", p.TotalWeeks, tt.wantWeek)
			}
			if got := p.Currency(); got != tt.wantCur {
				t.Errorf("currency = %q, want %q", got, tt.wantCur)
			}
		})
	}
}

func TestEngineParameters_FromFile(t *testing.T) {
	cfg := testConfig(t)

	saved := capsim.Parameters{
		InitialPot: capsim.M(5000, "USD"),
		WeeklyRate: capsim.R(0.02),
		TotalWeeks: 26,
		Cap:        capsim.M(20000, "USD"),
		Start:      capsim.NewDate(2026, 8, 17),
	}
	file := filepath.Join(t.TempDir(), "params.json")
	if err := capsim.SaveParams(file, capsim.Harvest, saved); err != nil {
		t.Fatalf("SaveParams() error = %v", err)
	}

	// The file wins over config defaults, explicit flags win over the file.
	cmd := engineCmd{paramsFile: file, weeks: 13}
	p, err := cmd.parameters(cfg, capsim.Harvest)
	if err != nil {
		t.Fatalf("parameters() error = %v", err)
	}
	if !p.InitialPot.Equal(saved.InitialPot) {
		t.Errorf("pot = %v, want %v", p.InitialPot, saved.InitialPot)
	}
	if !p.Cap.Equal(saved.Cap) {
		t.Errorf("cap = %v, want %v", p.Cap, saved.Cap)
	}
	if p.TotalWeeks != 13 {
		t.Errorf("weeks = %d, want 13", p.TotalWeeks)
	}
	if p.Start != saved.Start {
		t.Errorf("start = %v, want %v", p.Start, saved.Start)
	}
}

func TestEngineParameters_StartSnapsToMonday(t *testing.T) {
	cfg := testConfig(t)

	// 2026-08-19 is a Wednesday; its week starts on Monday the 17th.
	cmd := engineCmd{start: "2026-08-19"}
	p, err := cmd.parameters(cfg, capsim.Growth)
	if err != nil {
		t.Fatalf("parameters() error = %v", err)
	}
	if want := capsim.NewDate(2026, 8, 17); p.Start != want {
		t.Errorf("start = %v, want %v", p.Start, want)
	}
}

func TestEngineParameters_Invalid(t *testing.T) {
	cfg := testConfig(t)

	for _, cmd := range []engineCmd{
		{pot: "not-a-number"},
		{rate: "abc"},
		{cap: "?"},
		{start: "someday"},
	} {
		if _, err := cmd.parameters(cfg, capsim.Harvest); err == nil {
			t.Errorf("parameters(%+v) should fail, got nil error", cmd)
		}
	}
}

func TestGrowthExecute(t *testing.T) {
	cfg := testConfig(t)

	cmd := &growthCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("pot", "220")
	f.Set("rate", "0.25")
	f.Set("weeks", "4")
	f.Set("start", "2026-08-17")

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}

	// One run directory with all its artifacts.
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("output dir has %d entries, want 1", len(entries))
	}
	dir := filepath.Join(cfg.OutputDir, entries[0].Name())
	for _, name := range []string{"summary.md", "weekly.md", "monthly.md", "params.json", "chart.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	// The run is recorded.
	l, err := runlog.Open(cfg.RunLog)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer l.Close()
	runs, err := l.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("run log has %d entries, want 1", len(runs))
	}
	if runs[0].Engine != "growth" || runs[0].FinalPot != "537.109375" {
		t.Errorf("recorded run = %+v, want growth ending at 537.109375", runs[0])
	}

	// The last parameters are kept for the next run.
	if _, err := os.Stat(cfg.ParamsFile); err != nil {
		t.Errorf("missing last params file: %v", err)
	}
}

func TestHarvestExecute(t *testing.T) {
	cfg := testConfig(t)

	cmd := &harvestCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("start", "2026-08-17")

	if status := cmd.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}

	l, err := runlog.Open(cfg.RunLog)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer l.Close()
	runs, err := l.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("run log has %d entries, want 1", len(runs))
	}
	// Config defaults: 220 at 25% for 52 weeks capped at 10000.
	if runs[0].FinalPot != "10000" {
		t.Errorf("FinalPot = %q, want %q", runs[0].FinalPot, "10000")
	}
	if runs[0].CapHitWeek != 18 {
		t.Errorf("CapHitWeek = %d, want 18", runs[0].CapHitWeek)
	}
}

func TestRerunExecute(t *testing.T) {
	cfg := testConfig(t)

	growth := &growthCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	growth.SetFlags(f)
	f.Set("weeks", "8")
	f.Set("start", "2026-08-17")
	if status := growth.Execute(context.Background(), f); status != subcommands.ExitSuccess {
		t.Fatalf("growth Execute() = %v, want ExitSuccess", status)
	}

	rerun := &rerunCmd{}
	rf := flag.NewFlagSet("test", flag.ContinueOnError)
	rerun.SetFlags(rf)
	if status := rerun.Execute(context.Background(), rf); status != subcommands.ExitSuccess {
		t.Fatalf("rerun Execute() = %v, want ExitSuccess", status)
	}

	l, err := runlog.Open(cfg.RunLog)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer l.Close()
	runs, err := l.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("run log has %d entries, want 2", len(runs))
	}
	// Exact replay: identical outcome, distinct run.
	if runs[0].FinalPot != runs[1].FinalPot {
		t.Errorf("replay FinalPot = %q, want %q", runs[0].FinalPot, runs[1].FinalPot)
	}
	if runs[0].ID == runs[1].ID {
		t.Error("replay should get its own run id")
	}
}

func TestParamsQuery(t *testing.T) {
	cfg := testConfig(t)

	p := capsim.Parameters{
		InitialPot: capsim.M(220, "EUR"),
		WeeklyRate: capsim.R(0.25),
		TotalWeeks: 52,
		Start:      capsim.NewDate(2026, 8, 17),
	}
	if err := capsim.SaveParams(cfg.ParamsFile, capsim.Growth, p); err != nil {
		t.Fatalf("SaveParams() error = %v", err)
	}

	cmd := &paramsCmd{}
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	cmd.SetFlags(f)
	f.Set("q", "$.weekly_rate")

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	status := cmd.Execute(context.Background(), f)
	w.Close()
	os.Stdout = oldStdout
	out, _ := io.ReadAll(r)

	if status != subcommands.ExitSuccess {
		t.Fatalf("Execute() = %v, want ExitSuccess", status)
	}
	if got := strings.TrimSpace(string(out)); got != "0.25" {
		t.Errorf("query output = %q, want %q", got, "0.25")
	}
}

func TestRunDir(t *testing.T) {
	cfg := testConfig(t)

	e := runlog.Entry{
		ID:        "3fa85f64-5717-4562-b3fc-2c963f66afa6",
		Engine:    "harvest",
		StartDate: "2026-08-17",
	}
	got := runDir(cfg, e)
	want := filepath.Join(cfg.OutputDir, "harvest_2026-08-17_3fa85f64")
	if got != want {
		t.Errorf("runDir() = %q, want %q", got, want)
	}
}

func TestRunsMarkdown(t *testing.T) {
	entries := []runlog.Entry{
		{
			ID:         "3fa85f64-5717-4562-b3fc-2c963f66afa6",
			Engine:     "harvest",
			Currency:   "EUR",
			InitialPot: "220",
			TotalWeeks: 52,
			FinalPot:   "10000",
			VaultTotal: "43606.2266",
			SpendTotal: "43606.2266",
		},
	}

	got := runsMarkdown(entries)
	for _, want := range []string{"3fa85f64", "harvest", "€220.00", "€10,000.00", "€87,212.45"} {
		if !strings.Contains(got, want) {
			t.Errorf("runsMarkdown() missing %q in:\n%s", want, got)
		}
	}
}
