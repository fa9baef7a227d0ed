// Package cmd implements the CLI application to simulate weekly capital
// strategies.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/etnz/capsim"
	"github.com/etnz/capsim/chart"
	"github.com/etnz/capsim/config"
	"github.com/etnz/capsim/renderer"
	"github.com/etnz/capsim/runlog"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&growthCmd{}, "simulation")
	c.Register(&harvestCmd{}, "simulation")
	c.Register(&rerunCmd{}, "simulation")

	c.Register(&runsCmd{}, "history")
	c.Register(&reportCmd{}, "history")
	c.Register(&chartCmd{}, "history")
	c.Register(&cleanCmd{}, "history")

	c.Register(&paramsCmd{}, "parameters")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configPath = flag.String("config", "", "Path to the configuration file (defaults to the user config dir)")

// loadConfig resolves the application configuration for this invocation.
func loadConfig() (*config.Config, error) {
	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// runDir names the output directory of a run under the configured root.
func runDir(cfg *config.Config, e runlog.Entry) string {
	name := fmt.Sprintf("%s_%s_%s", e.Engine, e.StartDate, shortID(e.ID))
	return filepath.Join(cfg.OutputDir, name)
}

// writeArtifacts writes everything a run leaves behind: its parameters, the
// three reports and the chart.
func writeArtifacts(dir string, cfg *config.Config, s capsim.Strategy, res *capsim.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := capsim.SaveParams(filepath.Join(dir, "params.json"), s, res.Params); err != nil {
		return err
	}

	reports := map[string]string{
		"summary.md": renderer.SummaryMarkdown(res),
		"weekly.md":  renderer.WeeklyMarkdown(res),
		"monthly.md": renderer.MonthlyMarkdown(res),
	}
	for name, content := range reports {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return err
		}
	}

	opts := chart.Options{Width: cfg.Chart.Width, Height: cfg.Chart.Height}
	if err := chart.WriteFile(res, opts, filepath.Join(dir, "chart.png")); err != nil {
		// A chart needs at least two weeks; its absence should not fail the run.
		log.Printf("warning, could not draw the chart: %v", err)
	}
	return nil
}

// recordRun persists the run everywhere it belongs: the run log, the output
// directory, and the last-parameters file. Only the artifacts are fatal.
func recordRun(cfg *config.Config, s capsim.Strategy, res *capsim.Result) (runlog.Entry, error) {
	entry := runlog.NewEntry(res, "")
	entry.OutputDir = runDir(cfg, entry)

	if err := writeArtifacts(entry.OutputDir, cfg, s, res); err != nil {
		return entry, err
	}

	if err := capsim.SaveParams(cfg.ParamsFile, s, res.Params); err != nil {
		log.Printf("warning, could not save last parameters: %v", err)
	}

	l, err := runlog.Open(cfg.RunLog)
	if err != nil {
		log.Printf("warning, could not open the run log: %v", err)
		return entry, nil
	}
	defer l.Close()
	if err := l.Record(entry); err != nil {
		log.Printf("warning, could not record the run: %v", err)
	}
	return entry, nil
}
