package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/capsim/runlog"
	"github.com/google/subcommands"
)

type cleanCmd struct {
	logs  bool
	force bool
}

func (*cleanCmd) Name() string     { return "clean" }
func (*cleanCmd) Synopsis() string { return "delete the output directories of past runs" }
func (*cleanCmd) Usage() string {
	return `wcs clean [-logs] [-f]

  Deletes every run directory under the configured output directory. With
  -logs the run log is emptied too. Asks for confirmation unless -f is
  given.
`
}

func (c *cleanCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.logs, "logs", false, "Also empty the run log")
	f.BoolVar(&c.force, "f", false, "Do not ask for confirmation")
}

func (c *cleanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var dirs []string
	entries, err := os.ReadDir(cfg.OutputDir)
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(cfg.OutputDir, entry.Name()))
		}
	}

	if len(dirs) == 0 && !c.logs {
		fmt.Println("Nothing to clean.")
		return subcommands.ExitSuccess
	}

	if !c.force && !confirm(fmt.Sprintf("Delete %d run directories under %q", len(dirs), cfg.OutputDir)) {
		fmt.Println("Aborted.")
		return subcommands.ExitSuccess
	}

	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", dir, err)
			return subcommands.ExitFailure
		}
	}
	fmt.Printf("Deleted %d run directories.\n", len(dirs))

	if c.logs {
		l, err := runlog.Open(cfg.RunLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening the run log: %v\n", err)
			return subcommands.ExitFailure
		}
		defer l.Close()
		n, err := l.Prune()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error pruning the run log: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Pruned %d runs from the log.\n", n)
	}
	return subcommands.ExitSuccess
}

func confirm(question string) bool {
	fmt.Printf("%s? [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
