package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/capsim"
	"github.com/google/subcommands"
)

type paramsCmd struct {
	file string
	save string
	q    string
}

func (*paramsCmd) Name() string     { return "params" }
func (*paramsCmd) Synopsis() string { return "show, query or save the last run's parameters" }
func (*paramsCmd) Usage() string {
	return `wcs params [-f <file>] [-save <file>] [-q <jsonpath>]

  Works on the parameters of the last run (or of the file given with -f).
  Prints them by default, copies them with -save, or extracts one value
  with a JSONPath query.

Usage Examples:
# The weekly rate of the last run.
$ wcs params -q $.weekly_rate

# Keep the last run's inputs for later.
$ wcs params -save aggressive.json

`
}

func (c *paramsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "Parameters file to read (defaults to the last run's)")
	f.StringVar(&c.save, "save", "", "Write the parameters to this file")
	f.StringVar(&c.q, "q", "", "JSONPath query, e.g. $.initial_pot")
}

func (c *paramsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	file := c.file
	if file == "" {
		file = cfg.ParamsFile
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "No parameters at %q yet; run an engine first.\n", file)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}

	if c.save != "" {
		s, p, err := capsim.LoadParams(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := capsim.SaveParams(c.save, s, p); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Parameters saved to %s\n", c.save)
		return subcommands.ExitSuccess
	}

	if c.q != "" {
		return c.query(data)
	}

	fmt.Print(string(data))
	return subcommands.ExitSuccess
}

func (c *paramsCmd) query(data []byte) subcommands.ExitStatus {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing parameters: %v\n", err)
		return subcommands.ExitFailure
	}

	value, err := jsonpath.Get(c.q, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", c.q, err)
		return subcommands.ExitFailure
	}

	switch v := value.(type) {
	case string:
		fmt.Println(v)
	default:
		out, err := json.Marshal(v)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
	}
	return subcommands.ExitSuccess
}
