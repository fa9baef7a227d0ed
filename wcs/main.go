package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/capsim/cmd"
	"github.com/etnz/capsim/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs before flag parsing and exits on its own when
	// invoked by the shell. `COMP_INSTALL=1 wcs` installs it.
	comp := completion()
	comp.Complete("wcs")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands fall through to wcs-<name> extensions in PATH.
	if name := flag.Arg(0); name != "" {
		if _, known := comp.Sub[name]; !known {
			if ran, code := cmd.RunExtension(name, flag.Args()[1:]); ran {
				os.Exit(code)
			}
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the CLI to the shell.
func completion() *complete.Command {
	engine := map[string]complete.Predictor{
		"pot":      predict.Something,
		"rate":     predict.Something,
		"weeks":    predict.Something,
		"currency": predict.Set{"EUR", "USD", "GBP", "CHF"},
		"start":    predict.Set{"today"},
		"params":   predict.Files("*.json"),
	}
	harvest := map[string]complete.Predictor{"cap": predict.Something}
	for name, p := range engine {
		harvest[name] = p
	}

	topicNames, _ := docs.All()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"growth":  {Flags: engine},
			"harvest": {Flags: harvest},
			"rerun":   {Args: predict.Something},
			"runs": {Flags: map[string]complete.Predictor{
				"n": predict.Something,
			}},
			"report": {Flags: map[string]complete.Predictor{
				"run":     predict.Something,
				"weekly":  predict.Nothing,
				"monthly": predict.Nothing,
				"summary": predict.Nothing,
			}},
			"chart": {Flags: map[string]complete.Predictor{
				"run":    predict.Something,
				"o":      predict.Files("*.png"),
				"width":  predict.Something,
				"height": predict.Something,
			}},
			"params": {Flags: map[string]complete.Predictor{
				"f":    predict.Files("*.json"),
				"save": predict.Files("*.json"),
				"q":    predict.Something,
			}},
			"clean": {Flags: map[string]complete.Predictor{
				"logs": predict.Nothing,
				"f":    predict.Nothing,
			}},
			"topic":  {Args: predict.Set(topicNames)},
			"assist": {Args: predict.Something},

			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}
