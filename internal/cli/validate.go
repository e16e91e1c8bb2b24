package cli

import (
	"flag"
	"fmt"
	"io"

	"connections/internal/config"
)

func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", config.DefaultPath, "Path to .connections.yml")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config invalid: %v\n", err)
			return ExitError
		}
		inputs, err := loadInputs(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Inputs invalid: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Config OK: %d puzzles, %d models\n",
			len(inputs.catalog.Puzzles), len(inputs.registry.Names()))
		return ExitOK
	}
}
