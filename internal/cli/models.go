package cli

import (
	"flag"
	"fmt"
	"io"

	"connections/internal/config"
	"connections/internal/responder"
)

func runModels(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		registry, err := responder.LoadRegistry(cfg.Inputs.ModelsFile)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load model registry: %v\n", err)
			return ExitError
		}

		for _, name := range registry.Names() {
			spec, err := registry.Lookup(name)
			if err != nil {
				fmt.Fprintf(stderr, "Registry lookup failed: %v\n", err)
				return ExitError
			}
			kind := "standard"
			if spec.Reasoning {
				kind = "reasoning"
			}
			fmt.Fprintf(stdout, "%-30s %-10s %s\n", spec.Name, kind, spec.Slug)
		}
		return ExitOK
	}
}
