package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"connections/internal/config"
	"connections/internal/duckdb"
	"connections/internal/game"
	"connections/internal/logging"
	"connections/internal/prompt"
	"connections/internal/puzzle"
	"connections/internal/report"
	"connections/internal/responder"
	"connections/internal/runner"
	"connections/internal/ui/live"
)

// runEval is injectable for CLI tests.
var runEval = runner.Run

// evalFlags holds the flags shared by run and rank.
type evalFlags struct {
	configPath string
	model      string
	puzzles    string
	count      int
	trials     int
	seed       int64
	workers    int
	outputDir  string
	database   string
	uiMode     string
	noColor    bool
}

func addEvalFlags(fs *flag.FlagSet, flags *evalFlags, defaultTrials int) {
	fs.StringVar(&flags.configPath, "config", config.DefaultPath, "Path to .connections.yml")
	fs.StringVar(&flags.model, "model", "", "Model name from the registry")
	fs.StringVar(&flags.puzzles, "puzzles", "", "Comma-separated puzzle ids")
	fs.IntVar(&flags.count, "count", 0, "Limit to the first N selected puzzles")
	fs.IntVar(&flags.trials, "trials", defaultTrials, "Trials per puzzle")
	fs.Int64Var(&flags.seed, "seed", 0, "Run seed (0 picks one from the clock)")
	fs.IntVar(&flags.workers, "workers", 0, "Concurrent trials (default from config)")
	fs.StringVar(&flags.outputDir, "output-dir", "", "Override output directory")
	fs.StringVar(&flags.database, "db", "", "DuckDB result database (default from config)")
	fs.StringVar(&flags.uiMode, "ui", "auto", "UI mode: auto|live|plain")
	fs.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
}

func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		return executeEval(cmd, args, stdout, stderr, 1, false)
	}
}

func runRank(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		return executeEval(cmd, args, stdout, stderr, runner.DefaultTrialsPerPuzzle, true)
	}
}

// executeEval drives a full evaluation; rank differs only in the default
// trial count and the report focus.
func executeEval(cmd *Command, args []string, stdout, stderr io.Writer, defaultTrials int, rankOnly bool) int {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK
	}
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var flags evalFlags
	addEvalFlags(fs, &flags, defaultTrials)
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if flags.model == "" {
		fmt.Fprintln(stderr, "--model is required")
		return ExitUsage
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return ExitError
	}
	if flags.outputDir != "" {
		cfg.OutputDir = flags.outputDir
	}
	if flags.database != "" {
		cfg.Database = flags.database
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	inputs, err := loadInputs(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load inputs: %v\n", err)
		return ExitError
	}
	spec, err := inputs.registry.Lookup(flags.model)
	if err != nil {
		fmt.Fprintf(stderr, "Unknown model: %v\n", err)
		return ExitError
	}
	selection, err := parseSelection(flags.puzzles, flags.count)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid puzzle selection: %v\n", err)
		return ExitUsage
	}
	puzzles, err := inputs.catalog.Select(selection)
	if err != nil {
		fmt.Fprintf(stderr, "Puzzle selection failed: %v\n", err)
		return ExitError
	}

	resp, err := responder.FromEnv(spec, nil)
	if err != nil {
		fmt.Fprintf(stderr, "Responder setup failed: %v\n", err)
		return ExitError
	}

	runID, err := runner.NewRunID()
	if err != nil {
		fmt.Fprintf(stderr, "Run id generation failed: %v\n", err)
		return ExitError
	}
	seed := flags.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sink, cleanupSink, err := buildSink(cfg, runID)
	if err != nil {
		fmt.Fprintf(stderr, "Log setup failed: %v\n", err)
		return ExitError
	}
	defer cleanupSink()

	decision, err := resolveUIMode(flags.uiMode, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	if decision.warning != "" {
		fmt.Fprintln(stderr, decision.warning)
	}
	var observer runner.RunObserver
	var controller *live.Controller
	if decision.useLive {
		controller = live.Start(stdout, live.Options{NoColor: flags.noColor})
		observer = controller
	} else {
		observer = runner.NewProgressObserver(stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := runEval(ctx, runner.RunParams{
		RunID:           runID,
		Model:           spec.Name,
		Seed:            seed,
		Puzzles:         puzzles,
		TrialsPerPuzzle: flags.trials,
		Rules: game.Rules{
			MaxMistakes: cfg.Rules.MaxMistakes,
			MaxInvalid:  cfg.Rules.MaxInvalid,
			MaxGuesses:  cfg.Rules.MaxGuesses,
		},
		Template:  inputs.template,
		Responder: resp,
		Retry: responder.RetryPolicy{
			MaxAttempts: cfg.Retry.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Retry.BaseDelayMS) * time.Millisecond,
			MaxJitter:   500 * time.Millisecond,
		},
		Workers:   cfg.Workers,
		Sink:      sink,
		Observer:  observer,
		OutputDir: cfg.OutputDir,
	})
	if controller != nil {
		controller.Close()
		controller.Wait()
	}
	if runErr != nil {
		fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
		return ExitError
	}

	if rankOnly {
		fmt.Fprintln(stdout, report.RenderRankings(results.Rankings, flags.noColor))
	} else {
		fmt.Fprint(stdout, report.Render(results, flags.noColor))
	}
	paths, err := runner.NewOutputPaths(cfg.OutputDir, results.RunID)
	if err == nil {
		fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
	}

	if cfg.Database != "" {
		if err := ingestResults(ctx, cfg.Database, results); err != nil {
			fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Ingested into %s\n", cfg.Database)
	}
	return ExitOK
}

// runInputs bundles the three loaded input files.
type runInputs struct {
	catalog  puzzle.Catalog
	template prompt.Template
	registry responder.Registry
}

func loadInputs(cfg config.Config) (runInputs, error) {
	catalog, err := puzzle.LoadCatalog(cfg.Inputs.PuzzlesFile)
	if err != nil {
		return runInputs{}, err
	}
	template, err := prompt.LoadTemplate(cfg.Inputs.PromptFile)
	if err != nil {
		return runInputs{}, err
	}
	registry, err := responder.LoadRegistry(cfg.Inputs.ModelsFile)
	if err != nil {
		return runInputs{}, err
	}
	return runInputs{catalog: catalog, template: template, registry: registry}, nil
}

// parseSelection turns the --puzzles and --count flags into a selection.
func parseSelection(ids string, count int) (puzzle.Selection, error) {
	selection := puzzle.Selection{Count: count}
	if strings.TrimSpace(ids) == "" {
		return selection, nil
	}
	for _, field := range strings.Split(ids, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			return puzzle.Selection{}, fmt.Errorf("puzzle id %q is not a number", field)
		}
		selection.IDs = append(selection.IDs, id)
	}
	return selection, nil
}

// buildSink opens the JSONL exchange log, fanned out to the result
// database when one is configured.
func buildSink(cfg config.Config, runID string) (logging.Sink, func(), error) {
	jsonl, err := logging.NewJSONLFile(cfg.LogDir, runID)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database == "" {
		return jsonl, func() { _ = jsonl.Close() }, nil
	}
	db, err := duckdb.Open(cfg.Database)
	if err != nil {
		_ = jsonl.Close()
		return nil, nil, err
	}
	dbSink := duckdb.NewSink(db)
	cleanup := func() {
		_ = jsonl.Close()
		_ = db.Close()
	}
	return logging.Multi(jsonl, dbSink), cleanup, nil
}

// ingestResults stores run results in the configured database.
func ingestResults(ctx context.Context, path string, results runner.Results) error {
	db, err := duckdb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()
	return duckdb.IngestResults(ctx, db, results)
}
