package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"epicgraph/internal/beads"
	"epicgraph/internal/config"
	"epicgraph/internal/debug"
	"epicgraph/internal/interact"
	"epicgraph/internal/layout"
	"epicgraph/internal/overrides"
	"epicgraph/internal/remote"
	"epicgraph/internal/session"
	"epicgraph/internal/ui"
)

const defaultOutputFormat = "rich"

func main() {
	if err := config.Initialize(); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	epicFlag := flag.String("epic", "", "Epic to open (prompted for when omitted on a terminal)")
	dbPathFlag := flag.String("db-path", config.GetString(config.KeyDatabasePath), "Path to the Beads database file")
	backendFlag := flag.String("backend", config.GetString(config.KeyBeadsBackend), "Dependency writer: cli or http")
	jsonFlag := flag.Bool("json", config.GetBool(config.KeyOutputJSON), "Print the layout as JSON and exit")
	addFlag := flag.String("add", "", "Dependencies to add, as blocker:blocked[,...]")
	removeFlag := flag.String("remove", "", "Dependencies to remove, as blocker:blocked[,...]")
	moveFlag := flag.String("move", "", "Dependencies to retarget, as blocker:old:new[,...]")
	commitFlag := flag.Bool("commit", false, "Send the resulting changes to the tracker")
	yesFlag := flag.Bool("yes", false, "Commit without asking for confirmation")
	outputFormatFlag := flag.String("output-format", defaultOutputFormat, "Detail panel markdown style (rich, light, plain)")
	debugFlag := flag.Bool("debug", config.GetBool(config.KeyDebug), "Write a debug log")
	flag.Parse()

	if *versionFlag {
		printVersion(os.Stdout)
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})
	if err := applyFlagOverrides(visited, *dbPathFlag, *backendFlag, *debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	edits, err := parseEdits(*addFlag, *removeFlag, *moveFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	opts := runOptions{
		epicID:       strings.TrimSpace(*epicFlag),
		edits:        edits,
		jsonOutput:   *jsonFlag,
		commit:       *commitFlag,
		assumeYes:    *yesFlag,
		outputFormat: strings.TrimSpace(*outputFormatFlag),
	}
	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlagOverrides pushes explicitly set flags into the config so every
// package reads the same values.
func applyFlagOverrides(visited map[string]struct{}, dbPath, backend string, debugOn bool) error {
	values := map[string]any{}
	if _, ok := visited["db-path"]; ok {
		values[config.KeyDatabasePath] = strings.TrimSpace(dbPath)
	}
	if _, ok := visited["backend"]; ok {
		values[config.KeyBeadsBackend] = strings.TrimSpace(backend)
	}
	if _, ok := visited["debug"]; ok {
		values[config.KeyDebug] = debugOn
	}
	if len(values) == 0 {
		return nil
	}
	return config.ApplyOverrides(values)
}

type runOptions struct {
	epicID       string
	edits        []interact.EdgeEdit
	jsonOutput   bool
	commit       bool
	assumeYes    bool
	outputFormat string
}

// batch reports whether the run skips the interactive viewer.
func (o runOptions) batch() bool {
	return o.jsonOutput || o.commit || len(o.edits) > 0
}

func run(ctx context.Context, opts runOptions) error {
	if err := debug.Init(config.GetBool(config.KeyDebug)); err != nil {
		return fmt.Errorf("init debug log: %w", err)
	}
	defer debug.Close()

	client, err := beads.NewClient(beads.Options{
		DBPath:  config.GetString(config.KeyDatabasePath),
		Backend: config.GetString(config.KeyBeadsBackend),
		Binary:  config.GetString(config.KeyBeadsBinary),
		BaseURL: config.GetString(config.KeyBeadsURL),
		Token:   config.GetString(config.KeyBeadsToken),
	})
	if err != nil {
		return err
	}
	source := remote.NewBeadsSource(client, remote.SourceOptionsFromConfig())

	interactive := isInteractiveTTY()
	var prompt func() (string, error)
	if interactive {
		prompt = func() (string, error) { return promptForEpic(ctx, source) }
	}
	if opts.epicID, err = resolveEpic(opts.epicID, prompt); err != nil {
		return err
	}

	repo, err := overrides.OpenSQLite(ctx, config.GetString(config.KeyOverridesPath))
	if err != nil {
		return err
	}
	defer func() {
		_ = repo.Close()
	}()
	store := overrides.NewStore(repo)

	cache, err := layout.NewCache(config.GetInt(config.KeyLayoutCacheSize))
	if err != nil {
		return err
	}
	sess := session.New(source, remote.NewBeadsRemote(client), store, layout.NewEngine(cache), layout.SettingsFromConfig())
	defer func() {
		if err := sess.Flush(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: saving positions failed: %v\n", err)
		}
	}()

	if opts.batch() {
		var confirm func(string) bool
		if interactive && !opts.assumeYes {
			confirm = confirmCommit
		}
		return runBatch(ctx, sess, batchOptions{
			epicID:     opts.epicID,
			edits:      opts.edits,
			jsonOutput: opts.jsonOutput,
			commit:     opts.commit,
		}, os.Stdout, confirm)
	}

	epics, err := epicIDs(ctx, source)
	if err != nil {
		debug.Logf("listing epics: %v", err)
	}
	app := ui.NewApp(ui.Config{
		Session:      sess,
		EpicID:       opts.epicID,
		Epics:        epics,
		Version:      Version,
		OutputFormat: opts.outputFormat,
	})
	return runProgram(app, func(app *ui.App) programRunner {
		return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	})
}

// resolveEpic picks the epic to open: the flag, else the interactive prompt
// (remembered for next time), else the last remembered epic.
func resolveEpic(flagEpic string, prompt func() (string, error)) (string, error) {
	if flagEpic != "" {
		return flagEpic, nil
	}
	if prompt == nil {
		if last := strings.TrimSpace(config.GetString(config.KeyGraphLastEpic)); last != "" {
			return last, nil
		}
		return "", fmt.Errorf("--epic is required when not running in a terminal")
	}
	epicID, err := prompt()
	if err != nil {
		return "", err
	}
	if err := config.SaveSetting(config.KeyGraphLastEpic, epicID); err != nil {
		debug.Logf("main: remembering epic failed: %v", err)
	}
	return epicID, nil
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

func runProgram(app *ui.App, factory programFactory) error {
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
