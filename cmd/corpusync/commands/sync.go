// Package commands implements CLI command handlers for corpusync.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/grammarkit/corpusync/internal/sync"
	"github.com/grammarkit/corpusync/pkg/checkpoint"
	"github.com/grammarkit/corpusync/pkg/config"
	"github.com/grammarkit/corpusync/pkg/corpus"
	"github.com/grammarkit/corpusync/pkg/upstream"
)

// SyncCommand holds configuration and dependencies for the sync command.
type SyncCommand struct {
	configPath string
	dryRun     bool
	assumeYes  bool
	noColor    bool
	verbose    bool
}

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	sc := &SyncCommand{}

	cmd := &cobra.Command{
		Use:   "sync <upstream-repo> <corpus-repo>",
		Short: "Synchronize the corpus with the upstream fixture tree",
		Long: `Synchronize the local test corpus with the fixture files of an upstream
repository clone. Each fixture file is split into segments; every substantive
segment becomes one corpus entry. The revision last absorbed is tracked in a
checkpoint file; when upstream diverges from it, diff artifacts are written
for manual review and nothing is overwritten.

Examples:
  corpusync sync ~/src/typst ~/src/tree-sitter-typst
  corpusync sync --dry-run ~/src/typst ~/src/tree-sitter-typst`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.run(cmd.Context(), args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&sc.configPath, "config", "", "path to config file")
	cmd.Flags().BoolVar(&sc.dryRun, "dry-run", false, "preview corpus changes without writing anything")
	cmd.Flags().BoolVarP(&sc.assumeYes, "yes", "y", false, "answer yes to all confirmations")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVarP(&sc.verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

// run executes a sync (or preview) against the two repository paths.
func (sc *SyncCommand) run(ctx context.Context, upstreamPath, corpusPath string) error {
	if sc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	for _, p := range []string{upstreamPath, corpusPath} {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%s is not accessible: %w", p, err)
		}

		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", p)
		}
	}

	cfg, err := config.Load(sc.configPath)
	if err != nil {
		return err
	}

	logger := sc.newLogger(cfg)

	fixtureRoot := filepath.Join(upstreamPath, filepath.FromSlash(cfg.Upstream.FixtureDir))
	outputRoot := filepath.Join(corpusPath, filepath.FromSlash(cfg.Corpus.DirName))

	emitter := &corpus.Emitter{
		EntryPrefix: cfg.Corpus.EntryPrefix,
		EntryExt:    cfg.Corpus.EntryExt,
	}

	walker := &corpus.Walker{
		FixtureExt:    cfg.Upstream.FixtureExt,
		Separator:     cfg.Segment.Separator,
		CommentPrefix: cfg.Segment.CommentPrefix,
		DisplayRoot:   filepath.ToSlash(cfg.Corpus.DirName),
		Sink:          emitter,
		Log:           logger,
	}

	if sc.dryRun {
		return sc.preview(walker, fixtureRoot, outputRoot)
	}

	return sc.sync(ctx, cfg, walker, upstreamPath, fixtureRoot, outputRoot, logger)
}

// sync wires the orchestrator and reports its terminal state.
func (sc *SyncCommand) sync(
	ctx context.Context,
	cfg *config.Config,
	walker *corpus.Walker,
	upstreamPath, fixtureRoot, outputRoot string,
	logger *slog.Logger,
) error {
	repo, err := upstream.Open(upstreamPath)
	if err != nil {
		return err
	}
	defer repo.Free()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	orch := &sync.Orchestrator{
		Source:      &revisionSource{repo: repo, fixtureDir: cfg.Upstream.FixtureDir},
		Store:       checkpoint.NewStore(outputRoot),
		Walker:      walker,
		Prompt:      sc.prompter(),
		FixtureRoot: fixtureRoot,
		OutputRoot:  outputRoot,
		ArtifactDir: cwd,
		Out:         os.Stdout,
		Log:         logger,
	}

	result, err := orch.Run(ctx)
	if err != nil {
		return err
	}

	switch result.State {
	case sync.StateCommitted:
		printSummary(os.Stdout, result.Report)
		color.New(color.FgGreen).Fprintln(os.Stdout, "Corpus synchronized.")
	case sync.StateAborted:
		fmt.Fprintln(os.Stdout, "Aborted.")
	case sync.StateUpToDate, sync.StateDivergedHalt:
		// Already reported by the orchestrator.
	}

	return nil
}

// preview runs a dry-run walk and prints what a real sync would change.
func (sc *SyncCommand) preview(walker *corpus.Walker, fixtureRoot, outputRoot string) error {
	report, err := walker.Preview(fixtureRoot, outputRoot)
	if err != nil {
		return err
	}

	for _, p := range report.New {
		color.New(color.FgGreen).Fprintf(os.Stdout, "new:     %s\n", p)
	}

	for _, change := range report.Changed {
		color.New(color.FgYellow).Fprintf(os.Stdout, "changed: %s\n", change.Path)
		fmt.Fprint(os.Stdout, renderDiff(change.Diff))
	}

	fmt.Fprintf(os.Stdout, "%d new, %d changed, %d unchanged\n",
		len(report.New), len(report.Changed), report.Unchanged)

	return nil
}

// prompter selects the confirmation strategy for this invocation.
func (sc *SyncCommand) prompter() sync.Prompter {
	if sc.assumeYes {
		return sync.AssumeYes{}
	}

	return &sync.TerminalPrompter{In: os.Stdin, Out: os.Stdout}
}

// newLogger builds the structured logger from config and flags.
func (sc *SyncCommand) newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if sc.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printSummary renders the per-fixture conversion table.
func printSummary(w io.Writer, report *corpus.WalkReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Fixture", "Segments", "Emitted", "Size"})

	for _, f := range report.Files {
		tw.AppendRow(table.Row{
			f.FixturePath,
			f.Candidates,
			f.Emitted,
			humanize.Bytes(uint64(f.Bytes)),
		})
	}

	tw.AppendFooter(table.Row{
		"total", "", report.TotalEmitted(), humanize.Bytes(uint64(report.TotalBytes())),
	})
	tw.Render()
}

// renderDiff formats a line diff, colored unless colors are disabled.
func renderDiff(diffs []diffmatchpatch.Diff) string {
	var sb strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString(color.GreenString("+%s", d.Text))
		case diffmatchpatch.DiffDelete:
			sb.WriteString(color.RedString("-%s", d.Text))
		case diffmatchpatch.DiffEqual:
			// Context omitted.
		}
	}

	if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}

	return sb.String()
}
