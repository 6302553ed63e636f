// Package main provides the CLI entrypoint for pwdrill.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/pwdrill/internal/chart"
	"github.com/verte-zerg/pwdrill/internal/config"
	"github.com/verte-zerg/pwdrill/internal/model"
	"github.com/verte-zerg/pwdrill/internal/passgen"
	"github.com/verte-zerg/pwdrill/internal/stats"
	"github.com/verte-zerg/pwdrill/internal/statsui"
	"github.com/verte-zerg/pwdrill/internal/store"
	"github.com/verte-zerg/pwdrill/internal/tui"
	"github.com/verte-zerg/pwdrill/internal/wordlist"
)

const (
	defaultTickMs       = 10
	defaultFeedbackMs   = 3000
	defaultMaskLimit    = 20
	defaultSuggestWords = 3
	defaultCurveWindow  = 10
)

const debugEnv = "PWDRILL_DEBUG"

var (
	practiceClearTarget  bool
	practiceTickMs       int
	practiceFeedbackMs   int
	practiceMaskLimit    int
	practiceRecord       bool
	practiceChartDir     string
	practiceWordList     string
	practiceSuggestWords int

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool

	chartSince string
	chartLast  int
	chartOut   string

	suggestWords int
	suggestCount int
)

func main() {
	closeLog := setupDebugLog()
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// setupDebugLog routes the standard logger to the file named by PWDRILL_DEBUG
// and discards it otherwise.
func setupDebugLog() func() {
	path := strings.TrimSpace(os.Getenv(debugEnv))
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := tea.LogToFile(path, "pwdrill")
	if err != nil {
		logErrf("failed to open debug log: %v\n", err)
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close debug log: %v\n", cerr)
		}
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pwdrill",
		Short:         "TUI password typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().BoolVar(&practiceClearTarget, "clear-target", false, "clear the target field once it is set")
	rootCmd.Flags().IntVar(&practiceTickMs, "tick-ms", defaultTickMs, "timer display refresh interval in milliseconds")
	rootCmd.Flags().IntVar(&practiceFeedbackMs, "feedback-ms", defaultFeedbackMs, "feedback message display time in milliseconds")
	rootCmd.Flags().IntVar(&practiceMaskLimit, "mask-limit", defaultMaskLimit, "maximum mask length in the history list")
	rootCmd.Flags().BoolVar(&practiceRecord, "record", false, "record attempt metrics (never text) to the local database")
	rootCmd.Flags().StringVar(&practiceChartDir, "chart-dir", "", "directory for exported chart images")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list for suggested passphrases")
	rootCmd.Flags().IntVar(&practiceSuggestWords, "suggest-words", defaultSuggestWords, "words per suggested passphrase")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newChartCmd())
	rootCmd.AddCommand(newSuggestCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "clear-target", &practiceClearTarget, fileCfg.Practice.ClearTarget)
	applyIntConfig(cmd, "tick-ms", &practiceTickMs, fileCfg.Practice.TickMs)
	applyIntConfig(cmd, "feedback-ms", &practiceFeedbackMs, fileCfg.Practice.FeedbackMs)
	applyIntConfig(cmd, "mask-limit", &practiceMaskLimit, fileCfg.Practice.MaskLimit)
	applyBoolConfig(cmd, "record", &practiceRecord, fileCfg.Practice.Record)
	applyStringConfig(cmd, "chart-dir", &practiceChartDir, fileCfg.Practice.ChartDir)
	applyStringConfig(cmd, "wordlist", &practiceWordList, fileCfg.Practice.WordList)
	applyIntConfig(cmd, "suggest-words", &practiceSuggestWords, fileCfg.Practice.SuggestWords)

	if err := validatePractice(); err != nil {
		return err
	}
	cfg := model.Config{
		ClearTarget:     practiceClearTarget,
		TickInterval:    time.Duration(practiceTickMs) * time.Millisecond,
		FeedbackTimeout: time.Duration(practiceFeedbackMs) * time.Millisecond,
		MaskLimit:       practiceMaskLimit,
		Record:          practiceRecord,
		ChartDir:        resolveChartDir(practiceChartDir),
		WordListPath:    resolveWordListPath(practiceWordList),
		SuggestWords:    practiceSuggestWords,
	}

	words, err := wordlist.Load(cfg.WordListPath)
	if err != nil {
		logErrf("failed to load word list %s, using built-in words: %v\n", cfg.WordListPath, err)
		words = wordlist.Default()
	}

	var st *store.Store
	if cfg.Record {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	log.Printf("practice started: record=%v tick=%s", cfg.Record, cfg.TickInterval)
	m := tui.NewModel(cfg, tui.Options{
		Store:     st,
		Generator: passgen.New(),
		Words:     words,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse recorded practice runs",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print the report instead of opening the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)

	cfg, err := buildStatsConfig(statsSince, statsLast, statsCurveWindow)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return renderPlainStats(cmd.OutOrStdout(), st, cfg)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func renderPlainStats(w io.Writer, st *store.Store, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(w, report.Runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.Runs) == 0 {
		return nil
	}
	if err := stats.RenderRunTable(w, report.Runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurves(w, report.Attempts, cfg.CurveWindow); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Export PNG charts of recorded attempts",
		Args:  cobra.NoArgs,
		RunE:  runChartCmd,
	}
	cmd.Flags().StringVar(&chartSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&chartLast, "last", 0, "limit to last N runs")
	cmd.Flags().StringVar(&chartOut, "out", "", "output directory")
	return cmd
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "out", &chartOut, fileCfg.Practice.ChartDir)

	cfg, err := buildStatsConfig(chartSince, chartLast, 1)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	prefix := "pwdrill-history-" + time.Now().Format("20060102-150405")
	paths, err := chart.Export(resolveChartDir(chartOut), prefix, report.Chart())
	if err != nil {
		return fmt.Errorf("failed to export charts: %w", err)
	}
	for _, p := range paths {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print practice passphrases",
		Args:  cobra.NoArgs,
		RunE:  runSuggestCmd,
	}
	cmd.Flags().IntVar(&suggestWords, "words", defaultSuggestWords, "words per passphrase")
	cmd.Flags().IntVar(&suggestCount, "count", 1, "number of passphrases")
	return cmd
}

func runSuggestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "words", &suggestWords, fileCfg.Practice.SuggestWords)
	if suggestWords <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if suggestCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	wordPath := config.DefaultWordListPath()
	if fileCfg.Practice.WordList != nil {
		wordPath = resolveWordListPath(*fileCfg.Practice.WordList)
	}
	words, err := wordlist.Load(wordPath)
	if err != nil {
		return fmt.Errorf("failed to load word list: %w", err)
	}
	return writeSuggestions(cmd.OutOrStdout(), passgen.New(), words, suggestWords, suggestCount)
}

func writeSuggestions(w io.Writer, gen *passgen.Generator, words []string, perPhrase, count int) error {
	opts := passgen.DefaultOptions()
	opts.Words = perPhrase
	for i := 0; i < count; i++ {
		if _, err := fmt.Fprintln(w, gen.Passphrase(words, opts)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func buildStatsConfig(since string, last, window int) (model.StatsConfig, error) {
	var sinceTime *time.Time
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window < 1 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be >= 1")
	}
	return model.StatsConfig{Since: sinceTime, Last: last, CurveWindow: window}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pwdrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# clear-target = false    # Clear the target field once it is set
# tick-ms = %d            # Timer display refresh interval (ms)
# feedback-ms = %d      # Feedback message display time (ms)
# mask-limit = %d         # Maximum mask length in the history list
# record = false          # Record attempt metrics (never text) to %s
# chart-dir = %q
# wordlist = %q
# suggest-words = %d       # Words per suggested passphrase

[stats]
# curve-window = %d       # Moving average window
`,
		defaultTickMs,
		defaultFeedbackMs,
		defaultMaskLimit,
		config.DefaultDBPath(),
		config.DefaultChartDir(),
		config.DefaultWordListPath(),
		defaultSuggestWords,
		defaultCurveWindow,
	)
}

func validatePractice() error {
	if practiceTickMs <= 0 {
		return fmt.Errorf("--tick-ms must be > 0")
	}
	if practiceFeedbackMs <= 0 {
		return fmt.Errorf("--feedback-ms must be > 0")
	}
	if practiceMaskLimit <= 0 {
		return fmt.Errorf("--mask-limit must be > 0")
	}
	if practiceSuggestWords <= 0 {
		return fmt.Errorf("--suggest-words must be > 0")
	}
	return nil
}

func resolveChartDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return config.DefaultChartDir()
	}
	return expandHome(dir)
}

func resolveWordListPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return config.DefaultWordListPath()
	}
	return expandHome(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
