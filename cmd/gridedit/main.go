// Package main provides the CLI entry point for gridedit-go.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/gridedit-go/pkg/gridedit"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/clipboard"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/codec"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/models"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/output"
	"github.com/ukaji3/gridedit-go/pkg/gridedit/tui"
)

var (
	outputPath      string
	csvPath         string
	pretty          bool
	rows            int
	cols            int
	historyLimit    int
	assumeYes       bool
	systemClipboard bool
	logLevel        string
	logFile         string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridedit",
		Short: "Edit spreadsheet-like grids with undo, clipboard and search",
		Long: `gridedit-go is a grid editing engine with undo/redo history,
spreadsheet clipboard interchange and search filtering.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().IntVar(&rows, "rows", gridedit.DefaultOptions().Rows, "Initial row count")
	rootCmd.PersistentFlags().IntVar(&cols, "cols", gridedit.DefaultOptions().Cols, "Initial column count")
	rootCmd.PersistentFlags().IntVar(&historyLimit, "history-limit", 0, "Maximum undo snapshots (0: unlimited)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Confirm clear and delete without prompting")
	rootCmd.PersistentFlags().BoolVar(&systemClipboard, "system-clipboard", false, "Use the system clipboard instead of an in-process buffer")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a file instead of stderr")

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run an edit script and print the resulting grid as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runScriptCmd,
	}
	runCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	runCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	exportCmd := &cobra.Command{
		Use:   "export [script]",
		Short: "Run an edit script and write the grid as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVCmd,
	}
	exportCmd.Flags().StringVarP(&csvPath, "output", "o", codec.ExportFileName, "CSV file path (\"-\" for stdout)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Edit a grid in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUICmd,
	}

	rootCmd.AddCommand(runCmd, exportCmd, tuiCmd)
	return rootCmd
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", logLevel)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func openLog(cmd *cobra.Command, fallback io.Writer) (*slog.Logger, func(), error) {
	if logFile == "" {
		logger, err := newLogger(fallback)
		return logger, func() {}, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger, err := newLogger(f)
	return logger, func() { f.Close() }, err
}

func newController(cmd *cobra.Command, logger *slog.Logger) *gridedit.Controller {
	opts := gridedit.DefaultOptions()
	opts.Rows, opts.Cols = rows, cols
	opts.HistoryLimit = historyLimit
	opts.Logger = logger
	if systemClipboard {
		opts.Clipboard = clipboard.Default(logger)
	} else {
		opts.Clipboard = &clipboard.Buffer{}
	}
	opts.Confirm = promptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
	return gridedit.New(opts)
}

func promptConfirmer(in io.Reader, out io.Writer) gridedit.Confirmer {
	reader := bufio.NewReader(in)
	return gridedit.ConfirmFunc(func(prompt string) bool {
		if assumeYes {
			return true
		}
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

func runScript(cmd *cobra.Command, path string) (*gridedit.Controller, error) {
	// Validate input file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	logger, closeLog, err := openLog(cmd, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	defer closeLog()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctrl := newController(cmd, logger)
	s := &script{ctrl: ctrl, logger: logger, baseDir: filepath.Dir(path)}
	if err := s.Run(cmd.Context(), f); err != nil {
		return nil, fmt.Errorf("script failed: %w", err)
	}
	return ctrl, nil
}

func runScriptCmd(cmd *cobra.Command, args []string) error {
	ctrl, err := runScript(cmd, args[0])
	if err != nil {
		return err
	}

	doc := &models.Document{
		Sheet:     output.Sheet(ctrl.Grid()),
		View:      ctrl.View(),
		Clipboard: ctrl.LastCopy(),
	}

	// Serialize to JSON
	jsonData, err := output.ToJSON(doc, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	// Write output
	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func exportCSVCmd(cmd *cobra.Command, args []string) error {
	ctrl, err := runScript(cmd, args[0])
	if err != nil {
		return err
	}

	if csvPath == "-" {
		if err := ctrl.ExportCSV(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()
	if err := ctrl.ExportCSV(f); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func runTUICmd(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := openLog(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := gridedit.DefaultOptions()
	opts.Rows, opts.Cols = rows, cols
	opts.HistoryLimit = historyLimit
	opts.Logger = logger
	clip := clipboard.Default(logger)
	opts.Clipboard = clip

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	return tui.Run(gridedit.New(opts), clip, wd)
}
