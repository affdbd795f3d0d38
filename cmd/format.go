package cmd

import (
	"bufio"
	"crossword-clock/lib"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type formatOptions struct {
	file        string
	strict      bool
	parallelism int
	verbose     bool
}

func newFormatCmd() *cobra.Command {
	opts := &formatOptions{}

	formatCmd := &cobra.Command{
		Use:   "format [milliseconds...]",
		Short: "Format elapsed milliseconds as clock strings",
		Long: `Format each elapsed time (in milliseconds) as H:MM:SS, or M:SS when
under an hour. Values come from arguments and/or a file with one value per
line ("-" reads stdin). Blank lines and lines starting with # are skipped.

Output is one clock string per value, in input order. Values that cannot be
formatted are logged and left out of the output.`,
		Example: `  crossword-clock format 3661000 59000
  crossword-clock format --strict -f times.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	formatCmd.Flags().StringVarP(&opts.file, "file", "f", "", "File with one millisecond value per line (- for stdin)")
	formatCmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject negative and non-finite values")
	formatCmd.Flags().IntVarP(&opts.parallelism, "parallelism", "p", 0, "Number of parallel workers (default from config)")
	formatCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	return formatCmd
}

func runFormat(cmd *cobra.Command, args []string, opts *formatOptions) error {
	setupLogging(opts.verbose)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("strict") {
		opts.strict = cfg.Format.Strict
	}
	if !cmd.Flags().Changed("parallelism") {
		opts.parallelism = cfg.Format.Parallelism
	}

	inputs := append([]string(nil), args...)
	if opts.file != "" {
		lines, err := readValues(opts.file, cmd.InOrStdin())
		if err != nil {
			return err
		}
		inputs = append(inputs, lines...)
	}

	if len(inputs) == 0 {
		return fmt.Errorf("no values to format: pass milliseconds as arguments or use --file")
	}

	formatter := lib.NewBatchFormatter(opts.parallelism, opts.strict)
	if isTerminal(os.Stderr) && !isTerminal(cmd.OutOrStdout()) {
		formatter.Progress = os.Stderr
	}

	results, err := formatter.FormatAll(cmd.Context(), inputs)
	if err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			slog.Warn("Value could not be formatted", "input", result.Input, "error", result.Err)
			continue
		}
		fmt.Fprintln(out, result.Output)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d values could not be formatted", failed, len(results))
	}
	return nil
}

// readValues returns the non-blank, non-comment lines of path, or of stdin
// when path is "-".
func readValues(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open value file: %w", err)
		}
		defer file.Close()
		r = file
	}

	var values []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read values from %s: %w", path, err)
	}

	return values, nil
}
