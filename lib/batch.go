package lib

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// BatchResult is the outcome of formatting a single input value.
type BatchResult struct {
	Index  int
	Input  string
	Output string
	Err    error
}

// BatchFormatter formats many millisecond values with a pool of workers.
type BatchFormatter struct {
	parallelism int
	strict      bool

	// Progress receives a progress bar when set. Nil hides it.
	Progress io.Writer
}

func NewBatchFormatter(parallelism int, strict bool) *BatchFormatter {
	if parallelism < 1 {
		parallelism = 1
	}
	return &BatchFormatter{
		parallelism: parallelism,
		strict:      strict,
	}
}

// FormatAll parses and formats every input in parallel. Results are returned
// in input order; per-value failures are reported in BatchResult.Err. The
// returned error is non-nil only if ctx is done before all values finish.
func (bf *BatchFormatter) FormatAll(ctx context.Context, inputs []string) ([]BatchResult, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	slog.Debug("Starting batch formatting",
		"totalValues", len(inputs),
		"workers", bf.parallelism,
		"strict", bf.strict)

	bar := bf.newProgressBar(len(inputs))

	jobs := make(chan int, len(inputs))
	results := make(chan BatchResult, len(inputs))

	var wg sync.WaitGroup
	for i := 0; i < bf.parallelism; i++ {
		wg.Add(1)
		go bf.worker(ctx, &wg, inputs, jobs, results)
	}

	go func() {
		defer close(jobs)
		for i := range inputs {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]BatchResult, len(inputs))
	done := 0
	failed := 0
	for result := range results {
		ordered[result.Index] = result
		done++
		if result.Err != nil {
			failed++
		}
		bar.Add(1)
	}

	bar.Finish()

	if done < len(inputs) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	slog.Debug("Batch formatting completed",
		"formattedValues", done-failed,
		"errors", failed)

	return ordered, nil
}

func (bf *BatchFormatter) worker(ctx context.Context, wg *sync.WaitGroup, inputs []string, jobs <-chan int, results chan<- BatchResult) {
	defer wg.Done()

	for {
		select {
		case i, ok := <-jobs:
			if !ok {
				return
			}
			results <- bf.formatOne(i, inputs[i])

		case <-ctx.Done():
			return
		}
	}
}

func (bf *BatchFormatter) formatOne(index int, input string) BatchResult {
	result := BatchResult{Index: index, Input: input}

	ms, err := ParseElapsed(input)
	if err != nil {
		result.Err = err
		return result
	}

	if bf.strict {
		result.Output, result.Err = FormatElapsedStrict(ms)
	} else {
		result.Output = FormatElapsed(ms)
	}
	return result
}

func (bf *BatchFormatter) newProgressBar(total int) *progressbar.ProgressBar {
	if bf.Progress == nil {
		return progressbar.NewOptions(total, progressbar.OptionSetVisibility(false))
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(bf.Progress),
		progressbar.OptionSetDescription("Formatting values"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(50),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
