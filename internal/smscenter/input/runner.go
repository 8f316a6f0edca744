package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// maxLineLength bounds a single command line, quoted message text included.
const maxLineLength = 1 << 20

// Executor applies commands. *app.Center implements it.
type Executor interface {
	Execute(ctx context.Context, cmd domain.Command) error
}

// Summary counts what a Runner did with its input.
type Summary struct {
	Lines    int `json:"lines"`
	Commands int `json:"commands"`
	Failed   int `json:"failed"`
	Invalid  int `json:"invalid"`
}

// Runner reads the command language line by line and executes each command
// as soon as its line is parsed.
type Runner struct {
	executor    Executor
	logger      *slog.Logger
	skipInvalid bool
}

// NewRunner creates a Runner. With skipInvalid, unparsable lines are logged
// and skipped; otherwise the first one stops the run.
func NewRunner(executor Executor, logger *slog.Logger, skipInvalid bool) *Runner {
	return &Runner{
		executor:    executor,
		logger:      logger.With("component", "command_runner"),
		skipInvalid: skipInvalid,
	}
}

// RunFile runs every command in the file at path.
func (r *Runner) RunFile(ctx context.Context, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	r.logger.InfoContext(ctx, "Processing input file", "path", path)
	return r.Run(ctx, f)
}

// Run executes the commands read from src. Command failures (duplicate
// registration, rejected sends) are logged and counted; they do not stop the run.
func (r *Runner) Run(ctx context.Context, src io.Reader) (Summary, error) {
	var summary Summary
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Lines++

		cmds, err := ParseLine(scanner.Text())
		if err != nil {
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				parseErr.Line = summary.Lines
			}
			summary.Invalid++
			commandsRejectedCounter.WithLabelValues(sourceFile).Inc()
			if !r.skipInvalid {
				return summary, err
			}
			r.logger.WarnContext(ctx, "Skipping invalid line", "error", err)
			continue
		}

		for _, cmd := range cmds {
			summary.Commands++
			if err := r.executor.Execute(ctx, cmd); err != nil {
				summary.Failed++
				r.logger.ErrorContext(ctx, "Command failed", "line", summary.Lines, "kind", cmd.Kind(), "error", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			summary.Invalid++
			return summary, fmt.Errorf("line %d exceeds %d bytes: %w", summary.Lines+1, maxLineLength, err)
		}
		return summary, fmt.Errorf("failed to read commands: %w", err)
	}
	return summary, nil
}
