package workflow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"digitize/internal/config"
	"digitize/internal/fileutil"
	"digitize/internal/history"
	"digitize/internal/naming"
	"digitize/internal/profile"
)

// ErrScannerBusy reports that another digitize invocation holds the scanner
// lock.
var ErrScannerBusy = errors.New("another scan is already running")

// PageScanner acquires pages into a work directory.
type PageScanner interface {
	Pages(ctx context.Context, workdir string, pageCount int) ([]string, error)
}

// Converter turns page TIFFs into the final PDF.
type Converter interface {
	Combine(ctx context.Context, pages []string, outputPath string) error
	ToPDF(ctx context.Context, inputPath, outputPath string) error
	Clean(ctx context.Context, inputPath, outputPath string) error
}

// Recorder persists completed runs. May be nil to skip history.
type Recorder interface {
	Add(ctx context.Context, entry history.Entry) (history.Entry, error)
}

// Options carries per-run parameters that do not belong to the resolved
// profile configuration.
type Options struct {
	// ProfilePath is the dotted profile identifier used for this run,
	// recorded in history. Empty when no profile was requested.
	ProfilePath string
	// Pages limits the number of pages scanned; zero scans the whole feeder.
	Pages int
	// NoWait skips the operator prompt before scanning starts.
	NoWait bool
}

// Runner executes scan runs.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	scanner  PageScanner
	convert  Converter
	recorder Recorder

	input io.Reader
	now   func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithInput sets the reader the operator prompt waits on (default stdin).
func WithInput(r io.Reader) RunnerOption {
	return func(run *Runner) {
		if r != nil {
			run.input = r
		}
	}
}

// WithClock overrides the time source (for tests).
func WithClock(now func() time.Time) RunnerOption {
	return func(run *Runner) {
		if now != nil {
			run.now = now
		}
	}
}

// NewRunner constructs a Runner. recorder may be nil.
func NewRunner(cfg *config.Config, logger *slog.Logger, scanner PageScanner, converter Converter, recorder Recorder, opts ...RunnerOption) (*Runner, error) {
	if cfg == nil || logger == nil || scanner == nil || converter == nil {
		return nil, errors.New("runner requires config, logger, scanner, and converter")
	}
	runner := &Runner{
		cfg:      cfg,
		logger:   logger.With("component", "workflow"),
		scanner:  scanner,
		convert:  converter,
		recorder: recorder,
		input:    os.Stdin,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner, nil
}

// Run executes one scan against the resolved configuration and returns the
// final output path.
func (r *Runner) Run(ctx context.Context, resolved profile.Resolved, opts Options) (string, error) {
	filename, err := naming.MakeFilename(resolved, naming.Timestamp(r.now()))
	if err != nil {
		return "", err
	}

	if err := r.cfg.EnsureDirectories(); err != nil {
		return "", err
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.StagingDir, "digitize.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("acquire scanner lock: %w", err)
	}
	if !locked {
		return "", ErrScannerBusy
	}
	defer func() {
		_ = lock.Unlock()
	}()

	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)
	workdir := filepath.Join(r.cfg.Paths.StagingDir, runID)
	if err := os.MkdirAll(workdir, 0o755); err != nil {
		return "", fmt.Errorf("create work directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(workdir)
	}()

	if !opts.NoWait {
		if err := r.waitForOperator(ctx); err != nil {
			return "", err
		}
	}

	logger.Info("scanning", "profile", opts.ProfilePath, "name", resolved.Name, "pages", opts.Pages)
	pages, err := r.scanner.Pages(ctx, workdir, opts.Pages)
	if err != nil {
		return "", err
	}
	logger.Info("combining pages", "count", len(pages))

	combined := filepath.Join(workdir, "output.tif")
	if err := r.convert.Combine(ctx, pages, combined); err != nil {
		return "", err
	}

	rawPDF := filepath.Join(workdir, "output.pdf")
	if err := r.convert.ToPDF(ctx, combined, rawPDF); err != nil {
		return "", err
	}

	finalPDF := rawPDF
	if resolved.OCR {
		logger.Info("running ocr")
		cleanPDF := filepath.Join(workdir, "clean.pdf")
		if err := r.convert.Clean(ctx, rawPDF, cleanPDF); err != nil {
			return "", err
		}
		finalPDF = cleanPDF
	}

	if err := os.MkdirAll(resolved.Path, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", resolved.Path, err)
	}
	destination := filepath.Join(resolved.Path, filename+".pdf")
	if err := fileutil.MoveFile(finalPDF, destination); err != nil {
		return "", fmt.Errorf("move result: %w", err)
	}
	logger.Info("scan complete", "output", destination)

	if r.recorder != nil {
		entry := history.Entry{
			RunID:      runID,
			Profile:    opts.ProfilePath,
			Name:       resolved.Name,
			OutputPath: destination,
			Pages:      len(pages),
			OCR:        resolved.OCR,
			Keywords:   resolved.Keywords,
		}
		if _, err := r.recorder.Add(ctx, entry); err != nil {
			// History is bookkeeping; a failed insert must not fail the scan.
			logger.Warn("record history", "error", err)
		}
	}

	return destination, nil
}

func (r *Runner) waitForOperator(ctx context.Context) error {
	fmt.Fprint(os.Stderr, "Load pages into the feeder and press Enter to scan... ")
	lines := make(chan error, 1)
	go func() {
		reader := bufio.NewReader(r.input)
		_, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		lines <- err
	}()
	select {
	case err := <-lines:
		if err != nil {
			return fmt.Errorf("wait for operator: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
