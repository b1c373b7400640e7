// Package scan wraps the SANE scanimage command line tool. Pages are
// acquired in batch mode from the document feeder into per-page TIFF files
// inside a caller-provided work directory.
package scan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// A4 page geometry in millimetres, passed to scanimage -x/-y.
const (
	pageWidthMM  = 210
	pageHeightMM = 297
)

// scanimage exits with 7 when the document feeder runs out of pages, which
// is the normal end of a batch scan.
const exitFeederEmpty = 7

// pagePattern is the batch filename template handed to scanimage.
const pagePattern = "page-%03d.tif"

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onOutput func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithBinary overrides the default scanimage binary name.
func WithBinary(binary string) Option {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// Client drives one scanimage batch invocation per call.
type Client struct {
	binary     string
	device     string
	resolution int
	exec       Executor
}

// New constructs a scanimage client for the given device and resolution.
func New(device string, resolution int, opts ...Option) (*Client, error) {
	device = strings.TrimSpace(device)
	if device == "" {
		return nil, errors.New("scanner device required")
	}
	if resolution <= 0 {
		return nil, fmt.Errorf("scanner resolution must be positive, got %d", resolution)
	}
	client := &Client{
		binary:     "scanimage",
		device:     device,
		resolution: resolution,
		exec:       commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Pages scans into workdir and returns the page files in page order. A
// pageCount of zero scans every page the feeder delivers.
func (c *Client) Pages(ctx context.Context, workdir string, pageCount int) ([]string, error) {
	if strings.TrimSpace(workdir) == "" {
		return nil, errors.New("work directory required")
	}

	args := []string{
		"-x", strconv.Itoa(pageWidthMM),
		"-y", strconv.Itoa(pageHeightMM),
		"--device-name", c.device,
		"--format", "tiff",
		"--resolution", strconv.Itoa(c.resolution),
		"--batch=" + filepath.Join(workdir, pagePattern),
	}
	if pageCount > 0 {
		args = append(args, "--batch-count", strconv.Itoa(pageCount))
	}

	if err := c.exec.Run(ctx, c.binary, args, nil); err != nil {
		return nil, fmt.Errorf("scanimage: %w", err)
	}

	pages, err := filepath.Glob(filepath.Join(workdir, "page-*.tif"))
	if err != nil {
		return nil, fmt.Errorf("collect pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, errors.New("scanimage produced no pages")
	}
	sort.Strings(pages)
	return pages, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	cmd.Stdout = os.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", binary, err)
	}

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		if onOutput != nil {
			onOutput(scanner.Text())
		}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == exitFeederEmpty {
			return nil
		}
		return err
	}
	return nil
}
