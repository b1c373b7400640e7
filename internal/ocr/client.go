// Package ocr wraps the post-scan toolchain: tiffcp combines page TIFFs,
// tiff2pdf produces the PDF, and ocrmypdf straightens, cleans, and adds the
// text layer. Each step shells out; nothing here parses image data.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// Option configures the CLI client.
type Option func(*CLI)

// WithTiffcpBinary overrides the tiffcp binary name.
func WithTiffcpBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.tiffcp = binary
		}
	}
}

// WithTiff2pdfBinary overrides the tiff2pdf binary name.
func WithTiff2pdfBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.tiff2pdf = binary
		}
	}
}

// WithOcrmypdfBinary overrides the ocrmypdf binary name.
func WithOcrmypdfBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.ocrmypdf = binary
		}
	}
}

// CLI wraps the external page-combining, PDF conversion, and OCR tools.
type CLI struct {
	tiffcp   string
	tiff2pdf string
	ocrmypdf string
	language string
}

// NewCLI constructs a client that runs OCR in the given tesseract language.
func NewCLI(language string, opts ...Option) *CLI {
	cli := &CLI{
		tiffcp:   "tiffcp",
		tiff2pdf: "tiff2pdf",
		ocrmypdf: "ocrmypdf",
		language: strings.TrimSpace(language),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Combine joins the page TIFFs into a single LZW-compressed multi-page TIFF.
func (c *CLI) Combine(ctx context.Context, pages []string, outputPath string) error {
	if len(pages) == 0 {
		return errors.New("no pages to combine")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}
	args := []string{"-c", "lzw"}
	args = append(args, pages...)
	args = append(args, outputPath)
	return c.run(ctx, c.tiffcp, args)
}

// ToPDF converts a multi-page TIFF to an A4 PDF.
func (c *CLI) ToPDF(ctx context.Context, inputPath, outputPath string) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}
	return c.run(ctx, c.tiff2pdf, []string{"-p", "A4", "-o", outputPath, inputPath})
}

// Clean runs ocrmypdf over the PDF: deskew, clean, and embed the text layer.
func (c *CLI) Clean(ctx context.Context, inputPath, outputPath string) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}
	args := []string{"-l", c.language, "-d", "-c", inputPath, outputPath}
	return c.run(ctx, c.ocrmypdf, args)
}

func (c *CLI) run(ctx context.Context, binary string, args []string) error {
	cmd := commandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("%s: %w: %s", binary, err, detail)
		}
		return fmt.Errorf("%s: %w", binary, err)
	}
	return nil
}
