package ocr

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func captureCommands(t *testing.T) *[][]string {
	t.Helper()
	var captured [][]string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		call := append([]string{name}, args...)
		captured = append(captured, call)
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured
}

func TestCombineBuildsTiffcpArgs(t *testing.T) {
	captured := captureCommands(t)
	cli := NewCLI("deu")

	err := cli.Combine(context.Background(), []string{"page-001.tif", "page-002.tif"}, "output.tif")
	if err != nil {
		t.Fatalf("Combine returned error: %v", err)
	}

	got := strings.Join((*captured)[0], " ")
	if got != "tiffcp -c lzw page-001.tif page-002.tif output.tif" {
		t.Fatalf("unexpected tiffcp invocation: %q", got)
	}
}

func TestCombineRequiresPages(t *testing.T) {
	cli := NewCLI("deu")
	if err := cli.Combine(context.Background(), nil, "output.tif"); err == nil {
		t.Fatal("expected error for empty page list")
	}
}

func TestToPDFBuildsTiff2pdfArgs(t *testing.T) {
	captured := captureCommands(t)
	cli := NewCLI("deu")

	if err := cli.ToPDF(context.Background(), "output.tif", "output.pdf"); err != nil {
		t.Fatalf("ToPDF returned error: %v", err)
	}

	got := strings.Join((*captured)[0], " ")
	if got != "tiff2pdf -p A4 -o output.pdf output.tif" {
		t.Fatalf("unexpected tiff2pdf invocation: %q", got)
	}
}

func TestCleanBuildsOcrmypdfArgs(t *testing.T) {
	captured := captureCommands(t)
	cli := NewCLI("eng")

	if err := cli.Clean(context.Background(), "output.pdf", "clean.pdf"); err != nil {
		t.Fatalf("Clean returned error: %v", err)
	}

	got := strings.Join((*captured)[0], " ")
	if got != "ocrmypdf -l eng -d -c output.pdf clean.pdf" {
		t.Fatalf("unexpected ocrmypdf invocation: %q", got)
	}
}

func TestRunSurfacesToolOutputOnFailure(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcessFails")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI("deu")
	err := cli.ToPDF(context.Background(), "in.tif", "out.pdf")
	if err == nil {
		t.Fatal("expected error from failing tool")
	}
	if !strings.Contains(err.Error(), "tiff2pdf") {
		t.Fatalf("expected binary name in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "tiff2pdf: unable to open") {
		t.Fatalf("expected tool output in error, got %v", err)
	}
}

func TestHelperProcessFails(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		t.Skip("helper only")
	}
	os.Stderr.WriteString("tiff2pdf: unable to open input\n")
	os.Exit(2)
}

func TestBinaryOverrides(t *testing.T) {
	cli := NewCLI("deu", WithTiffcpBinary("/opt/tiffcp"), WithTiff2pdfBinary("/opt/tiff2pdf"), WithOcrmypdfBinary("/opt/ocrmypdf"))
	if cli.tiffcp != "/opt/tiffcp" || cli.tiff2pdf != "/opt/tiff2pdf" || cli.ocrmypdf != "/opt/ocrmypdf" {
		t.Fatalf("binary overrides not applied: %+v", cli)
	}
}
