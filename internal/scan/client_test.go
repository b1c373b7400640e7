package scan_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"digitize/internal/scan"
)

type stubExecutor struct {
	err   error
	calls int
	args  [][]string
	files []string
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	s.calls++
	s.args = append(s.args, append([]string(nil), args...))
	for _, file := range s.files {
		if err := os.WriteFile(file, []byte("tiff"), 0o644); err != nil {
			return err
		}
	}
	return s.err
}

func TestNewRequiresDevice(t *testing.T) {
	if _, err := scan.New("", 300); err == nil {
		t.Fatal("expected error for empty device")
	}
	if _, err := scan.New("brother4:net1;dev0", 0); err == nil {
		t.Fatal("expected error for zero resolution")
	}
}

func TestPagesBuildsScanimageArgs(t *testing.T) {
	workdir := t.TempDir()
	exec := &stubExecutor{files: []string{
		filepath.Join(workdir, "page-002.tif"),
		filepath.Join(workdir, "page-001.tif"),
	}}
	client, err := scan.New("brother4:net1;dev0", 300, scan.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	pages, err := client.Pages(context.Background(), workdir, 2)
	if err != nil {
		t.Fatalf("Pages returned error: %v", err)
	}

	if len(pages) != 2 || !strings.HasSuffix(pages[0], "page-001.tif") || !strings.HasSuffix(pages[1], "page-002.tif") {
		t.Fatalf("expected sorted page paths, got %v", pages)
	}

	if exec.calls != 1 {
		t.Fatalf("expected a single invocation, got %d", exec.calls)
	}
	args := strings.Join(exec.args[0], " ")
	for _, want := range []string{
		"--device-name brother4:net1;dev0",
		"--format tiff",
		"--resolution 300",
		"--batch-count 2",
		"-x 210",
		"-y 297",
	} {
		if !strings.Contains(args, want) {
			t.Fatalf("expected args to contain %q, got %q", want, args)
		}
	}
	if !strings.Contains(args, "--batch="+filepath.Join(workdir, "page-%03d.tif")) {
		t.Fatalf("expected batch pattern in workdir, got %q", args)
	}
}

func TestPagesOmitsBatchCountWhenScanningAllPages(t *testing.T) {
	workdir := t.TempDir()
	exec := &stubExecutor{files: []string{filepath.Join(workdir, "page-001.tif")}}
	client, err := scan.New("dev", 300, scan.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.Pages(context.Background(), workdir, 0); err != nil {
		t.Fatalf("Pages returned error: %v", err)
	}
	if strings.Contains(strings.Join(exec.args[0], " "), "--batch-count") {
		t.Fatalf("batch count should be omitted, got %v", exec.args[0])
	}
}

func TestPagesFailsWhenNoOutputProduced(t *testing.T) {
	client, err := scan.New("dev", 300, scan.WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Pages(context.Background(), t.TempDir(), 0)
	if err == nil || !strings.Contains(err.Error(), "no pages") {
		t.Fatalf("expected no-pages error, got %v", err)
	}
}

func TestPagesReturnsExecutorError(t *testing.T) {
	boom := errors.New("device offline")
	client, err := scan.New("dev", 300, scan.WithExecutor(&stubExecutor{err: boom}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Pages(context.Background(), t.TempDir(), 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected executor error to propagate, got %v", err)
	}
}
