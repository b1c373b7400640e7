// Package staging manages the scratch area where scan runs assemble
// their pages. Each run works inside its own directory and removes it
// on completion; an interrupted run leaves its directory behind, so the
// package also knows how to sweep those leftovers.
package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirInfo describes one run directory inside the staging area.
type DirInfo struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// CleanResult reports which directories a sweep removed and which it
// could not.
type CleanResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its removal error.
type CleanupError struct {
	Path string
	Err  error
}

// CleanStale removes run directories whose modification time is older
// than maxAge. Files directly inside the staging area, such as the
// scanner lock, are left alone.
func CleanStale(stagingDir string, maxAge time.Duration, logger *slog.Logger) CleanResult {
	var result CleanResult

	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return result
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: stagingDir, Err: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dirPath := filepath.Join(stagingDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Err: err})
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.RemoveAll(dirPath); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dirPath, Err: err})
			if logger != nil {
				logger.Warn("failed to remove stale run directory",
					slog.String("path", dirPath),
					slog.Any("error", err))
			}
			continue
		}

		result.Removed = append(result.Removed, dirPath)
		if logger != nil {
			logger.Info("removed stale run directory",
				slog.String("path", dirPath),
				slog.Duration("age", time.Since(info.ModTime())))
		}
	}

	return result
}

// List returns the run directories currently present in the staging
// area, with their sizes.
func List(stagingDir string) ([]DirInfo, error) {
	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []DirInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		dirPath := filepath.Join(stagingDir, entry.Name())
		size, _ := dirSize(dirPath)
		dirs = append(dirs, DirInfo{
			Name:    entry.Name(),
			Path:    dirPath,
			ModTime: info.ModTime(),
			Size:    size,
		})
	}

	return dirs, nil
}

func dirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
