package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScanner()
	c.normalizeOCR()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(orDefault(c.Paths.OutputDir, defaultOutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.StagingDir, err = expandPath(orDefault(c.Paths.StagingDir, defaultStagingDir)); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(orDefault(c.Paths.LogDir, defaultLogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.Profiles, err = expandPath(orDefault(c.Paths.Profiles, defaultProfilesPath)); err != nil {
		return fmt.Errorf("paths.profiles: %w", err)
	}
	if c.Paths.HistoryPath, err = expandPath(orDefault(c.Paths.HistoryPath, defaultHistoryPath)); err != nil {
		return fmt.Errorf("paths.history_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeScanner() {
	c.Scanner.Device = strings.TrimSpace(c.Scanner.Device)
	if c.Scanner.Resolution == 0 {
		c.Scanner.Resolution = defaultResolution
	}
}

func (c *Config) normalizeOCR() {
	c.OCR.Language = strings.TrimSpace(c.OCR.Language)
	if c.OCR.Language == "" {
		c.OCR.Language = defaultOCRLanguage
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
