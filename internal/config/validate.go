package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScanner(); err != nil {
		return err
	}
	if err := c.validateOCR(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateScanner() error {
	if strings.TrimSpace(c.Scanner.Device) == "" {
		return errors.New("scanner.device must be set")
	}
	for _, res := range ValidResolutions {
		if c.Scanner.Resolution == res {
			return nil
		}
	}
	return fmt.Errorf("scanner.resolution must be one of %v, got %d", ValidResolutions, c.Scanner.Resolution)
}

func (c *Config) validateOCR() error {
	if strings.TrimSpace(c.OCR.Language) == "" {
		return errors.New("ocr.language must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}
