package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateService(); err != nil {
		return err
	}
	if err := c.validateHTTP(); err != nil {
		return err
	}
	if err := c.validateClient(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateService() error {
	switch c.Service.Mode {
	case ModeLocal, ModeHTTP:
		return nil
	default:
		return fmt.Errorf("service.mode: unknown service name %q (expected %q or %q)", c.Service.Mode, ModeLocal, ModeHTTP)
	}
}

func (c *Config) validateHTTP() error {
	if _, _, err := net.SplitHostPort(c.HTTP.Listen); err != nil {
		return fmt.Errorf("http.listen: %w", err)
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return errors.New("http.timeout_seconds must be positive")
	}
	if (c.HTTP.Username == "") != (c.HTTP.Password == "") {
		return errors.New("http.username and http.password must be set together")
	}
	return nil
}

func (c *Config) validateClient() error {
	if c.Client.DefaultCategory == "" {
		return errors.New("client.default_category must be set")
	}
	ref := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(c.Client.DateFormat, ref.Format(c.Client.DateFormat))
	if err != nil {
		return fmt.Errorf("client.date_format: unusable layout %q: %w", c.Client.DateFormat, err)
	}
	if parsed.Month() != ref.Month() || parsed.Day() != ref.Day() {
		return fmt.Errorf("client.date_format: layout %q must carry month and day", c.Client.DateFormat)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "pretty", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
