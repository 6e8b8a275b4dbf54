package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeService()
	c.normalizeHTTP()
	c.normalizeClient()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeService() {
	c.Service.Mode = strings.ToLower(strings.TrimSpace(c.Service.Mode))
	if c.Service.Mode == "" {
		c.Service.Mode = defaultServiceMode
	}
}

func (c *Config) normalizeHTTP() {
	c.HTTP.Listen = strings.TrimSpace(c.HTTP.Listen)
	if c.HTTP.Listen == "" {
		c.HTTP.Listen = defaultHTTPListen
	}
	c.HTTP.BaseURL = strings.TrimSpace(c.HTTP.BaseURL)
	if c.HTTP.TimeoutSeconds <= 0 {
		c.HTTP.TimeoutSeconds = defaultHTTPTimeout
	}
	c.HTTP.Username = strings.TrimSpace(c.HTTP.Username)
	if c.HTTP.Username == "" {
		if value, ok := os.LookupEnv("TALLY_HTTP_USERNAME"); ok {
			c.HTTP.Username = strings.TrimSpace(value)
		}
	}
	if c.HTTP.Password == "" {
		if value, ok := os.LookupEnv("TALLY_HTTP_PASSWORD"); ok {
			c.HTTP.Password = value
		}
	}
}

func (c *Config) normalizeClient() {
	c.Client.DefaultCategory = strings.ToLower(strings.TrimSpace(c.Client.DefaultCategory))
	if c.Client.DateFormat == "" {
		c.Client.DateFormat = defaultDateFormat
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
