package config

const (
	defaultDataDir         = "~/.local/share/tally"
	defaultLogDir          = "~/.local/share/tally/logs"
	defaultServiceMode     = ModeLocal
	defaultHTTPListen      = "127.0.0.1:5775"
	defaultHTTPTimeout     = 10
	defaultDefaultCategory = "unspecified"
	defaultDateFormat      = "01-02"
	defaultLogFormat       = "pretty"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Service: Service{
			Mode: defaultServiceMode,
		},
		HTTP: HTTP{
			Listen:         defaultHTTPListen,
			TimeoutSeconds: defaultHTTPTimeout,
		},
		Client: Client{
			DefaultCategory: defaultDefaultCategory,
			DateFormat:      defaultDateFormat,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
