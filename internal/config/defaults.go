package config

const (
	defaultOutputDir    = "~/scans"
	defaultStagingDir   = "~/.local/share/digitize/staging"
	defaultLogDir       = "~/.local/share/digitize/logs"
	defaultProfilesPath = "~/.config/digitize/profiles.toml"
	defaultHistoryPath  = "~/.local/share/digitize/history.db"
	defaultDevice       = "brother4:net1;dev0"
	defaultResolution   = 300
	defaultOCRLanguage  = "deu"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// ValidResolutions lists the scanner resolutions (dpi) accepted by
// validation, matching what the driver supports.
var ValidResolutions = []int{100, 200, 300, 400, 600}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:   defaultOutputDir,
			StagingDir:  defaultStagingDir,
			LogDir:      defaultLogDir,
			Profiles:    defaultProfilesPath,
			HistoryPath: defaultHistoryPath,
		},
		Scanner: Scanner{
			Device:     defaultDevice,
			Resolution: defaultResolution,
		},
		OCR: OCR{
			Language: defaultOCRLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
