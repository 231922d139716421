package config

const (
	defaultFormat      = "flac"
	defaultOverwrite   = "ask"
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultFFLogLevel  = "info"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultLogDir      = "~/.local/share/cuesplit/logs"
	defaultHistoryPath = "~/.local/share/cuesplit/history.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Format:    defaultFormat,
			Overwrite: defaultOverwrite,
		},
		Tools: Tools{
			FFmpeg:         defaultFFmpeg,
			FFprobe:        defaultFFprobe,
			FFmpegLogLevel: defaultFFLogLevel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
	}
}
