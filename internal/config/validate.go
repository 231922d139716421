package config

import (
	"fmt"
	"strings"
)

var (
	validFormats    = map[string]bool{"wav": true, "flac": true, "mp3": true, "ogg": true, "opus": true, "copy": true}
	validOverwrite  = map[string]bool{"ask": true, "always": true, "never": true}
	validCollection = map[string]bool{"": true, "artist": true, "album": true, "artist+album": true}
	validLogFormats = map[string]bool{"console": true, "json": true}
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFFLevels   = map[string]bool{"error": true, "warning": true, "info": true, "verbose": true, "debug": true}
)

// Validate reports the first invalid configuration value.
func (c *Config) Validate() error {
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("output.format: unsupported value %q (expected one of wav, flac, mp3, ogg, opus, copy)", c.Output.Format)
	}
	if !validOverwrite[c.Output.Overwrite] {
		return fmt.Errorf("output.overwrite: unsupported value %q (expected ask, always, or never)", c.Output.Overwrite)
	}
	if !validCollection[c.Output.Collection] {
		return fmt.Errorf("output.collection: unsupported value %q (expected artist, album, or artist+album)", c.Output.Collection)
	}
	if !validFFLevels[c.Tools.FFmpegLogLevel] {
		return fmt.Errorf("tools.ffmpeg_loglevel: unsupported value %q", c.Tools.FFmpegLogLevel)
	}
	if format := strings.ToLower(strings.TrimSpace(c.Logging.Format)); !validLogFormats[format] {
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}
	if level := strings.ToLower(strings.TrimSpace(c.Logging.Level)); !validLogLevels[level] {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("history.path: required when history is enabled")
	}
	return nil
}
