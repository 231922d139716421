package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Output controls where split tracks go and what format they use.
type Output struct {
	// Directory receives the split tracks. Empty means alongside the sheet.
	Directory string `toml:"directory"`
	// Format is one of wav, flac, mp3, ogg, opus, or copy.
	Format string `toml:"format"`
	// Collection adds sub-directories under Directory:
	// "artist", "album", or "artist+album".
	Collection string `toml:"collection"`
	// Overwrite is one of ask, always, never.
	Overwrite string `toml:"overwrite"`
	// DeleteOriginals removes the sheet and image after a successful split.
	DeleteOriginals bool `toml:"delete_originals"`
}

// Input controls how sheets are located and decoded.
type Input struct {
	// CharacterEncoding names the sheet text encoding (IANA name).
	// Empty means UTF-8 with a single automatic fallback.
	CharacterEncoding string `toml:"character_encoding"`
	// Recursive searches directories for .cue files recursively.
	Recursive bool `toml:"recursive"`
}

// Tools configures the external ffmpeg/ffprobe commands.
type Tools struct {
	FFmpeg         string   `toml:"ffmpeg"`
	FFprobe        string   `toml:"ffprobe"`
	FFmpegLogLevel string   `toml:"ffmpeg_loglevel"`
	FFmpegArgs     []string `toml:"ffmpeg_args"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// History configures the split-job history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for cuesplit.
type Config struct {
	Output  Output  `toml:"output"`
	Input   Input   `toml:"input"`
	Tools   Tools   `toml:"tools"`
	Logging Logging `toml:"logging"`
	History History `toml:"history"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cuesplit/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("cuesplit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	c.Output.Collection = strings.ToLower(strings.TrimSpace(c.Output.Collection))
	c.Output.Overwrite = strings.ToLower(strings.TrimSpace(c.Output.Overwrite))
	c.Input.CharacterEncoding = strings.TrimSpace(c.Input.CharacterEncoding)
	c.Tools.FFmpeg = firstNonEmpty(os.Getenv("CUESPLIT_FFMPEG"), strings.TrimSpace(c.Tools.FFmpeg), "ffmpeg")
	c.Tools.FFprobe = firstNonEmpty(os.Getenv("CUESPLIT_FFPROBE"), strings.TrimSpace(c.Tools.FFprobe), "ffprobe")
	c.Tools.FFmpegLogLevel = firstNonEmpty(strings.TrimSpace(c.Tools.FFmpegLogLevel), "info")

	for _, field := range []*string{&c.Output.Directory, &c.Logging.Dir, &c.History.Path} {
		if strings.TrimSpace(*field) == "" {
			continue
		}
		expanded, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

// EnsureDirectories creates the directories a job needs before it starts.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Logging.Dir}
	if c.History.Enabled && c.History.Path != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
