// Package config loads and validates cuesplit's TOML configuration.
//
// Configuration sections:
//   - Output: destination directory, format, collection layout, overwrite
//   - Input: sheet character encoding and directory recursion
//   - Tools: external ffmpeg/ffprobe commands
//   - Logging: log format, level, and directory
//   - History: split-job history database
package config
