// Package recipe maps resolved tracks into ready-to-execute ffmpeg
// argument lists, one per track.
package recipe

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cuesplit/internal/cue"
	"cuesplit/internal/resolve"
	"cuesplit/internal/textutil"
)

// ErrUnknownFormat indicates an output format with no codec mapping. It is
// a configuration failure detected once per run, before any recipe is
// emitted.
var ErrUnknownFormat = errors.New("unknown output format")

// codecArgs maps output formats to ffmpeg encoder arguments. Opus has no
// sample-rate pin: fullband Opus is always 48 kHz.
var codecArgs = map[string][]string{
	"wav":  {"-c:a", "pcm_s16le", "-ar", "44100"},
	"flac": {"-c:a", "flac", "-ar", "44100"},
	"ogg":  {"-c:a", "libvorbis", "-ar", "44100"},
	"opus": {"-c:a", "libopus"},
	"mp3":  {"-c:a", "libmp3lame", "-ar", "44100"},
}

// FormatCopy passes the source stream through unchanged, keeping the
// source container's extension.
const FormatCopy = "copy"

// Formats lists the supported output format keys, copy mode included.
func Formats() []string {
	return []string{"wav", "flac", "mp3", "ogg", "opus", FormatCopy}
}

// Options configures recipe construction for one job.
type Options struct {
	Format    string   // output format key, or "copy"
	FFmpeg    string   // ffmpeg binary, defaults to "ffmpeg"
	LogLevel  string   // ffmpeg -loglevel value, defaults to "info"
	ExtraArgs []string // additional ffmpeg arguments, appended verbatim
	Progress  bool     // emit machine-readable progress on stdout
	OutputDir string   // directory the output file is written into
}

// Recipe is one track's split instruction: the full command argument list
// (binary first), the output file name, and the expected duration used for
// progress accounting.
type Recipe struct {
	Args       []string
	OutputName string
	OutputPath string
	TrackNum   int
	Title      string
	Duration   float64
}

// Build emits one recipe per resolved track, preserving sheet order.
func Build(groups []resolve.Group, opts Options) ([]Recipe, error) {
	if opts.Format != FormatCopy {
		if _, ok := codecArgs[opts.Format]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
		}
	}

	var recipes []Recipe
	for _, group := range groups {
		for _, track := range group.Tracks {
			recipes = append(recipes, build(track, len(group.Tracks), opts))
		}
	}
	return recipes, nil
}

func build(track resolve.Track, groupSize int, opts Options) Recipe {
	binary := opts.FFmpeg
	if binary == "" {
		binary = "ffmpeg"
	}
	logLevel := opts.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	args := []string{binary, "-loglevel", logLevel}
	if opts.Progress {
		args = append(args, "-progress", "pipe:1", "-nostats", "-nostdin")
	}
	args = append(args, "-i", track.Source)
	args = append(args, "-ss", formatSeconds(cue.FramesToSeconds(track.Start)))
	if track.HasEnd {
		args = append(args, "-to", formatSeconds(cue.FramesToSeconds(track.End)))
	}
	for _, tag := range metadataTags(track.Tags, track.Number, groupSize) {
		args = append(args, "-metadata", tag)
	}
	if opts.Format == FormatCopy {
		args = append(args, "-c", "copy")
	} else {
		args = append(args, codecArgs[opts.Format]...)
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, "-y")

	name := outputName(track, opts.Format)
	path := filepath.Join(opts.OutputDir, name)
	args = append(args, path)

	return Recipe{
		Args:       args,
		OutputName: name,
		OutputPath: path,
		TrackNum:   track.Number,
		Title:      track.Tags.Title,
		Duration:   track.Duration,
	}
}

// metadataTags builds the fixed tag set in a stable order. Unset fields
// map to empty values rather than being omitted.
func metadataTags(tags cue.Tags, number, groupSize int) []string {
	return []string{
		"ARTIST=" + tags.Performer,
		"ALBUM=" + tags.Album,
		"TITLE=" + tags.Title,
		fmt.Sprintf("TRACK=%d/%d", number, groupSize),
		"DISCNUMBER=" + tags.DiscNumber,
		"GENRE=" + tags.Genre,
		"DATE=" + tags.Date,
		"COMMENT=" + tags.Comment,
		"DISCID=" + tags.DiscID,
	}
}

func outputName(track resolve.Track, format string) string {
	extension := format
	if format == FormatCopy {
		extension = strings.TrimPrefix(filepath.Ext(track.Source), ".")
	}
	title := textutil.SanitizeFileName(track.Tags.Title)
	if title == "" {
		title = "Unknown"
	}
	return fmt.Sprintf("%02d - %s.%s", track.Number, title, extension)
}

func formatSeconds(seconds float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", seconds), "0"), ".")
}
