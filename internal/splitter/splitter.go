// Package splitter orchestrates one split job per sheet: parse, probe,
// resolve, build recipes, run ffmpeg into a temporary directory, then move
// the finished tracks to their destination.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cuesplit/internal/config"
	"cuesplit/internal/cue"
	"cuesplit/internal/ffmpeg"
	"cuesplit/internal/fileutil"
	"cuesplit/internal/history"
	"cuesplit/internal/logging"
	"cuesplit/internal/media/ffprobe"
	"cuesplit/internal/recipe"
	"cuesplit/internal/resolve"
	"cuesplit/internal/textutil"
)

// ErrInvalidSheet indicates a path that is not a readable .cue file.
var ErrInvalidSheet = errors.New("invalid cue sheet file")

// ErrLocked indicates another run is already writing to the destination.
var ErrLocked = errors.New("destination directory is locked by another run")

// Splitter runs split jobs against one configuration.
type Splitter struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *history.Store
	prompt   PromptFunc
	probe    resolve.ProbeFunc
	progress io.Writer
}

// Result summarizes one finished job.
type Result struct {
	SheetPath string
	OutputDir string
	Tracks    int
	Skipped   bool
}

// New builds a Splitter. The history store is optional.
func New(cfg *config.Config, logger *slog.Logger, store *history.Store) *Splitter {
	s := &Splitter{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "splitter"),
		store:  store,
		prompt: StdinPrompt,
	}
	s.probe = func(ctx context.Context, path string) (float64, error) {
		return ffprobe.Duration(ctx, cfg.Tools.FFprobe, path)
	}
	return s
}

// SetPrompt overrides the overwrite prompt.
func (s *Splitter) SetPrompt(prompt PromptFunc) { s.prompt = prompt }

// SetProbe overrides the duration probe.
func (s *Splitter) SetProbe(probe resolve.ProbeFunc) { s.probe = probe }

// SetProgressWriter enables inline per-track progress output, normally
// only when stdout is a terminal.
func (s *Splitter) SetProgressWriter(w io.Writer) { s.progress = w }

// Inspect parses and resolves a sheet without touching the filesystem
// beyond reading and probing.
func (s *Splitter) Inspect(ctx context.Context, sheetPath string) (*cue.Sheet, []resolve.Group, error) {
	sheetPath, err := checkSheetPath(sheetPath)
	if err != nil {
		return nil, nil, err
	}
	lines, err := cue.ReadSheet(sheetPath, s.cfg.Input.CharacterEncoding)
	if err != nil {
		return nil, nil, err
	}
	sheet, err := cue.Parse(lines)
	if err != nil {
		return nil, nil, err
	}
	groups, err := resolve.Resolve(ctx, sheet, resolve.Options{
		BaseDir: filepath.Dir(sheetPath),
		Probe:   s.probe,
		Logger:  s.logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return sheet, groups, nil
}

// Split executes the whole job for one sheet. In dry-run mode the recipes
// are logged and nothing is written.
func (s *Splitter) Split(ctx context.Context, sheetPath string, dryRun bool) (*Result, error) {
	started := time.Now()
	jobID := uuid.NewString()

	result, sheet, err := s.split(ctx, sheetPath, jobID, dryRun)
	if !dryRun {
		s.record(ctx, jobID, sheetPath, started, sheet, result, err)
	}
	return result, err
}

func (s *Splitter) split(ctx context.Context, sheetPath, jobID string, dryRun bool) (*Result, *cue.Sheet, error) {
	sheetPath, err := checkSheetPath(sheetPath)
	if err != nil {
		return nil, nil, err
	}
	logger := s.logger.With(logging.String("sheet", filepath.Base(sheetPath)))
	logger.Info("processing sheet", logging.String("path", sheetPath), logging.String("job", jobID))

	sheet, groups, err := s.Inspect(ctx, sheetPath)
	if err != nil {
		return nil, nil, err
	}

	destDir := s.cfg.Output.Directory
	if destDir == "" {
		destDir = filepath.Dir(sheetPath)
	}
	if subdir := collectionSubdir(s.cfg.Output.Collection, sheet.Disc); subdir != "" {
		destDir = filepath.Join(destDir, subdir)
	}

	options := recipe.Options{
		Format:    s.cfg.Output.Format,
		FFmpeg:    s.cfg.Tools.FFmpeg,
		LogLevel:  s.cfg.Tools.FFmpegLogLevel,
		ExtraArgs: s.cfg.Tools.FFmpegArgs,
		Progress:  true,
		OutputDir: destDir,
	}

	if dryRun {
		recipes, err := recipe.Build(groups, options)
		if err != nil {
			return nil, sheet, err
		}
		for _, item := range recipes {
			logger.Info("dry run", logging.String("command", strings.Join(item.Args, " ")))
		}
		return &Result{SheetPath: sheetPath, OutputDir: destDir, Tracks: len(recipes)}, sheet, nil
	}

	tempDir, err := os.MkdirTemp("", "cuesplit-")
	if err != nil {
		return nil, sheet, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	options.OutputDir = tempDir
	recipes, err := recipe.Build(groups, options)
	if err != nil {
		return nil, sheet, err
	}

	recipes, proceed, err := s.applyOverwritePolicy(recipes, destDir, s.cfg.Output.Overwrite)
	if err != nil {
		return nil, sheet, err
	}
	if !proceed || len(recipes) == 0 {
		logger.Info("nothing to extract for this sheet")
		return &Result{SheetPath: sheetPath, OutputDir: destDir, Skipped: true}, sheet, nil
	}

	if err := fileutil.EnsureDir(destDir); err != nil {
		return nil, sheet, fmt.Errorf("create output directory: %w", err)
	}
	unlock, err := lockDir(destDir)
	if err != nil {
		return nil, sheet, err
	}
	defer unlock()

	logPath := sheetLogPath(destDir, sheetPath)
	if err := os.WriteFile(logPath, nil, 0o644); err != nil {
		logger.Warn("cannot reset sheet log file", logging.Error(err), logging.String("path", logPath))
		logPath = ""
	}
	runner := &ffmpeg.Runner{LogPath: logPath, Logger: logger}

	for i, item := range recipes {
		logger.Info("extracting track",
			logging.Int("track", i+1),
			logging.Int("of", len(recipes)),
			logging.String("title", item.OutputName))
		progress := s.progressFunc(item.OutputName)
		if err := runner.Run(ctx, item.Args, item.Duration, progress); err != nil {
			return nil, sheet, err
		}
		s.finishProgress()
	}

	for _, item := range recipes {
		if err := fileutil.MoveFile(item.OutputPath, filepath.Join(destDir, item.OutputName)); err != nil {
			return nil, sheet, fmt.Errorf("move %s: %w", item.OutputName, err)
		}
	}
	logger.Info("tracks moved to destination", logging.String("dir", destDir), logging.Int("tracks", len(recipes)))

	if s.cfg.Output.DeleteOriginals {
		s.removeOriginals(sheetPath, groups, logger)
	}

	return &Result{SheetPath: sheetPath, OutputDir: destDir, Tracks: len(recipes)}, sheet, nil
}

func (s *Splitter) record(ctx context.Context, jobID, sheetPath string, started time.Time, sheet *cue.Sheet, result *Result, jobErr error) {
	if s.store == nil {
		return
	}
	job := history.Job{
		UUID:       jobID,
		SheetPath:  sheetPath,
		Format:     s.cfg.Output.Format,
		Status:     history.StatusCompleted,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if result != nil {
		job.TrackCount = result.Tracks
	}
	if jobErr != nil {
		job.Status = history.StatusFailed
		job.Error = jobErr.Error()
	}
	if sheet != nil {
		job.Album = sheet.Disc.Album
		job.Artist = sheet.Disc.Performer
	}
	if err := s.store.Record(ctx, job); err != nil {
		s.logger.Warn("cannot record job history", logging.Error(err))
	}
}

func (s *Splitter) progressFunc(name string) ffmpeg.ProgressFunc {
	if s.progress == nil {
		return nil
	}
	return func(seconds, percent float64) {
		fmt.Fprintf(s.progress, "\r  %s  %5.1f%%", name, percent)
	}
}

func (s *Splitter) finishProgress() {
	if s.progress != nil {
		fmt.Fprintln(s.progress)
	}
}

func (s *Splitter) removeOriginals(sheetPath string, groups []resolve.Group, logger *slog.Logger) {
	targets := []string{sheetPath}
	for _, group := range groups {
		targets = append(targets, group.Source)
	}
	for _, target := range targets {
		if info, err := os.Stat(target); err != nil || !info.Mode().IsRegular() {
			logger.Warn("skipping original file removal", logging.String("path", target))
			return
		}
	}
	for _, target := range targets {
		if err := os.Remove(target); err != nil {
			logger.Warn("cannot remove original file", logging.Error(err), logging.String("path", target))
		}
	}
	logger.Info("removed original files", logging.Int("files", len(targets)))
}

func lockDir(dir string) (func(), error) {
	lock := flock.New(filepath.Join(dir, ".cuesplit.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock destination: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: %s", ErrLocked, dir)
	}
	return func() { _ = lock.Unlock() }, nil
}

func checkSheetPath(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidSheet, path)
	}
	info, err := os.Stat(absolute)
	if err != nil || !info.Mode().IsRegular() || !isSheet(absolute) {
		return "", fmt.Errorf("%w: %s", ErrInvalidSheet, path)
	}
	return absolute, nil
}

func sheetLogPath(destDir, sheetPath string) string {
	base := strings.TrimSuffix(filepath.Base(sheetPath), filepath.Ext(sheetPath))
	return filepath.Join(destDir, base+".cuesplit.log")
}

// collectionSubdir derives optional artist/album sub-directories from the
// disc context.
func collectionSubdir(layout string, disc cue.Tags) string {
	artist := textutil.SanitizeFileName(disc.Performer)
	if artist == "" {
		artist = "Unknown Artist"
	}
	album := textutil.SanitizeFileName(disc.Album)
	if album == "" {
		album = "Unknown Album"
	}
	switch layout {
	case "artist+album":
		return filepath.Join(artist, album)
	case "artist":
		return artist
	case "album":
		return album
	default:
		return ""
	}
}
