package cue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse indicates a structurally invalid sheet: commands out of order,
// no tracks, or undecodable input.
var ErrParse = errors.New("cue parse error")

// Sheet is the finished parse tree: one disc context and the source files
// declared by the sheet, in sheet order.
type Sheet struct {
	Disc  Tags
	Files []*SourceFile
}

// SourceFile is one FILE entry with the tracks it owns.
type SourceFile struct {
	Path   string
	Type   string
	Tags   Tags
	Tracks []*Track
}

// Track is one TRACK entry. Start is the INDEX 01 position in frames.
type Track struct {
	Number int
	Type   string
	Start  int64
	Tags   Tags
}

// TrackCount reports the number of tracks across all source files.
func (s *Sheet) TrackCount() int {
	count := 0
	for _, file := range s.Files {
		count += len(file.Tracks)
	}
	return count
}

// contextKind tags the parser's active metadata context. Metadata commands
// always apply to the most recently opened disc, file, or track context.
type contextKind int

const (
	contextDisc contextKind = iota
	contextFile
	contextTrack
)

type parser struct {
	sheet  *Sheet
	active contextKind
	file   *SourceFile
	track  *Track
}

// Parse consumes non-empty, whitespace-trimmed sheet lines and builds the
// parse tree. It fails when a TRACK or INDEX command appears before any
// FILE command, or when the sheet declares no tracks at all.
func Parse(lines []string) (*Sheet, error) {
	p := &parser{sheet: &Sheet{Disc: DiscTags()}}

	for _, line := range lines {
		command, args := Tokenize(line)
		if err := p.apply(command, args); err != nil {
			return nil, err
		}
	}

	if p.sheet.TrackCount() == 0 {
		return nil, fmt.Errorf("%w: sheet contains no tracks", ErrParse)
	}
	return p.sheet, nil
}

func (p *parser) apply(command, args string) error {
	switch command {
	case "REM":
		sub, subArgs := Tokenize(args)
		p.set(sub, subArgs)
	case "FILE":
		path, fileType, ok := splitFileArgs(args)
		if !ok {
			return fmt.Errorf("%w: FILE command missing type: %q", ErrParse, args)
		}
		p.addFile(path, fileType)
	case "TRACK":
		numText, trackType, _ := strings.Cut(args, " ")
		number, err := strconv.Atoi(numText)
		if err != nil {
			return fmt.Errorf("%w: bad track number %q", ErrParse, numText)
		}
		if err := p.addTrack(number, strings.TrimSpace(trackType)); err != nil {
			return err
		}
	case "INDEX":
		numText, position, _ := strings.Cut(args, " ")
		if numText != "01" {
			// Pre-gap and other index marks never shift a track's start.
			return nil
		}
		if err := p.setTrackStart(strings.TrimSpace(position)); err != nil {
			return err
		}
	default:
		p.set(command, args)
	}
	return nil
}

// set applies a metadata command to the active context. The top-level
// TITLE command names the album, not a track, so the disc context remaps it.
func (p *parser) set(key, value string) {
	switch p.active {
	case contextDisc:
		if key == "TITLE" {
			key = "ALBUM"
		}
		p.sheet.Disc.Set(key, value)
	case contextFile:
		p.file.Tags.Set(key, value)
	case contextTrack:
		p.track.Tags.Set(key, value)
	}
}

func (p *parser) addFile(path, fileType string) {
	file := &SourceFile{
		Path: path,
		Type: fileType,
		Tags: p.sheet.Disc.Clone(),
	}
	p.sheet.Files = append(p.sheet.Files, file)
	p.file = file
	p.track = nil
	p.active = contextFile
}

func (p *parser) addTrack(number int, trackType string) error {
	if p.file == nil {
		return fmt.Errorf("%w: TRACK %02d before any FILE command", ErrParse, number)
	}
	track := &Track{
		Number: number,
		Type:   trackType,
		Tags:   p.file.Tags.Clone(),
	}
	if track.Tags.Title == "" {
		track.Tags.Title = unknownField
	}
	p.file.Tracks = append(p.file.Tracks, track)
	p.track = track
	p.active = contextTrack
	return nil
}

func (p *parser) setTrackStart(position string) error {
	if p.track == nil {
		return fmt.Errorf("%w: INDEX before any TRACK command", ErrParse)
	}
	frames, err := TimecodeToFrames(position)
	if err != nil {
		return err
	}
	// Keep the raw timecode for diagnostics alongside the frame count.
	p.track.Tags.Set("INDEX 01", position)
	p.track.Start = frames
	return nil
}

// splitFileArgs separates a FILE argument into path and type: the type is
// the trailing space-separated word, the path everything before it.
func splitFileArgs(args string) (path, fileType string, ok bool) {
	idx := strings.LastIndex(args, " ")
	if idx < 0 {
		return "", "", false
	}
	return Unquote(args[:idx]), strings.TrimSpace(args[idx+1:]), true
}
