package recipe_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"cuesplit/internal/cue"
	"cuesplit/internal/recipe"
	"cuesplit/internal/resolve"
)

func sampleGroups() []resolve.Group {
	tags := cue.Tags{
		Album:     "Some Album",
		Performer: "Some Artist",
		Genre:     "Electronic",
		Date:      "1998",
	}
	first := tags
	first.Title = "Opening"
	second := tags
	second.Title = "Second"

	return []resolve.Group{
		{
			Source: "/music/image.flac",
			Tracks: []resolve.Track{
				{Number: 1, Tags: first, Source: "/music/image.flac", Start: 0, End: 88200, HasEnd: true, Duration: 2.0},
				{Number: 2, Tags: second, Source: "/music/image.flac", Start: 88200, Duration: 4.5},
			},
		},
	}
}

func TestBuildRejectsUnknownFormatBeforeAnyRecipe(t *testing.T) {
	recipes, err := recipe.Build(sampleGroups(), recipe.Options{Format: "aiff"})
	if !errors.Is(err, recipe.ErrUnknownFormat) {
		t.Fatalf("error = %v, want ErrUnknownFormat", err)
	}
	if recipes != nil {
		t.Fatalf("recipes = %v, want none on format failure", recipes)
	}
}

func TestBuildFlacRecipes(t *testing.T) {
	recipes, err := recipe.Build(sampleGroups(), recipe.Options{
		Format:    "flac",
		OutputDir: "/tmp/out",
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("recipe count = %d, want 2", len(recipes))
	}

	first := recipes[0]
	if first.OutputName != "01 - Opening.flac" {
		t.Fatalf("output name = %q, want 01 - Opening.flac", first.OutputName)
	}
	if first.OutputPath != filepath.Join("/tmp/out", "01 - Opening.flac") {
		t.Fatalf("output path = %q", first.OutputPath)
	}

	args := strings.Join(first.Args, " ")
	for _, want := range []string{
		"ffmpeg -loglevel info",
		"-i /music/image.flac",
		"-ss 0 -to 2",
		"-metadata ARTIST=Some Artist",
		"-metadata ALBUM=Some Album",
		"-metadata TITLE=Opening",
		"-metadata TRACK=1/2",
		"-metadata DISCNUMBER=",
		"-metadata GENRE=Electronic",
		"-metadata DATE=1998",
		"-c:a flac -ar 44100",
		"-y",
	} {
		if !strings.Contains(args, want) {
			t.Fatalf("args missing %q:\n%s", want, args)
		}
	}

	second := recipes[1]
	secondArgs := strings.Join(second.Args, " ")
	if strings.Contains(secondArgs, "-to") {
		t.Fatalf("last track must not carry an end boundary: %s", secondArgs)
	}
	if !strings.Contains(secondArgs, "-ss 2 ") {
		t.Fatalf("second track start wrong: %s", secondArgs)
	}
}

func TestBuildCopyModeKeepsSourceExtension(t *testing.T) {
	recipes, err := recipe.Build(sampleGroups(), recipe.Options{Format: recipe.FormatCopy})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if recipes[0].OutputName != "01 - Opening.flac" {
		t.Fatalf("copy-mode name = %q, want source extension kept", recipes[0].OutputName)
	}
	args := strings.Join(recipes[0].Args, " ")
	if !strings.Contains(args, "-c copy") {
		t.Fatalf("copy-mode args missing -c copy: %s", args)
	}
	if strings.Contains(args, "-c:a") {
		t.Fatalf("copy mode must not select an encoder: %s", args)
	}
}

func TestBuildOpusHasNoSampleRatePin(t *testing.T) {
	recipes, err := recipe.Build(sampleGroups(), recipe.Options{Format: "opus"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	args := strings.Join(recipes[0].Args, " ")
	if !strings.Contains(args, "-c:a libopus") {
		t.Fatalf("opus encoder missing: %s", args)
	}
	if strings.Contains(args, "-ar") {
		t.Fatalf("opus recipe must not pin a sample rate: %s", args)
	}
}

func TestBuildProgressAndExtraArgs(t *testing.T) {
	recipes, err := recipe.Build(sampleGroups(), recipe.Options{
		Format:    "mp3",
		Progress:  true,
		ExtraArgs: []string{"-b:a", "320k"},
		FFmpeg:    "/opt/ffmpeg/bin/ffmpeg",
		LogLevel:  "error",
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	args := strings.Join(recipes[0].Args, " ")
	for _, want := range []string{
		"/opt/ffmpeg/bin/ffmpeg -loglevel error",
		"-progress pipe:1 -nostats -nostdin",
		"-b:a 320k",
	} {
		if !strings.Contains(args, want) {
			t.Fatalf("args missing %q:\n%s", want, args)
		}
	}
}

func TestBuildSanitizesOutputName(t *testing.T) {
	groups := sampleGroups()
	groups[0].Tracks[0].Tags.Title = `What / "Is" This?`
	recipes, err := recipe.Build(groups, recipe.Options{Format: "flac"})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if recipes[0].OutputName != "01 - What - Is This.flac" {
		t.Fatalf("output name = %q", recipes[0].OutputName)
	}
}

func TestFormats(t *testing.T) {
	formats := recipe.Formats()
	want := map[string]bool{"wav": true, "flac": true, "mp3": true, "ogg": true, "opus": true, "copy": true}
	if len(formats) != len(want) {
		t.Fatalf("Formats() = %v", formats)
	}
	for _, format := range formats {
		if !want[format] {
			t.Fatalf("unexpected format %q", format)
		}
	}
}
