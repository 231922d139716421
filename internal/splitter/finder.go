package splitter

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindResult classifies the paths handed to a run: sheets to process,
// existing files that are not sheets, and paths that do not exist.
type FindResult struct {
	Found     []string
	Discarded []string
	Missing   []string
}

// FindSheets collects .cue files from the given files and directories.
// Directories are scanned one level deep unless recursive is set.
func FindSheets(targets []string, recursive bool) FindResult {
	var result FindResult
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			result.Missing = append(result.Missing, target)
			continue
		}
		if !info.IsDir() {
			if isSheet(target) {
				result.Found = append(result.Found, target)
			} else {
				result.Discarded = append(result.Discarded, target)
			}
			continue
		}
		if recursive {
			_ = filepath.WalkDir(target, func(path string, entry fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if !entry.IsDir() && isSheet(path) {
					result.Found = append(result.Found, path)
				}
				return nil
			})
			continue
		}
		entries, err := os.ReadDir(target)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() && isSheet(entry.Name()) {
				result.Found = append(result.Found, filepath.Join(target, entry.Name()))
			}
		}
	}
	sort.Strings(result.Found)
	result.Found = dedupe(result.Found)
	return result
}

func isSheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cue")
}

func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, path := range paths {
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	return out
}
