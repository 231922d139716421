package splitter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuesplit/internal/logging"
	"cuesplit/internal/recipe"
)

// Overwrite policies.
const (
	OverwriteAsk    = "ask"
	OverwriteAlways = "always"
	OverwriteNever  = "never"
)

// PromptFunc asks the user what to do about one existing destination file.
// Valid answers: "y", "n", "always", "never".
type PromptFunc func(path string) (string, error)

// StdinPrompt prompts on stderr and reads the answer from stdin.
func StdinPrompt(path string) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprintf(os.Stderr, "File already exists: %s\nOverwrite? [Y/n/always/never] > ", path)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			if err == io.EOF {
				return "n", nil
			}
			return "", err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "", "y":
			return "y", nil
		case "n":
			return "n", nil
		case "always":
			return "always", nil
		case "never":
			return "never", nil
		}
		fmt.Fprintln(os.Stderr, "invalid answer")
	}
}

// applyOverwritePolicy filters recipes whose destination already exists.
// "always" keeps everything, "never" aborts the whole job as soon as one
// destination exists, and "ask" consults the prompt per file: n drops that
// track, never aborts the job, always stops asking.
func (s *Splitter) applyOverwritePolicy(recipes []recipe.Recipe, destDir, policy string) ([]recipe.Recipe, bool, error) {
	if policy == OverwriteAlways {
		return recipes, true, nil
	}

	kept := make([]recipe.Recipe, 0, len(recipes))
	for _, item := range recipes {
		target := filepath.Join(destDir, item.OutputName)
		if _, err := os.Stat(target); err != nil {
			kept = append(kept, item)
			continue
		}
		switch policy {
		case OverwriteNever:
			s.logger.Info("destination exists and overwrite is disabled; skipping sheet",
				logging.String("target", target))
			return nil, false, nil
		case OverwriteAsk:
			answer, err := s.prompt(target)
			if err != nil {
				return nil, false, fmt.Errorf("overwrite prompt: %w", err)
			}
			switch answer {
			case "n":
				s.logger.Info("skipping existing track", logging.String("target", target))
			case "never":
				return nil, false, nil
			case "always":
				kept = append(kept, item)
				policy = OverwriteAlways
			default:
				kept = append(kept, item)
			}
		default:
			kept = append(kept, item)
		}
	}
	return kept, true, nil
}
