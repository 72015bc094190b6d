package params

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Load reads parameter files and merges them into a single
// map, later files overriding earlier ones. The format is
// picked from the extension: .json and .yaml/.yml hold a flat
// string mapping, anything else is read as status lines.
func Load(paths []string) (map[string]string, error) {
	const errCtx = "loading params"

	merged := make(map[string]string)

	for _, pa := range paths {
		content, err := os.ReadFile(pa) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		vals, err := decode(filepath.Ext(pa), content)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: decoding %s: %w", errCtx, pa, err,
			)
		}

		for key, val := range vals {
			merged[key] = val
		}
	}

	return merged, nil
}

func decode(ext string, content []byte) (map[string]string, error) {
	vals := make(map[string]string)

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(content, &vals); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &vals); err != nil {
			return nil, err
		}
	default:
		parseStatus(string(content), vals)
	}

	return vals, nil
}

// parseStatus reads "KEY VALUE" lines split at the first
// space. Lines without a space are silently skipped.
func parseStatus(content string, into map[string]string) {
	for _, line := range strings.Split(content, "\n") {
		parts := strings.SplitN(
			strings.TrimSuffix(line, "\r"), " ", 2,
		)
		if len(parts) == 2 {
			into[parts[0]] = parts[1]
		}
	}
}

// ParsePairs parses NAME=VALUE entries. The value may itself
// contain '='.
func ParsePairs(pairs []string) (map[string]string, error) {
	const errCtx = "parsing params"

	vals := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf(
				"%s: param must be NAME=VALUE, got %s",
				errCtx, pair,
			)
		}

		vals[name] = val
	}

	return vals, nil
}

// Merge combines maps left to right; later maps win.
func Merge(maps ...map[string]string) map[string]string {
	merged := make(map[string]string)

	for _, mp := range maps {
		for key, val := range mp {
			merged[key] = val
		}
	}

	return merged
}
