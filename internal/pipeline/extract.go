package pipeline

import (
	"fmt"
	"strings"
)

// ExtractFileNames pulls file names out of a planning tier's result.
//
// Structured results are read directly: a map with a "files" list yields the
// list's string entries plus the "name" field of its map entries, in source
// order. Text results go through a line heuristic: a line is a candidate if
// it contains a colon and either the word "file" (any case) or a period; the
// candidate name is the trimmed text after the last colon, accepted when it
// contains a period and no path separator.
//
// The heuristic is deliberately loose. It can over-match (any colon line
// mentioning a dotted word) and under-match (files listed without colons);
// callers treat it as best-effort, not as a parser. Duplicates are returned
// as-is.
func ExtractFileNames(result any) []string {
	switch v := result.(type) {
	case map[string]any:
		return namesFromStructured(v)
	case string:
		return namesFromText(v)
	default:
		return nil
	}
}

func namesFromStructured(plan map[string]any) []string {
	files, ok := plan["files"].([]any)
	if !ok {
		return nil
	}

	var names []string
	for _, entry := range files {
		switch e := entry.(type) {
		case string:
			names = append(names, e)
		case map[string]any:
			if name, ok := e["name"]; ok {
				names = append(names, fmt.Sprintf("%v", name))
			}
		}
	}

	return names
}

func namesFromText(plan string) []string {
	var names []string
	for _, line := range strings.Split(plan, "\n") {
		if !strings.Contains(line, ":") {
			continue
		}
		if !strings.Contains(strings.ToLower(line), "file") && !strings.Contains(line, ".") {
			continue
		}

		parts := strings.Split(line, ":")
		name := strings.TrimSpace(parts[len(parts)-1])
		if strings.Contains(name, ".") && !strings.Contains(name, "/") {
			names = append(names, name)
		}
	}

	return names
}
