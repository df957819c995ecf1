// Package mockdata produces deterministic stand-in content for offline
// scaffold runs: plan texts listing files to create, and per-extension stub
// file content. Output depends only on the inputs so tests stay stable.
package mockdata

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Generator builds mock plan and file content.
type Generator struct {
	titler cases.Caser
}

// New creates a mock content generator.
func New() *Generator {
	return &Generator{titler: cases.Title(language.English)}
}

// PlanFiles returns the file set a mock plan proposes for a language.
func (g *Generator) PlanFiles(lang string) []string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "go", "golang":
		return []string{"main.go", "config.go", "main_test.go", "README.md"}
	case "javascript", "typescript", "js", "ts", "node":
		return []string{"index.js", "utils.js", "index.test.js", "README.md"}
	case "python", "py", "":
		return []string{"main.py", "utils.py", "test_main.py", "README.md"}
	default:
		return []string{"main.txt", "notes.txt", "README.md"}
	}
}

// PlanText renders a mock development plan in the line-oriented form the
// pipeline's file-name extraction understands: one "FileN: name" line per
// proposed file.
func (g *Generator) PlanText(lang string) string {
	files := g.PlanFiles(lang)

	var b strings.Builder
	fmt.Fprintf(&b, "Development Plan (language: %s)\n\n", displayLanguage(lang))
	b.WriteString("Project structure:\n")
	for i, name := range files {
		fmt.Fprintf(&b, "File%d: %s\n", i+1, name)
	}
	b.WriteString("\nEach file should follow the conventions of the chosen language.")

	return b.String()
}

// PlanStructured returns the plan as structured data with a files list, for
// tiers that declare JSON output.
func (g *Generator) PlanStructured(lang string) map[string]any {
	names := g.PlanFiles(lang)
	files := make([]any, 0, len(names))
	for _, name := range names {
		files = append(files, name)
	}

	return map[string]any{
		"language": displayLanguage(lang),
		"files":    files,
	}
}

// FileContent returns stub content for a file, dispatched on its extension.
// Unknown extensions get a plain-text stub.
func (g *Generator) FileContent(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	title := g.titler.String(strings.ReplaceAll(stem, "_", " "))

	switch strings.ToLower(ext) {
	case ".py":
		if strings.HasPrefix(stem, "test_") {
			subject := strings.TrimPrefix(stem, "test_")
			return fmt.Sprintf("#!/usr/bin/env python3\n\"\"\"Tests for the %s module.\"\"\"\nimport unittest\n\n\nclass %sTest(unittest.TestCase):\n    def test_basic(self):\n        self.assertTrue(True)\n\n\nif __name__ == \"__main__\":\n    unittest.main()\n",
				subject, strings.ReplaceAll(g.titler.String(strings.ReplaceAll(subject, "_", " ")), " ", ""))
		}
		return fmt.Sprintf("#!/usr/bin/env python3\n\"\"\"%s module.\"\"\"\n\n\ndef main():\n    \"\"\"Entry point for %s.\"\"\"\n    pass\n\n\nif __name__ == \"__main__\":\n    main()\n", title, stem)
	case ".go":
		if strings.HasSuffix(stem, "_test") {
			subject := strings.TrimSuffix(stem, "_test")
			return fmt.Sprintf("package main\n\nimport \"testing\"\n\nfunc Test%s(t *testing.T) {\n\tt.Skip(\"not implemented\")\n}\n",
				strings.ReplaceAll(g.titler.String(strings.ReplaceAll(subject, "_", " ")), " ", ""))
		}
		return fmt.Sprintf("// %s is part of the generated project skeleton.\npackage main\n\nfunc main() {\n}\n", base)
	case ".js", ".ts":
		return fmt.Sprintf("// %s\n\nfunction main() {\n}\n\nmodule.exports = { main };\n", title)
	case ".md":
		return fmt.Sprintf("# %s\n\nGenerated project skeleton. Replace this stub with real documentation.\n", title)
	case ".json":
		return fmt.Sprintf("{\n  \"name\": %q\n}\n", stem)
	case ".yaml", ".yml":
		return fmt.Sprintf("name: %s\n", stem)
	default:
		return fmt.Sprintf("%s\n\nGenerated stub for %s.\n", title, base)
	}
}

func displayLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "python"
	}

	return strings.ToLower(lang)
}
