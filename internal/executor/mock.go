package executor

import (
	"context"
	"regexp"
	"strings"

	"github.com/conneroisu/scaff/internal/logging"
	"github.com/conneroisu/scaff/internal/mockdata"
	"github.com/conneroisu/scaff/internal/scaffold"
)

// fileToken matches the first file-name-looking token in a prompt: a word
// with a source or doc extension. Requiring a known extension keeps dotted
// tokens like module paths or hostnames from being mistaken for files.
var fileToken = regexp.MustCompile(`\b[\w-]+\.(?:py|go|js|jsx|ts|tsx|rs|rb|java|sh|md|json|yaml|yml|toml|txt|html|css)\b`)

// languagePhrase finds the target language where prompts name it, as in
// "using python" or "for go". Anchoring on the phrase keeps incidental
// text, like module paths in a system-info line, from steering the plan.
var languagePhrase = regexp.MustCompile(`(?i)\b(?:using|for|in)\s+(golang|go|python|typescript|javascript|rust)\b`)

// MockExecutor returns deterministic stand-in results without spawning a
// subprocess. Prompts naming a file get stub content for that file; prompts
// asking for a plan get a plan listing files; everything else gets an echo
// response. It exists so the whole pipeline can run offline.
type MockExecutor struct {
	gen *mockdata.Generator
	log logging.Logger
}

// NewMockExecutor creates an offline executor.
func NewMockExecutor(log logging.Logger) *MockExecutor {
	if log == nil {
		log = logging.Discard()
	}

	return &MockExecutor{
		gen: mockdata.New(),
		log: log.WithComponent("mock-executor"),
	}
}

// Execute implements scaffold.Executor with canned responses.
func (m *MockExecutor) Execute(ctx context.Context, prompt string, format scaffold.Format) (any, error) {
	m.log.Debug(ctx, "mock execution", "format", string(format), "prompt_len", len(prompt))

	if name := fileToken.FindString(prompt); name != "" {
		return m.gen.FileContent(name), nil
	}

	if strings.Contains(strings.ToLower(prompt), "plan") {
		lang := detectLanguage(prompt)
		if format == scaffold.FormatJSON {
			return m.gen.PlanStructured(lang), nil
		}
		return m.gen.PlanText(lang), nil
	}

	return "Test response for prompt: " + truncate(prompt, 30) + "...", nil
}

func detectLanguage(prompt string) string {
	if m := languagePhrase.FindStringSubmatch(prompt); m != nil {
		return strings.ToLower(m[1])
	}

	return "python"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
