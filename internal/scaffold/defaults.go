package scaffold

// Standard tier names the pipeline flow is built around.
const (
	// TierInitial is the planning tier a pipeline run starts from.
	TierInitial = "initial"
	// TierFileGeneration is the per-file fan-out tier.
	TierFileGeneration = "file_generation"
	// TierOptimization is the optional refinement tier.
	TierOptimization = "optimization"
)

const initialTemplate = `Create a detailed development plan for $concept using $language.

Consider the following when creating the plan:
1. System info: $system
2. Best practices for $language
3. Project structure

For each file, include:
- File name
- Purpose
- Key components/functions

Output the plan as a structured document with clear sections.`

const fileGenerationTemplate = `Generate the file $file_name based on the following plan:

$plan

Follow best practices for $language and ensure the code is:
1. Well-documented
2. Properly structured
3. Following idiomatic patterns for $language

Output only the file content, ready to be saved.`

const optimizationTemplate = `Review and optimize the following code for $file_name:

$input

Consider:
1. Performance improvements
2. Code cleanliness
3. Best practices for $language
4. Error handling

Output the improved code without additional comments.`

// NewDefaultConfig builds a document with the standard three tiers: an
// enabled planning tier plus disabled file_generation and optimization
// tiers to switch on as needed. extraVars are merged over the seeded
// concept/language variables.
func NewDefaultConfig(name, concept, language, description string, extraVars map[string]any) *Config {
	variables := map[string]any{
		"concept":  concept,
		"language": language,
	}
	for k, v := range extraVars {
		variables[k] = v
	}

	return &Config{
		Name:        name,
		Description: description,
		Variables:   variables,
		SystemInfo:  CaptureSystemInfo(),
		Tiers: map[string]*Tier{
			TierInitial: {
				Enabled:       true,
				Template:      NewTemplate(initialTemplate),
				Format:        FormatText,
				UseSystemInfo: true,
				Optimize:      true,
			},
			TierFileGeneration: {
				Enabled:  false,
				Template: NewTemplate(fileGenerationTemplate),
				Format:   FormatText,
			},
			TierOptimization: {
				Enabled:  false,
				Template: NewTemplate(optimizationTemplate),
				Format:   FormatText,
			},
		},
	}
}
