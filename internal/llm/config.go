// Package llm extracts structured résumés from free text with Gemini.
package llm

// DefaultModel reads résumés when no model is configured
const DefaultModel = "gemini-2.5-flash"

// defaultMaxOutputTokens bounds one extraction answer. A long résumé fits well inside it.
const defaultMaxOutputTokens int32 = 8192

// Config selects the Gemini model and answer budget
type Config struct {
	Model           string
	MaxOutputTokens int32
}

// DefaultConfig returns DefaultModel with the default answer budget
func DefaultConfig() *Config {
	return &Config{Model: DefaultModel, MaxOutputTokens: defaultMaxOutputTokens}
}

// ConfigForModel returns the default config using model when it is set
func ConfigForModel(model string) *Config {
	cfg := DefaultConfig()
	if model != "" {
		cfg.Model = model
	}
	return cfg
}
