// Package llm provides the LLM client abstraction used by the AI
// investigator provider. Centralizing model configuration keeps tier
// switching out of the callers.
package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierStandard is for moderate structured-output tasks.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the public-profile investigation itself, which
	// needs search grounding and careful JSON output.
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model configuration for the application.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model configuration.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return ""
}
