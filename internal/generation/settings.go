package generation

const DefaultModel = "gemini-2.0-flash"

// Settings are fixed sampling parameters; learners never see or change them.
type Settings struct {
	Model           string
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
	// BlockNone disables every per-category safety filter.
	BlockNone bool
}

func DefaultSettings() Settings {
	return Settings{
		Model:           DefaultModel,
		Temperature:     0.5,
		TopP:            1,
		TopK:            32,
		MaxOutputTokens: 8192,
		BlockNone:       true,
	}
}

func (s Settings) WithModel(model string) Settings {
	if model != "" {
		s.Model = model
	}
	return s
}
