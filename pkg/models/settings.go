package models

// Settings represents the application configuration
type Settings struct {
	UI        UISettings        `json:"ui" yaml:"ui"`
	Editor    EditorSettings    `json:"editor" yaml:"editor"`
	Translate TranslateSettings `json:"translate" yaml:"translate"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowCodeChips bool   `json:"show_code_chips" yaml:"show_code_chips"`
	ValueWidth    int    `json:"value_width" yaml:"value_width"`
	DefaultFilter string `json:"default_filter" yaml:"default_filter"` // "all", "translated" or "untranslated"
	Language      string `json:"language" yaml:"language"`             // UI message language, e.g. "en" or "ja"
}

// EditorSettings controls editing and saving behaviour
type EditorSettings struct {
	SortLangKeys bool `json:"sort_lang_keys" yaml:"sort_lang_keys"`
}

// TranslateSettings holds the default language pair for suggestions
type TranslateSettings struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			ShowCodeChips: true,
			ValueWidth:    40,
			DefaultFilter: "all",
			Language:      "en",
		},
		Editor: EditorSettings{
			SortLangKeys: true,
		},
		Translate: TranslateSettings{
			From: "auto",
			To:   "ja",
		},
	}
}
