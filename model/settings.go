package model

import "strings"

const (
	// Endpoint value that selects the local mock resolver
	DemoEndpoint    = "demo"
	DefaultLanguage = "zh"
	// Stands in for a stored token in anything shown to a client
	RedactedToken = "********"
)

// Settings is the only state persisted across sessions. It is always
// written as a whole.
type Settings struct {
	Endpoint string `json:"apiBaseUrl"`
	Token    string `json:"apiToken,omitempty"`
	Language string `json:"language"`
}

func DefaultSettings() Settings {
	return Settings{
		Endpoint: DemoEndpoint,
		Language: DefaultLanguage,
	}
}

func (s Settings) IsDemo() bool {
	endpoint := strings.TrimSpace(s.Endpoint)
	return endpoint == "" || endpoint == DemoEndpoint
}

// Redacted returns a copy that is safe to hand back to clients.
func (s Settings) Redacted() Settings {
	if s.Token != "" {
		s.Token = RedactedToken
	}
	return s
}
