package resolver

import (
	"strings"

	"github.com/truemediaorg/postgrab/model"
)

// DetailPath is appended to the configured endpoint for every resolution.
const DetailPath = "/xhs/detail"

type DetailRequest struct {
	URL string `json:"url"`
}

// Config selects the resolver for one call. An empty or "demo" endpoint
// selects the mock resolver.
type Config struct {
	Endpoint string
	Token    string
}

func ConfigFromSettings(s model.Settings) Config {
	return Config{
		Endpoint: s.Endpoint,
		Token:    s.Token,
	}
}

func (c Config) IsDemo() bool {
	endpoint := strings.TrimSpace(c.Endpoint)
	return endpoint == "" || endpoint == model.DemoEndpoint
}

// DetailURL is the endpoint without its trailing slash, plus DetailPath.
func (c Config) DetailURL() string {
	return strings.TrimSuffix(strings.TrimSpace(c.Endpoint), "/") + DetailPath
}
