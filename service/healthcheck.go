package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const healthcheckTimeout = 2 * time.Second

type Health struct {
	Status string `json:"status"`
	Demo   bool   `json:"demo"`
	Batch  string `json:"batch"`
	Error  string `json:"error,omitempty"`
}

// Healthcheck reports whether the settings store is reachable, which is the
// only dependency the API cannot work without.
func (p *Pipeline) Healthcheck(ctx context.Context) (Health, bool) {
	log.Debug("received healthcheck request")
	ctx, cancel := context.WithTimeout(ctx, healthcheckTimeout)
	defer cancel()

	health := Health{Status: "ok", Batch: string(p.Status())}
	cfg, err := p.ResolverConfig(ctx)
	if err != nil {
		health.Status = "unavailable"
		health.Error = err.Error()
		return health, false
	}
	health.Demo = cfg.IsDemo()
	return health, true
}
