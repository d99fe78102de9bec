package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lucsky/cuid"
	log "github.com/sirupsen/logrus"
	"github.com/truemediaorg/postgrab/download"
	"github.com/truemediaorg/postgrab/extract"
	"github.com/truemediaorg/postgrab/i18n"
	"github.com/truemediaorg/postgrab/metrics"
	"github.com/truemediaorg/postgrab/model"
	"github.com/truemediaorg/postgrab/normalize"
	"github.com/truemediaorg/postgrab/resolver"
	"github.com/truemediaorg/postgrab/settings"
)

// ErrBatchRunning is returned by DownloadAll while another batch is in flight
var ErrBatchRunning = errors.New("a batch download is already running")

type Pipeline struct {
	resolver   *resolver.Service
	store      settings.Store
	downloader *download.Downloader
	tracker    *download.Tracker
	metrics    *metrics.Metrics

	// token from the secrets manager, wins over the stored one
	tokenOverride string
}

func NewPipeline(
	resolverService *resolver.Service,
	store settings.Store,
	downloader *download.Downloader,
	tracker *download.Tracker,
	m *metrics.Metrics,
) *Pipeline {
	return &Pipeline{
		resolver:   resolverService,
		store:      store,
		downloader: downloader,
		tracker:    tracker,
		metrics:    m,
	}
}

func (p *Pipeline) SetTokenOverride(token string) {
	p.tokenOverride = token
}

// Analyze extracts the first URL from free text and resolves it with the
// currently stored settings.
func (p *Pipeline) Analyze(ctx context.Context, text string) (*model.Post, error) {
	postURL, err := extract.URL(text)
	if err != nil {
		p.metrics.ObserveResolution(false, metrics.ResultNoURL)
		return nil, err
	}

	cfg, err := p.ResolverConfig(ctx)
	if err != nil {
		return nil, err
	}

	logger := log.WithField("postURL", postURL).WithField("demo", cfg.IsDemo())
	if found := len(extract.All(text)); found > 1 {
		logger.WithField("ignored", found-1).Debug("text holds several links, using the first")
	}
	post, err := p.resolver.Resolve(ctx, postURL, cfg)
	if err != nil {
		var normErr *normalize.NormalizationError
		if errors.As(err, &normErr) {
			p.metrics.ObserveResolution(cfg.IsDemo(), metrics.ResultNormalizeError)
		} else {
			p.metrics.ObserveResolution(cfg.IsDemo(), metrics.ResultResolveError)
		}
		logger.Warnf("resolve failed: %v", err)
		return nil, err
	}

	p.metrics.ObserveResolution(cfg.IsDemo(), metrics.ResultOK)
	logger.WithField("media", len(post.Media)).Info("post resolved")
	return post, nil
}

func (p *Pipeline) ResolverConfig(ctx context.Context) (resolver.Config, error) {
	s, err := p.store.Load(ctx)
	if err != nil {
		return resolver.Config{}, err
	}
	cfg := resolver.ConfigFromSettings(s)
	if p.tokenOverride != "" {
		cfg.Token = p.tokenOverride
	}
	return cfg, nil
}

// DownloadAll runs one batch for the post. A post without media leaves the
// tracker untouched and reports idle.
func (p *Pipeline) DownloadAll(ctx context.Context, post model.Post) (model.BatchOutcome, error) {
	if len(post.Media) == 0 {
		return model.BatchOutcome{Status: model.BatchStatusIdle, Items: []model.AssetOutcome{}}, nil
	}
	if !p.tracker.Begin() {
		return model.BatchOutcome{}, ErrBatchRunning
	}

	logger := log.WithField("batchID", cuid.New()).WithField("assets", len(post.Media))
	logger.Info("batch started")
	start := time.Now()

	outcomes := p.downloader.Stream(ctx, post)
	observed := make(chan model.AssetOutcome)
	go func() {
		defer close(observed)
		for outcome := range outcomes {
			p.metrics.ObserveAsset(outcome)
			logger.WithField("position", outcome.Position).WithField("saved", outcome.Succeeded).Debug("asset processed")
			observed <- outcome
		}
	}()
	batch := download.Fold(observed)

	p.tracker.Finish(batch.Status)
	p.metrics.ObserveBatch(batch, time.Since(start).Seconds())
	logger.WithField("status", batch.Status).
		WithField("succeeded", batch.Succeeded).
		WithField("failed", batch.Failed).
		Info("batch finished")
	return batch, nil
}

// DownloadOne saves a single asset; it does not touch the batch status.
func (p *Pipeline) DownloadOne(ctx context.Context, media model.Media, index int) model.AssetOutcome {
	outcome := p.downloader.Acquire(ctx, media, index)
	p.metrics.ObserveAsset(outcome)
	return outcome
}

func (p *Pipeline) Status() model.BatchStatus {
	return p.tracker.Status()
}

func (p *Pipeline) Settings(ctx context.Context) (model.Settings, error) {
	return p.store.Load(ctx)
}

// SaveSettings replaces the stored settings wholesale. The endpoint is
// trimmed and the language is mapped onto a supported one.
func (p *Pipeline) SaveSettings(ctx context.Context, s model.Settings) (model.Settings, error) {
	s.Endpoint = strings.TrimSpace(s.Endpoint)
	if s.Endpoint == "" {
		s.Endpoint = model.DemoEndpoint
	}
	s.Token = strings.TrimSpace(s.Token)
	s.Language = i18n.Match(s.Language)
	if err := p.store.Save(ctx, s); err != nil {
		return model.Settings{}, err
	}
	log.WithField("demo", s.IsDemo()).WithField("language", s.Language).Info("settings saved")
	return s, nil
}
