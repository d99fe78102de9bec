package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/truemediaorg/postgrab/config"
	"github.com/truemediaorg/postgrab/download"
	"github.com/truemediaorg/postgrab/i18n"
	"github.com/truemediaorg/postgrab/metrics"
	"github.com/truemediaorg/postgrab/resolver"
	"github.com/truemediaorg/postgrab/service"
	"github.com/truemediaorg/postgrab/settings"
)

// app is everything a command needs once config has been read
type app struct {
	cfg      config.Config
	store    settings.Store
	pipeline *service.Pipeline
	metrics  *metrics.Metrics
}

func setupLogging(cfg config.Config) {
	log.SetLevel(cfg.LogLevel)

	switch cfg.LogFormat {
	case config.LogFormatJSON:
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{})
	}
}

// newApp reads config, sets up logging and builds the pipeline. opener may be
// nil when no local browser should be used for failed assets.
func newApp(ctx context.Context, opener download.Opener) *app {
	cfg := config.FromEnvfile()
	setupLogging(cfg)

	store, err := settings.Open(ctx, cfg.Settings.Dir, cfg.Settings.RedisAddress, cfg.Settings.RedisPassword)
	if err != nil {
		log.Fatalf("error opening settings: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	downloader := download.NewDownloader(
		download.NewHTTPFetcher(&http.Client{Timeout: cfg.Download.Timeout}),
		download.DirSaver{Dir: cfg.Download.Dir},
		opener,
		cfg.Download.Interval,
	)
	pipeline := service.NewPipeline(
		resolver.NewService(cfg.Resolver.Timeout),
		store,
		downloader,
		download.NewTracker(cfg.Download.StatusDisplay),
		m,
	)

	if cfg.Resolver.SecretPath != "" {
		awsConfig, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			log.Fatal(err)
		}
		token, err := service.ResolverToken(ctx, secretsmanager.NewFromConfig(awsConfig), cfg.Resolver.SecretPath)
		if err != nil {
			log.Fatalf("error reading resolver token: %v", err)
		}
		pipeline.SetTokenOverride(token)
		log.WithField("secretPath", cfg.Resolver.SecretPath).Info("resolver token loaded from secrets manager")
	}

	return &app{
		cfg:      cfg,
		store:    store,
		pipeline: pipeline,
		metrics:  m,
	}
}

func (a *app) Close() {
	if closer, ok := a.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Warnf("error closing settings store: %v", err)
		}
	}
}

// translator uses the language from the stored settings
func (a *app) translator(ctx context.Context) i18n.Translator {
	s, err := a.pipeline.Settings(ctx)
	if err != nil {
		return i18n.For("")
	}
	return i18n.For(s.Language)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("error encoding output: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
