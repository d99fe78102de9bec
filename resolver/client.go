package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/truemediaorg/postgrab/model"
	"github.com/truemediaorg/postgrab/normalize"
)

// DefaultMockLatency is how long the demo resolver pretends to work.
const DefaultMockLatency = 1500 * time.Millisecond

type Service struct {
	HTTPClient  *http.Client
	MockLatency time.Duration
}

func NewService(timeout time.Duration) *Service {
	return &Service{
		HTTPClient:  &http.Client{Timeout: timeout},
		MockLatency: DefaultMockLatency,
	}
}

// Resolve turns a post URL into a normalized Post. Demo configurations are
// answered locally; anything else costs exactly one request to the resolver,
// which is never retried.
func (s *Service) Resolve(ctx context.Context, postURL string, cfg Config) (*model.Post, error) {
	if cfg.IsDemo() {
		return s.mockResolve(ctx, postURL)
	}

	raw, err := s.fetchDetail(ctx, postURL, cfg)
	if err != nil {
		return nil, err
	}

	post, err := normalize.Normalize(raw)
	if err != nil {
		return nil, err
	}
	post.OriginalURL = postURL
	return post, nil
}

func (s *Service) fetchDetail(ctx context.Context, postURL string, cfg Config) ([]byte, error) {
	reqBody, err := json.Marshal(DetailRequest{URL: postURL})
	if err != nil {
		return nil, errors.Wrap(err, "encoding resolve request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.DetailURL(), bytes.NewReader(reqBody))
	if err != nil {
		return nil, &ResolutionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	log.WithField("endpoint", req.URL.String()).WithField("postURL", postURL).Debug("requesting post detail")
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, &ResolutionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		status := http.StatusText(resp.StatusCode)
		if status == "" {
			status = resp.Status
		}
		return nil, &ResolutionError{StatusCode: resp.StatusCode, Status: status}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResolutionError{Err: errors.Wrap(err, "reading response body")}
	}
	return respBody, nil
}

func (s *Service) mockResolve(ctx context.Context, postURL string) (*model.Post, error) {
	log.WithField("postURL", postURL).Debug("demo endpoint configured, returning mock post")
	if s.MockLatency > 0 {
		timer := time.NewTimer(s.MockLatency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, &ResolutionError{Err: ctx.Err()}
		case <-timer.C:
		}
	}
	return MockPost(postURL), nil
}
