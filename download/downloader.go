package download

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/truemediaorg/postgrab/extract"
	"github.com/truemediaorg/postgrab/model"

	log "github.com/sirupsen/logrus"
)

// DefaultInterval is the pause between two assets of a batch, which keeps
// the media host from rate limiting us.
const DefaultInterval = 500 * time.Millisecond

// AssetFetchError is a per-asset failure. It never aborts a batch.
type AssetFetchError struct {
	URL string
	Err error
}

func (e *AssetFetchError) Error() string {
	return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
}

func (e *AssetFetchError) Unwrap() error {
	return e.Err
}

type Downloader struct {
	fetcher  Fetcher
	saver    Saver
	opener   Opener
	interval time.Duration

	now   func() time.Time
	pause func(ctx context.Context, d time.Duration) error
}

// NewDownloader wires the transports together. opener may be nil, in which
// case failed assets are only reported and never opened.
func NewDownloader(fetcher Fetcher, saver Saver, opener Opener, interval time.Duration) *Downloader {
	return &Downloader{
		fetcher:  fetcher,
		saver:    saver,
		opener:   opener,
		interval: interval,
		now:      time.Now,
		pause:    sleep,
	}
}

/*
Stream downloads every asset of the post strictly in order, one at a time,
and emits one outcome per asset. The fixed interval is observed between
consecutive assets. The channel is closed once the last asset was processed
or the context ended; callers must drain it.
*/
func (d *Downloader) Stream(ctx context.Context, post model.Post) <-chan model.AssetOutcome {
	outcomes := make(chan model.AssetOutcome)
	go func() {
		defer close(outcomes)
		for i, media := range post.Media {
			if i > 0 {
				if err := d.pause(ctx, d.interval); err != nil {
					log.WithField("remaining", len(post.Media)-i).Warnf("batch interrupted: %v", err)
					return
				}
			}
			outcome := d.acquire(ctx, media, BatchFilename(post.Title, i+1, media.Kind))
			outcome.Position = i + 1
			select {
			case outcomes <- outcome:
			case <-ctx.Done():
				return
			}
		}
	}()
	return outcomes
}

// Fold reduces a stream of outcomes into the batch result. A batch succeeds
// when at least one asset was saved and fails only when none were. An empty
// stream leaves the status idle.
func Fold(outcomes <-chan model.AssetOutcome) model.BatchOutcome {
	batch := model.BatchOutcome{
		Status: model.BatchStatusIdle,
		Items:  []model.AssetOutcome{},
	}
	for outcome := range outcomes {
		batch.Items = append(batch.Items, outcome)
		if outcome.Succeeded {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	switch {
	case len(batch.Items) == 0:
		batch.Status = model.BatchStatusIdle
	case batch.Succeeded > 0:
		batch.Status = model.BatchStatusSucceeded
	default:
		batch.Status = model.BatchStatusFailed
	}
	return batch
}

func (d *Downloader) DownloadAll(ctx context.Context, post model.Post) model.BatchOutcome {
	return Fold(d.Stream(ctx, post))
}

// DownloadOne saves a single asset outside of any batch.
func (d *Downloader) DownloadOne(ctx context.Context, media model.Media, index int) bool {
	return d.Acquire(ctx, media, index).Succeeded
}

// Acquire is DownloadOne with the full outcome. index is the 0-based position
// of the asset in its post.
func (d *Downloader) Acquire(ctx context.Context, media model.Media, index int) model.AssetOutcome {
	if media.Kind == "" {
		media.Kind = extract.Kind(media.URL)
	}
	outcome := d.acquire(ctx, media, SingleFilename(index, media.Kind, d.now()))
	outcome.Position = index + 1
	return outcome
}

func (d *Downloader) acquire(ctx context.Context, media model.Media, filename string) model.AssetOutcome {
	outcome := model.AssetOutcome{
		MediaID:  media.ID,
		URL:      media.URL,
		Kind:     media.Kind,
		Filename: filename,
	}
	logger := log.WithField("mediaID", media.ID).WithField("filename", filename)

	err := d.save(ctx, media.URL, filename)
	if err == nil {
		outcome.Succeeded = true
		logger.Debug("asset saved")
		return outcome
	}

	outcome.Error = err.Error()
	logger.Warnf("download failed, trying fallback: %v", err)
	if d.opener != nil && ctx.Err() == nil {
		if openErr := d.opener.Open(media.URL); openErr != nil {
			logger.Errorf("fallback open failed: %v", openErr)
		} else {
			outcome.FallbackOpened = true
		}
	}
	return outcome
}

func (d *Downloader) save(ctx context.Context, assetURL string, filename string) error {
	data, err := d.fetcher.Fetch(ctx, assetURL)
	if err != nil {
		return &AssetFetchError{URL: assetURL, Err: err}
	}
	if err := d.saver.Save(filename, data); err != nil {
		return &AssetFetchError{URL: assetURL, Err: errors.Wrapf(err, "saving %s", filename)}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
