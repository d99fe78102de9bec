package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Fetcher retrieves the raw bytes of an asset.
type Fetcher interface {
	Fetch(ctx context.Context, assetURL string) ([]byte, error)
}

// Saver stores fetched bytes under a filename.
type Saver interface {
	Save(filename string, data []byte) error
}

// Opener hands an asset URL to an external viewer. Used as the fallback when
// an asset cannot be saved.
type Opener interface {
	Open(assetURL string) error
}

type OpenerFunc func(assetURL string) error

func (f OpenerFunc) Open(assetURL string) error {
	return f(assetURL)
}

type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{Client: client}
}

// Fetch issues a plain GET and treats the body as opaque content.
func (f *HTTPFetcher) Fetch(ctx context.Context, assetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status fetching asset: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// DirSaver writes files into a single directory, creating it on first use.
type DirSaver struct {
	Dir string
}

const (
	defaultDirPermissions  = 0755
	defaultFilePermissions = 0644
)

func (s DirSaver) Save(filename string, data []byte) error {
	if err := os.MkdirAll(s.Dir, defaultDirPermissions); err != nil {
		return errors.Wrapf(err, "creating download directory %s", s.Dir)
	}
	// only the base name is honored so a filename can never escape Dir
	target := filepath.Join(s.Dir, filepath.Base(filename))

	tmp, err := os.CreateTemp(s.Dir, ".postgrab-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// CreateTemp always uses 0600
	if err := os.Chmod(tmp.Name(), defaultFilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// BrowserOpener opens URLs with the desktop's default handler.
type BrowserOpener struct{}

func (BrowserOpener) Open(assetURL string) error {
	name, args := openCommand(runtime.GOOS, assetURL)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// the handler may keep running for a while, reap it in the background
	go func() {
		if err := cmd.Wait(); err != nil {
			log.WithField("command", name).Debugf("opener exited: %v", err)
		}
	}()
	return nil
}

func openCommand(goos string, assetURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{assetURL}
	case "windows":
		return "cmd", []string{"/c", "start", "", assetURL}
	default:
		return "xdg-open", []string{assetURL}
	}
}
