package census

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/matzehuels/censusplot/pkg/buildinfo"
	"github.com/matzehuels/censusplot/pkg/errors"
	"github.com/matzehuels/censusplot/pkg/httputil"
)

// Loader reads datasets from local files or http(s) URLs.
// Remote bodies are cached by the underlying client.
type Loader struct {
	Client  *httputil.Client
	Refresh bool // bypass the cache for remote sources
}

// NewLoader creates a Loader. A nil client fetches without caching.
func NewLoader(client *httputil.Client) *Loader {
	if client == nil {
		client = httputil.NewClient(nil, map[string]string{"User-Agent": buildinfo.UserAgent()})
	}
	return &Loader{Client: client}
}

// Load reads and validates the dataset at source. On any error no partial
// dataset is returned.
func (l *Loader) Load(ctx context.Context, source string) (*Dataset, error) {
	if err := errors.ValidateSource(source); err != nil {
		return nil, err
	}
	raw, err := l.read(ctx, source)
	if err != nil {
		return nil, err
	}
	return ParseBytes(raw, source)
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if !errors.IsURL(source) {
		raw, err := os.ReadFile(source)
		switch {
		case stderrors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset not found: %s", source)
		case err != nil:
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", source)
		}
		return raw, nil
	}

	var body []byte
	_, err := l.Client.Cached(ctx, "dataset:"+source, l.Refresh, &body, func() (err error) {
		body, err = l.Client.GetBytes(ctx, source)
		return err
	})
	switch {
	case err == nil:
		return body, nil
	case stderrors.Is(err, context.DeadlineExceeded):
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", source)
	case stderrors.Is(err, httputil.ErrNotFound):
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "dataset not found: %s", source)
	default:
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", source)
	}
}
