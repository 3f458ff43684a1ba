package loader

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/BrowserKernel/internal/domain/kernel"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/logging"
	"github.com/GriffinCanCode/BrowserKernel/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/BrowserKernel/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Error codes for failures that never produced an HTTP status.
const (
	CodeTransport   = 0
	CodeBadManifest = 422
)

// Dispatcher delivers actions to the kernel store.
type Dispatcher interface {
	Dispatch(a kernel.Action) types.BrowserState
}

// HistoryStore persists navigation history and returns the canonical list.
type HistoryStore interface {
	Record(ctx context.Context, item types.HistoryItem) ([]types.HistoryItem, error)
}

// Config contains loader configuration
type Config struct {
	Timeout  time.Duration
	RetryMax int
}

// Loader fetches manifests and drives navigation phases.
type Loader struct {
	client     *resty.Client
	dispatcher Dispatcher
	history    HistoryStore
	log        *logging.Logger
	metrics    *monitoring.Metrics
}

// New creates a loader with a retrying HTTP transport.
func New(cfg Config, dispatcher Dispatcher, history HistoryStore, log *logging.Logger) *Loader {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if log == nil {
		log = logging.NewDefault()
	}

	return &Loader{
		client:     client,
		dispatcher: dispatcher,
		history:    history,
		log:        log,
	}
}

// WithMetrics adds metrics tracking to the loader.
func (l *Loader) WithMetrics(metrics *monitoring.Metrics) *Loader {
	l.metrics = metrics
	return l
}

// Navigate fetches the manifest at url and dispatches the navigation phases.
// The returned error mirrors what was already surfaced through the kernel;
// callers only need it for their own response codes.
func (l *Loader) Navigate(ctx context.Context, url string, initialProps types.Document) error {
	if url == "" {
		return fmt.Errorf("url is required")
	}

	manifest, code, err := l.fetchManifest(ctx, url)
	if err != nil {
		l.log.Warn("manifest fetch failed",
			zap.String("url", url),
			zap.Int("code", code),
			zap.Error(err))
		l.dispatcher.Dispatch(kernel.ShowLoadingError(types.LoadingError{
			Code:        code,
			Message:     err.Error(),
			OriginalURL: url,
		}))
		return err
	}

	bundleURL, _ := manifest["bundleUrl"].(string)
	item := types.HistoryItem{
		URL:         url,
		BundleURL:   bundleURL,
		ManifestURL: url,
		Manifest:    manifest,
		Time:        time.Now().UnixMilli(),
	}

	l.dispatcher.Dispatch(kernel.NavigateBegin(kernel.NavigationMeta{
		URL:          url,
		BundleURL:    bundleURL,
		ManifestURL:  url,
		Manifest:     manifest,
		InitialProps: initialProps,
		HistoryItem:  item,
	}))

	canonical, err := l.history.Record(ctx, item)
	if err != nil {
		l.dispatcher.Dispatch(kernel.NavigateCatch(err))
		return err
	}

	l.dispatcher.Dispatch(kernel.NavigateThen(canonical))
	return nil
}

// fetchManifest retrieves and decodes the manifest document. The returned
// code is the HTTP status when one was received.
func (l *Loader) fetchManifest(ctx context.Context, url string) (types.Document, int, error) {
	start := time.Now()

	resp, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		l.recordFetch("transport_error", start)
		return nil, CodeTransport, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	if resp.IsError() {
		l.recordFetch("http_error", start)
		return nil, resp.StatusCode(), fmt.Errorf("manifest request returned %s", resp.Status())
	}

	var manifest types.Document
	if err := sonic.Unmarshal(resp.Body(), &manifest); err != nil {
		l.recordFetch("decode_error", start)
		return nil, CodeBadManifest, fmt.Errorf("failed to decode manifest: %w", err)
	}

	l.recordFetch("ok", start)
	return manifest, resp.StatusCode(), nil
}

func (l *Loader) recordFetch(status string, start time.Time) {
	if l.metrics != nil {
		l.metrics.RecordManifestFetch(status, time.Since(start))
	}
}
