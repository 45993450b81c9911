package notifylog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/colonyops/herald/internal/core/logging"
	"github.com/colonyops/herald/internal/core/notify"
)

// ErrDeliveryFailed is reported when the endpoint rejects or cannot
// receive a log record.
var ErrDeliveryFailed = errors.New("log delivery failed")

// Sink names used in diagnostics and metrics.
const (
	SinkCallback = "callback"
	SinkEndpoint = "endpoint"
)

// Record is the JSON body posted to the endpoint.
type Record struct {
	Type      notify.Type `json:"type"`
	Message   string      `json:"message"`
	Title     string      `json:"title,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Observer is notified of every sink outcome. err is nil on success.
type Observer func(sink string, err error)

// Dispatcher delivers notifications to the configured sinks. Deliveries
// run in the background; Dispatch never blocks on a sink and never
// returns a sink failure to its caller.
type Dispatcher struct {
	httpClient   *http.Client
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	logger       zerolog.Logger
	now          func() time.Time
	observer     Observer
	wg           conc.WaitGroup
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithHTTPClient replaces the HTTP client used for the endpoint.
func WithHTTPClient(c *http.Client) DispatcherOption {
	return func(d *Dispatcher) {
		if c != nil {
			d.httpClient = c
		}
	}
}

// WithRetryWait bounds the backoff between endpoint retries.
func WithRetryWait(minWait, maxWait time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.retryWaitMin = minWait
		d.retryWaitMax = maxWait
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithNow overrides the timestamp source.
func WithNow(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithObserver registers a callback for sink outcomes.
func WithObserver(o Observer) DispatcherOption {
	return func(d *Dispatcher) {
		d.observer = o
	}
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		httpClient:   &http.Client{},
		retryWaitMin: time.Second,
		retryWaitMax: 30 * time.Second,
		logger:       logging.Component("notifylog"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch forwards n to the sinks enabled in cfg. It returns immediately;
// use Wait to block until in-flight deliveries finish.
func (d *Dispatcher) Dispatch(ctx context.Context, n notify.Notification, cfg Config) {
	if !cfg.Enabled || !ShouldLog(cfg.Level, n.Type) {
		return
	}

	// Deliveries outlive the caller's request; keep values, drop cancellation.
	ctx = context.WithoutCancel(ctx)
	logger := d.logger.With().Str("notification_id", n.ID).Str("type", string(n.Type)).Logger()

	if cfg.OnLog != nil {
		d.wg.Go(func() {
			d.run(SinkCallback, logger, func() error {
				return cfg.OnLog(ctx, n)
			})
		})
	}

	if cfg.Endpoint != "" {
		record := Record{
			Type:      n.Type,
			Message:   n.Message,
			Title:     n.Title,
			Timestamp: d.now().UTC().Format(time.RFC3339Nano),
		}
		d.wg.Go(func() {
			d.run(SinkEndpoint, logger, func() error {
				return d.post(ctx, cfg, record)
			})
		})
	}
}

// Wait blocks until every in-flight delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// run executes one sink, converting panics into errors so a failing sink
// can neither crash the process nor affect the other sink.
func (d *Dispatcher) run(sink string, logger zerolog.Logger, fn func() error) {
	var err error
	if recovered := panics.Try(func() { err = fn() }); recovered != nil {
		err = recovered.AsError()
	}

	if err != nil {
		logger.Error().Err(err).Str("sink", sink).Msg("notification log sink failed")
	}
	if d.observer != nil {
		d.observer(sink, err)
	}
}

func (d *Dispatcher) post(ctx context.Context, cfg Config, record Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal log record: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(reqCtx, http.MethodPost, cfg.Endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", ErrDeliveryFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := retryablehttp.NewClient()
	client.HTTPClient = d.httpClient
	client.Logger = nil
	client.RetryMax = max(cfg.Retries, 0)
	client.RetryWaitMin = d.retryWaitMin
	client.RetryWaitMax = d.retryWaitMax

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: endpoint returned %s", ErrDeliveryFailed, resp.Status)
	}
	return nil
}
