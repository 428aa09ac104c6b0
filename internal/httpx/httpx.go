package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lpg-management/internal/logger"
)

// IdempotencyKeyHeader marks a POST as safe to replay.
const IdempotencyKeyHeader = "Idempotency-Key"

// HTTPError carries status/body for non-2xx responses.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, Snippet(e.Body, 900))
}

// Snippet trims a response body for error messages.
func Snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// Retry5xx retries any 5xx in addition to RetryStatuses.
	Retry5xx      bool
	RetryStatuses map[int]bool
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 4,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Retry5xx:    true,
		RetryStatuses: map[int]bool{
			http.StatusTooManyRequests: true,
			http.StatusRequestTimeout:  true,
			http.StatusTooEarly:        true,
		},
	}
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	def := DefaultRetryPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = def.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = def.MaxDelay
	}
	if p.RetryStatuses == nil {
		p.RetryStatuses = def.RetryStatuses
	}
	return p
}

func (p RetryPolicy) retryableStatus(code int) bool {
	return p.RetryStatuses[code] || (p.Retry5xx && code >= 500 && code <= 599)
}

// Doer executes requests with retries. Requests are rebuilt for every attempt so
// bodies are fresh. Non-idempotent requests are only replayed when they carry an
// Idempotency-Key.
type Doer struct {
	Client *http.Client
	Policy RetryPolicy
	Log    *logger.Logger
}

func NewDoer(client *http.Client, policy RetryPolicy, log *logger.Logger) *Doer {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Doer{Client: client, Policy: policy.withDefaults(), Log: log}
}

// Do returns the response and its fully read body. A non-2xx status is an *HTTPError.
func (d *Doer) Do(ctx context.Context, build func(context.Context) (*http.Request, error)) (*http.Response, []byte, error) {
	policy := d.Policy.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		req, err := build(ctx)
		if err != nil {
			return nil, nil, err
		}
		replayable := isReplayable(req)
		last := attempt == policy.MaxAttempts || !replayable

		resp, err := d.Client.Do(req)
		if err == nil {
			var body []byte
			body, err = readAndClose(resp.Body)
			if err == nil {
				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					return resp, body, nil
				}
				herr := &HTTPError{
					Method:     req.Method,
					URL:        req.URL.String(),
					StatusCode: resp.StatusCode,
					Header:     resp.Header.Clone(),
					Body:       body,
				}
				if last || !policy.retryableStatus(resp.StatusCode) {
					return resp, body, herr
				}
				lastErr = herr
				d.Log.Warn("retrying request", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "attempt", attempt)
				if err := sleep(ctx, backoff(attempt, policy, ParseRetryAfter(resp.Header))); err != nil {
					return nil, nil, err
				}
				continue
			}
		}

		if last || !isRetryableNetErr(err) {
			return nil, nil, err
		}
		lastErr = err
		d.Log.Warn("retrying request", "method", req.Method, "url", req.URL.String(), "error", err, "attempt", attempt)
		if err := sleep(ctx, backoff(attempt, policy, 0)); err != nil {
			return nil, nil, err
		}
	}

	if lastErr != nil {
		return nil, nil, lastErr
	}
	return nil, nil, errors.New("httpx: request failed")
}

// DoJSON runs Do and decodes the body into out. Numbers decode as json.Number so
// money values keep their exact text.
func (d *Doer) DoJSON(ctx context.Context, build func(context.Context) (*http.Request, error), out any) (*http.Response, error) {
	resp, body, err := d.Do(ctx, build)
	if err != nil {
		return resp, err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return resp, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return resp, fmt.Errorf("json parse error: %w body=%s", err, Snippet(body, 900))
	}
	return resp, nil
}

func isReplayable(req *http.Request) bool {
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return req.Header.Get(IdempotencyKeyHeader) != ""
}

func readAndClose(rc io.ReadCloser) ([]byte, error) {
	defer rc.Close()
	return io.ReadAll(rc)
}

func backoff(attempt int, p RetryPolicy, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return min(retryAfter, p.MaxDelay)
	}
	d := p.BaseDelay << (attempt - 1)
	if d > p.MaxDelay || d <= 0 {
		d = p.MaxDelay
	}
	return d + time.Duration(rand.Intn(250))*time.Millisecond
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func isRetryableNetErr(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "eof")
}

// ParseRetryAfter reads a Retry-After header (seconds or HTTP date); 0 when absent.
func ParseRetryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
