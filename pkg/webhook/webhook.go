// Package webhook notifies HTTP endpoints about finished actlog runs.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ccollicutt/actlog/pkg/analyzer"
	"github.com/ccollicutt/actlog/pkg/output"
)

// EventRunFinished is the event name carried by every notification.
const EventRunFinished = "actlog.run.finished"

// Header names set on every delivery.
const (
	HeaderEvent   = "X-Actlog-Event"
	HeaderDropped = "X-Actlog-Dropped"
)

// DefaultTimeout bounds a single delivery when the target sets none.
const DefaultTimeout = 10 * time.Second

// maxErrorBody is how much of a rejected response is quoted in the error.
const maxErrorBody = 512

// Notification is the JSON document posted to a webhook.
type Notification struct {
	Event   string         `json:"event"`
	Summary analyzer.Stats `json:"summary"`
	Run     Run            `json:"run"`
}

// Run describes the run that produced the summary.
type Run struct {
	Input            string    `json:"input"`
	Output           string    `json:"output"`
	MalformedRecords int       `json:"malformedRecords"`
	FinishedAt       time.Time `json:"finishedAt"`
	DurationMS       int64     `json:"durationMs"`
}

// NewNotification builds the notification for a finished run.
func NewNotification(report *output.Report) *Notification {
	md := report.Metadata
	return &Notification{
		Event:   EventRunFinished,
		Summary: report.Summary,
		Run: Run{
			Input:            md.Input,
			Output:           md.Output,
			MalformedRecords: md.MalformedRecords,
			FinishedAt:       md.AnalyzedAt.UTC(),
			DurationMS:       md.Duration.Milliseconds(),
		},
	}
}

// Target is one webhook endpoint.
type Target struct {
	URL     string
	Token   string        // sent as a bearer token when set
	Timeout time.Duration // DefaultTimeout when zero
}

// Delivery is the outcome of posting a notification to a Target.
type Delivery struct {
	StatusCode int
	Elapsed    time.Duration
	Err        error
}

// OK reports whether the endpoint accepted the notification with a 2xx status.
func (d Delivery) OK() bool {
	return d.Err == nil && d.StatusCode >= 200 && d.StatusCode < 300
}

// Notifier posts notifications.
type Notifier struct {
	httpClient *http.Client
	userAgent  string
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) NotifierOption {
	return func(n *Notifier) {
		n.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) NotifierOption {
	return func(n *Notifier) {
		n.userAgent = ua
	}
}

// NewNotifier creates a Notifier. Redirects are not followed.
func NewNotifier(opts ...NotifierOption) *Notifier {
	n := &Notifier{
		httpClient: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: "actlog-webhook",
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Deliver posts n to target. Any failure, including a non-2xx reply,
// is reported in Delivery.Err.
func (n *Notifier) Deliver(ctx context.Context, note *Notification, target Target) Delivery {
	start := time.Now()
	d := n.deliver(ctx, note, target)
	d.Elapsed = time.Since(start)
	return d
}

func (n *Notifier) deliver(ctx context.Context, note *Notification, target Target) Delivery {
	body, err := json.Marshal(note)
	if err != nil {
		return Delivery{Err: fmt.Errorf("encoding notification: %w", err)}
	}

	timeout := target.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(body))
	if err != nil {
		return Delivery{Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set(HeaderEvent, note.Event)
	req.Header.Set(HeaderDropped, strconv.Itoa(note.Summary.DroppedEventsCounts))
	if target.Token != "" {
		req.Header.Set("Authorization", "Bearer "+target.Token)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return Delivery{Err: fmt.Errorf("posting to %s: %w", req.URL.Redacted(), err)}
	}
	defer resp.Body.Close()

	d := Delivery{StatusCode: resp.StatusCode}
	if d.OK() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return d
	}

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	d.Err = fmt.Errorf("endpoint replied %s: %s", resp.Status, bytes.TrimSpace(snippet))
	return d
}
