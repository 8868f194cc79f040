package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/supermemoryai/install-mcp/internal/logging"
	"github.com/supermemoryai/install-mcp/internal/redact"
)

// DefaultTimeout bounds each probe request and the first-frame read when
// Request.Timeout is not positive.
const DefaultTimeout = 5 * time.Second

const (
	probeOrigin = "http://localhost"

	mimeJSON        = "application/json"
	mimeEventStream = "text/event-stream"

	endpointEvent = "endpoint"
)

// Request describes a server to probe.
type Request struct {
	// URL is the server's base URL.
	URL string
	// Timeout applies separately to the POST, the GET and the frame read.
	Timeout time.Duration
	// Headers are sent with both requests and override the probe's own
	// headers on collision, compared case-insensitively.
	Headers map[string]string
}

func (r Request) timeout() time.Duration {
	if r.Timeout <= 0 {
		return DefaultTimeout
	}
	return r.Timeout
}

// header builds request headers from defaults followed by caller overrides.
func (r Request) header(defaults map[string]string) http.Header {
	h := make(http.Header, len(defaults)+len(r.Headers))
	for k, v := range defaults {
		h.Set(k, v)
	}
	for k, v := range r.Headers {
		h.Set(k, v)
	}
	return h
}

// postVerdict classifies the initialize POST.
type postVerdict int

const (
	postNoResponse   postVerdict = iota // network failure or timeout
	postAccepted                        // 2xx with a JSON or event-stream body
	postRejected                        // 4xx other than 401 and 403
	postInconclusive                    // anything else, auth challenges included
)

func (v postVerdict) String() string {
	switch v {
	case postAccepted:
		return "accepted"
	case postRejected:
		return "rejected"
	case postInconclusive:
		return "inconclusive"
	default:
		return "no-response"
	}
}

func classifyPost(resp *response) postVerdict {
	switch {
	case resp == nil:
		return postNoResponse
	case successful(resp.status) && (resp.contentType == mimeJSON || resp.contentType == mimeEventStream):
		return postAccepted
	case resp.status >= 400 && resp.status < 500 &&
		resp.status != http.StatusUnauthorized && resp.status != http.StatusForbidden:
		return postRejected
	default:
		return postInconclusive
	}
}

// Detector resolves the transport of a remote MCP server.
type Detector interface {
	Detect(ctx context.Context, req Request) Kind
}

var _ Detector = (*Prober)(nil)

// Option configures a Prober.
type Option func(*Prober)

// WithHTTPClient sets the client used for probe requests. Timeouts are
// enforced per request, so the client needs no Timeout of its own.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Prober) {
		if c != nil {
			p.client = c
		}
	}
}

// WithIDGenerator sets the function producing JSON-RPC request ids.
func WithIDGenerator(fn func() string) Option {
	return func(p *Prober) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// Prober detects MCP transports. It holds no per-call state and is safe
// for concurrent use.
type Prober struct {
	client *http.Client
	newID  func() string
}

// NewProber creates a Prober with the given options.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		client: &http.Client{},
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Detect determines the transport spoken at req.URL. It never fails;
// anything that prevents a definite answer yields KindUnknown.
func (p *Prober) Detect(ctx context.Context, req Request) Kind {
	logger := logging.FromContext(ctx)

	verdict := p.probeStreamable(ctx, req)
	logger.Debug("streamable HTTP probe",
		"url", redact.URL(req.URL),
		"verdict", verdict.String(),
	)

	kind := p.resolve(ctx, verdict, req)
	logger.Debug("transport detected",
		"url", redact.URL(req.URL),
		"kind", kind.String(),
	)
	return kind
}

// resolve maps a POST verdict to a kind. Only an accepted POST is
// conclusive; every other verdict falls back to the GET probe, whose answer
// is final.
func (p *Prober) resolve(ctx context.Context, verdict postVerdict, req Request) Kind {
	switch verdict {
	case postAccepted:
		return KindHTTP
	default:
		return p.probeLegacy(ctx, req)
	}
}

// probeStreamable POSTs an initialize message and classifies the answer.
func (p *Prober) probeStreamable(ctx context.Context, req Request) postVerdict {
	body, err := newInitializeMessage(p.newID()).encode()
	if err != nil {
		return postNoResponse
	}

	header := req.header(map[string]string{
		"Content-Type": mimeJSON,
		"Accept":       mimeJSON + ", " + mimeEventStream,
		"Origin":       probeOrigin,
	})

	resp := fetch(ctx, p.client, http.MethodPost, req.URL, header, body, req.timeout())
	if resp != nil {
		defer resp.Close()
		logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "POST response",
			"status", resp.status,
			"content_type", resp.contentType,
		)
	}
	return classifyPost(resp)
}

// probeLegacy opens a GET event stream and inspects its first frame.
func (p *Prober) probeLegacy(ctx context.Context, req Request) Kind {
	logger := logging.FromContext(ctx)
	timeout := req.timeout()

	header := req.header(map[string]string{
		"Accept": mimeEventStream,
		"Origin": probeOrigin,
	})

	resp := fetch(ctx, p.client, http.MethodGet, req.URL, header, nil, timeout)
	if resp == nil {
		logger.Debug("legacy SSE probe", "outcome", "no-response")
		return KindUnknown
	}
	defer resp.Close()

	logger.Log(ctx, logging.LevelTrace, "GET response",
		"status", resp.status,
		"content_type", resp.contentType,
	)

	if resp.status == http.StatusMethodNotAllowed {
		logger.Debug("legacy SSE probe", "outcome", "get-not-allowed")
		return KindHTTP
	}
	if resp.contentType != mimeEventStream {
		logger.Debug("legacy SSE probe", "outcome", "not-event-stream")
		return KindUnknown
	}

	frame, ok := ReadFirstFrame(ctx, resp.body, timeout)
	if !ok {
		logger.Debug("legacy SSE probe", "outcome", "no-frame")
		return KindUnknown
	}

	logger.Debug("legacy SSE probe", "outcome", "frame", "event", frame.Event)
	if strings.TrimSpace(frame.Event) == endpointEvent {
		return KindSSE
	}
	return KindHTTP
}
