package harness

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
)

const DefaultRequestTimeout = time.Second * 10

// Transport sends a request and returns the response. An HTTP error status is a normal
// response; only a failure to get any response at all is returned as an error, which
// will always be a *TransportError.
type Transport interface {
	Send(ctx context.Context, req Request) (Response, error)
}

// HTTPTransport is the standard Transport implementation. It does not retry, and it
// does not follow redirects, so that the test sees exactly what the service returned.
type HTTPTransport struct {
	client  *http.Client
	timeout time.Duration
	logger  framework.Logger
}

// NewHTTPTransport creates an HTTPTransport. Each call is bounded by the given timeout;
// if it is zero or negative, DefaultRequestTimeout is used.
func NewHTTPTransport(timeout time.Duration, logger framework.Logger) *HTTPTransport {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &HTTPTransport{
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		timeout: timeout,
		logger:  logger,
	}
}

// WithLogger returns a copy of the transport that writes debug output to a different
// logger. The underlying HTTP client is shared.
func (t *HTTPTransport) WithLogger(logger framework.Logger) *HTTPTransport {
	t1 := *t
	if logger == nil {
		logger = framework.NullLogger()
	}
	t1.logger = logger
	return &t1
}

func (t *HTTPTransport) Send(ctx context.Context, req Request) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return Response{}, &TransportError{Method: req.Method, URL: req.URL, Err: err}
	}
	for name, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}

	if len(req.Body) > 0 {
		t.logger.Printf("Sending %s %s: %s", req.Method, req.URL, string(req.Body))
	} else {
		t.logger.Printf("Sending %s %s", req.Method, req.URL)
	}
	start := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		return Response{}, t.transportError(req, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, t.transportError(req, err)
	}
	ret := Response{
		StatusCode: resp.StatusCode,
		StatusLine: resp.Proto + " " + resp.Status,
		Header:     resp.Header,
		Body:       data,
	}
	t.logger.Printf("Received %s after %s: %s", ret.StatusLine, time.Since(start).Round(time.Millisecond), string(data))
	return ret, nil
}

func (t *HTTPTransport) transportError(req Request, err error) error {
	te := &TransportError{Method: req.Method, URL: req.URL, Err: err}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		te.Timeout = true
	}
	t.logger.Printf("Request failed: %s", te)
	return te
}
