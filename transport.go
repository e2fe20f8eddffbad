package rivet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Response is the transport-level result of a round trip: status, headers,
// and the raw body bytes. Decoding into a typed shape happens above this
// layer.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Transport executes a compiled request. It is the only blocking collaborator
// in this package; cancellation and timeouts belong to it and to the caller's
// context, never to the compiler.
type Transport interface {
	RoundTrip(ctx context.Context, req *ResolvedRequest) (*Response, error)
}

// defaultMaxResponseBody caps how much of a response body is read.
const defaultMaxResponseBody = 4 << 20

// HTTPTransport is a thin net/http adapter: it joins the compiled relative
// URL onto a base address and executes the request. Connection pooling, TLS,
// and retries are the *http.Client's business.
type HTTPTransport struct {
	base            string
	client          *http.Client
	maxResponseBody int64
}

// NewHTTPTransport creates a transport targeting baseURL, e.g.
// "http://127.0.0.1:8500/v1".
func NewHTTPTransport(baseURL string) (*HTTPTransport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}
	return &HTTPTransport{
		base:            strings.TrimSuffix(u.String(), "/"),
		client:          http.DefaultClient,
		maxResponseBody: defaultMaxResponseBody,
	}, nil
}

// WithClient sets the underlying *http.Client. It returns the transport for
// chaining.
func (t *HTTPTransport) WithClient(client *http.Client) *HTTPTransport {
	t.client = client
	return t
}

// WithMaxResponseBodySize caps the number of response bytes read. A value of
// 0 means no limit.
func (t *HTTPTransport) WithMaxResponseBodySize(size int64) *HTTPTransport {
	t.maxResponseBody = size
	return t
}

func (t *HTTPTransport) RoundTrip(ctx context.Context, req *ResolvedRequest) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, t.base+"/"+req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	httpRes, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpRes.Body.Close()

	r := io.Reader(httpRes.Body)
	if t.maxResponseBody > 0 {
		r = io.LimitReader(r, t.maxResponseBody)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		Status: httpRes.StatusCode,
		Header: httpRes.Header,
		Body:   data,
	}, nil
}
