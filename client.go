package rivet

import (
	"context"
	"errors"
	"log/slog"
)

// Empty declares that an endpoint returns no meaningful body. Use it as the
// response type parameter for operations like register or deregister.
type Empty struct{}

// Client pairs a Compiler with a Transport and decodes responses into their
// declared shapes. Configure with the With* chain, then execute endpoints
// through Do or Call.
type Client struct {
	transport    Transport
	compiler     *Compiler
	codec        Codec
	interceptors []UnaryInterceptor
}

// NewClient creates a Client using the given transport and the JSON codec.
func NewClient(transport Transport) *Client {
	return &Client{
		transport: transport,
		compiler:  NewCompiler(),
		codec:     JSONCodec(),
	}
}

// WithTransport replaces the transport used for round trips. It returns the
// client for chaining.
func (c *Client) WithTransport(transport Transport) *Client {
	c.transport = transport
	return c
}

// WithCodec sets the codec used for both request bodies and response
// decoding. It returns the client for chaining.
func (c *Client) WithCodec(codec Codec) *Client {
	c.codec = codec
	c.compiler.WithCodec(codec)
	return c
}

// WithInterceptor adds an interceptor around every round trip. Interceptors
// run in the order added (first added is outermost).
func (c *Client) WithInterceptor(i UnaryInterceptor) *Client {
	c.interceptors = append(c.interceptors, i)
	return c
}

// WithLogger installs a logging interceptor that records every round trip
// on logger. Shorthand for WithInterceptor(LoggingInterceptor(logger)).
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	return c.WithInterceptor(LoggingInterceptor(logger))
}

// Compile resolves req without executing it. Useful for inspecting exactly
// what would go on the wire.
func (c *Client) Compile(req Endpoint) (*ResolvedRequest, error) {
	return c.compiler.Compile(req)
}

// Do compiles req, executes it through the transport, and decodes a 2xx
// response body into Res. Non-2xx statuses become *Error values mapped from
// the remote status; transport and decode failures are wrapped, never
// retried.
func Do[Res any](ctx context.Context, c *Client, req Endpoint) (Res, error) {
	var res Res

	resolved, err := c.compiler.Compile(req)
	if err != nil {
		return res, err
	}

	roundTrip := chainInterceptors(c.interceptors, c.transport.RoundTrip)
	resp, err := roundTrip(ctx, resolved)
	if err != nil {
		var rivetErr *Error
		if errors.As(err, &rivetErr) {
			return res, err
		}
		return res, Wrap(CodeTransport, err, err.Error())
	}

	if resp.Status < 200 || resp.Status > 299 {
		return res, FromHTTPStatus(resp.Status, resp.Body)
	}

	if _, ok := any(res).(Empty); ok {
		return res, nil
	}
	if !req.Describe().HasResponse {
		return res, nil
	}
	if err := c.codec.Unmarshal(resp.Body, &res); err != nil {
		return res, Wrap(CodeDecode, err, "decode response: "+err.Error())
	}
	return res, nil
}

// Call executes an endpoint that returns no body.
func Call(ctx context.Context, c *Client, req Endpoint) error {
	_, err := Do[Empty](ctx, c, req)
	return err
}
