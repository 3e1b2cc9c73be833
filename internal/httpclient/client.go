// Package httpclient turns request models into wire requests and executes
// them synchronously over net/http. Failures never surface as Go errors to
// the UI; they come back inside the response model's error field the same
// way a completed request comes back with its status.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

type Client struct {
	logger  *log.Logger
	factory func(Options) *http.Client
}

func NewClient(logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{logger: logger, factory: buildHTTPClient}
}

// SetFactory overrides how http.Client instances are created. Tests use it
// to point the client at an httptest server transport; nil restores the
// default.
func (c *Client) SetFactory(factory func(Options) *http.Client) {
	if factory == nil {
		factory = buildHTTPClient
	}
	c.factory = factory
}

// Execute sends the request with the given environment variables applied.
// The returned response always carries the elapsed time; when the request
// did not complete, Error is set and the remaining fields are zeroed.
func (c *Client) Execute(
	ctx context.Context,
	req *model.Request,
	envVars map[string]string,
	opts Options,
) *model.Response {
	start := time.Now()
	resp := &model.Response{Headers: map[string]string{}}
	fail := func(format string, args ...interface{}) *model.Response {
		resp.Error = fmt.Sprintf(format, args...)
		resp.ElapsedMs = float64(time.Since(start).Microseconds()) / 1000
		c.logger.Printf("request failed: %s", resp.Error)
		return resp
	}

	wire := Build(req, envVars)
	if wire.URL == "" {
		return fail("URL is required")
	}

	bodyReader, contentType, err := c.encodeBody(wire.Body)
	if err != nil {
		return fail("could not encode request body: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(wire.Method), wire.URL, bodyReader)
	if err != nil {
		return fail("invalid request: %v", err)
	}

	for key, value := range wire.Headers {
		httpReq.Header.Set(key, value)
	}
	if contentType != "" && httpReq.Header.Get(headerContentType) == "" {
		httpReq.Header.Set(headerContentType, contentType)
	}
	if wire.BasicAuth != nil {
		httpReq.SetBasicAuth(wire.BasicAuth.Username, wire.BasicAuth.Password)
	}

	c.logger.Printf("sending %s request to %s", wire.Method, wire.URL)

	httpResp, err := c.factory(opts).Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return fail("request timed out after %s", opts.Timeout)
		}
		return fail("%v", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fail("could not read response body: %v", err)
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Reason = reasonPhrase(httpResp)
	for key := range httpResp.Header {
		resp.Headers[key] = httpResp.Header.Get(key)
	}
	resp.BodyBytes = body
	resp.BodyText = string(body)
	resp.ElapsedMs = float64(time.Since(start).Microseconds()) / 1000

	c.logger.Printf("response: %d (%.2fms)", resp.StatusCode, resp.ElapsedMs)
	return resp
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	for err != nil {
		if t, ok := err.(timeout); ok && t.Timeout() {
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

func reasonPhrase(resp *http.Response) string {
	text := http.StatusText(resp.StatusCode)
	if text == "" {
		return resp.Status
	}
	return text
}
