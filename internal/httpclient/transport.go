package httpclient

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/http/httpproxy"
)

// Options carries the transport knobs forwarded from settings. Redirects
// are always followed; retries and cancellation are the caller's business.
type Options struct {
	Timeout    time.Duration
	SSLVerify  bool
	HTTPProxy  string
	HTTPSProxy string
}

func buildHTTPClient(opts Options) *http.Client {
	transport := &http.Transport{
		Proxy: proxyFunc(opts),
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !opts.SSLVerify,
		},
	}
	return &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}
}

// proxyFunc selects a proxy by request scheme from the configured settings,
// deferring to the process environment when none are set.
func proxyFunc(opts Options) func(*http.Request) (*url.URL, error) {
	if opts.HTTPProxy == "" && opts.HTTPSProxy == "" {
		return http.ProxyFromEnvironment
	}
	cfg := &httpproxy.Config{
		HTTPProxy:  opts.HTTPProxy,
		HTTPSProxy: opts.HTTPSProxy,
	}
	inner := cfg.ProxyFunc()
	return func(req *http.Request) (*url.URL, error) {
		return inner(req.URL)
	}
}
