package curl

import (
	"net/url"
	"strings"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
	"github.com/unkn0wn-root/curlmonkey/internal/urlutil"
)

// ExportOptions carries the settings the generated command may reference.
// Proxies are only emitted when IncludeProxy is set and a proxy matching the
// URL's scheme is configured.
type ExportOptions struct {
	IncludeProxy bool
	HTTPProxy    string
	HTTPSProxy   string
	SSLVerify    bool
}

// Generate serializes a request model into a runnable curl command. It is a
// total function: any model, however sparse, yields a command.
func Generate(req *model.Request, opts ExportOptions) string {
	parts := []string{"curl"}

	if req.Method != model.MethodGet {
		parts = append(parts, "-X", string(req.Method))
	}

	fullURL := urlutil.MergeQuery(req.URL, req.QueryParams, nil)
	parts = append(parts, shellQuote(fullURL))

	for _, header := range req.Headers {
		if header.Enabled && header.Key != "" {
			parts = append(parts, "-H", shellQuote(header.Key+": "+header.Value))
		}
	}

	parts = append(parts, authFlags(req.Auth)...)
	parts = append(parts, bodyFlags(req)...)

	if proxy := matchingProxy(fullURL, opts); proxy != "" {
		parts = append(parts, "--proxy", shellQuote(proxy))
	}
	if !opts.SSLVerify {
		parts = append(parts, "--insecure")
	}

	return strings.Join(parts, " ")
}

func authFlags(auth model.AuthConfig) []string {
	switch auth.Type {
	case model.AuthBasic:
		if auth.Username != "" || auth.Password != "" {
			return []string{"-u", shellQuote(auth.Username + ":" + auth.Password)}
		}
	case model.AuthBearer:
		if auth.BearerToken != "" {
			return []string{"-H", shellQuote(headerAuthorization + ": " + bearerPrefix + auth.BearerToken)}
		}
	}
	return nil
}

func bodyFlags(req *model.Request) []string {
	switch req.BodyType {
	case model.BodyRaw:
		if req.RawBody != "" {
			return []string{"--data-raw", shellQuote(req.RawBody)}
		}
	case model.BodyForm:
		var pairs []string
		for _, field := range req.FormData {
			if field.Enabled && field.Key != "" {
				pairs = append(pairs, field.Key+"="+field.Value)
			}
		}
		if len(pairs) > 0 {
			return []string{"--data", shellQuote(strings.Join(pairs, "&"))}
		}
	case model.BodyMultipart:
		var flags []string
		for _, item := range req.MultipartData {
			if !item.Enabled || item.Key == "" {
				continue
			}
			value := item.Value
			if item.Kind == model.MultipartFile {
				value = "@" + value
			}
			flags = append(flags, "-F", shellQuote(item.Key+"="+value))
		}
		return flags
	}
	return nil
}

func matchingProxy(fullURL string, opts ExportOptions) string {
	if !opts.IncludeProxy {
		return ""
	}
	parsed, err := url.Parse(fullURL)
	if err != nil {
		return ""
	}
	switch parsed.Scheme {
	case "https":
		return opts.HTTPSProxy
	case "http":
		return opts.HTTPProxy
	default:
		return ""
	}
}

// shellQuote wraps a value in single quotes, the POSIX-safe quoting for
// arbitrary content. Embedded single quotes use the '\'' dance. Simple
// tokens are left bare so generated commands stay readable.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if isShellSafe(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isShellSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case strings.ContainsRune("@%+=:,./-_", r):
		default:
			return false
		}
	}
	return true
}
