// Package urlutil holds the query-merge rule shared by the request builder
// and the curl exporter: enabled editor parameters overwrite same-key
// parameters already present in the URL's query string, and the query is
// re-encoded afterwards.
package urlutil

import (
	"net/url"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

// MergeQuery merges the enabled, non-empty-key pairs into rawURL's query.
// transform is applied to each pair's value before merging (the builder
// passes variable substitution; the exporter passes nil). A URL that cannot
// be parsed is returned unchanged.
func MergeQuery(rawURL string, params []model.KeyValuePair, transform func(string) string) string {
	if transform == nil {
		transform = func(s string) string { return s }
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	values := parsed.Query()
	for _, param := range params {
		if !param.Enabled || param.Key == "" {
			continue
		}
		values[param.Key] = []string{transform(param.Value)}
	}
	parsed.RawQuery = values.Encode()
	return parsed.String()
}
