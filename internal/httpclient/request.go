package httpclient

import (
	"encoding/json"
	"strings"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
	"github.com/unkn0wn-root/curlmonkey/internal/urlutil"
	"github.com/unkn0wn-root/curlmonkey/internal/vars"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	mimeJSON            = "application/json"
	mimeFormURLEncoded  = "application/x-www-form-urlencoded"
)

// BodyPayload is the resolved request body. Exactly one representation is
// populated, selected by Kind. For raw JSON bodies that parse, JSON holds
// the structured value; when parsing fails the substituted text stays in
// Raw and the body degrades to plain text.
type BodyPayload struct {
	Kind           model.BodyType
	Raw            string
	JSON           interface{}
	Form           map[string]string
	MultipartText  map[string]string
	MultipartFiles map[string]string
}

type BasicAuth struct {
	Username string
	Password string
}

// WireRequest is a request model with every variable resolved: final URL,
// flattened header map, resolved body, and credentials for the transport.
type WireRequest struct {
	Method    model.Method
	URL       string
	Headers   map[string]string
	Body      BodyPayload
	BasicAuth *BasicAuth
}

// Build combines a request model and an environment's variables into a
// wire-ready request. It is pure: multipart file paths are resolved here
// but only opened by the transport at send time.
func Build(req *model.Request, envVars map[string]string) WireRequest {
	wire := WireRequest{
		Method:  req.Method,
		URL:     buildURL(req, envVars),
		Headers: buildHeaders(req, envVars),
		Body:    buildBody(req, envVars),
	}

	if req.Auth.Type == model.AuthBasic && (req.Auth.Username != "" || req.Auth.Password != "") {
		wire.BasicAuth = &BasicAuth{
			Username: vars.Substitute(req.Auth.Username, envVars),
			Password: vars.Substitute(req.Auth.Password, envVars),
		}
	}
	return wire
}

func buildURL(req *model.Request, envVars map[string]string) string {
	url := strings.TrimSpace(vars.Substitute(req.URL, envVars))
	url = stripSurroundingQuotes(url)
	if url == "" {
		return ""
	}
	return urlutil.MergeQuery(url, req.QueryParams, func(s string) string {
		return vars.Substitute(s, envVars)
	})
}

// stripSurroundingQuotes removes one layer of matching quotes, defensive
// against URLs pasted together with their shell quoting.
func stripSurroundingQuotes(url string) string {
	if len(url) < 2 {
		return url
	}
	first := url[0]
	last := url[len(url)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return url[1 : len(url)-1]
	}
	return url
}

func buildHeaders(req *model.Request, envVars map[string]string) map[string]string {
	headers := make(map[string]string)
	for _, header := range req.Headers {
		if !header.Enabled || header.Key == "" {
			continue
		}
		key := vars.Substitute(header.Key, envVars)
		headers[key] = vars.Substitute(header.Value, envVars)
	}

	if req.Auth.Type == model.AuthBearer && req.Auth.BearerToken != "" {
		token := vars.Substitute(req.Auth.BearerToken, envVars)
		headers[headerAuthorization] = "Bearer " + token
	}
	return headers
}

func buildBody(req *model.Request, envVars map[string]string) BodyPayload {
	payload := BodyPayload{Kind: req.BodyType}

	switch req.BodyType {
	case model.BodyRaw:
		text := vars.Substitute(req.RawBody, envVars)
		payload.Raw = text
		if req.RawBodyType == model.RawJSON {
			var parsed interface{}
			decoder := json.NewDecoder(strings.NewReader(text))
			decoder.UseNumber()
			if err := decoder.Decode(&parsed); err == nil && !decoder.More() {
				payload.JSON = parsed
			}
		}
	case model.BodyForm:
		payload.Form = make(map[string]string)
		for _, field := range req.FormData {
			if !field.Enabled || field.Key == "" {
				continue
			}
			key := vars.Substitute(field.Key, envVars)
			payload.Form[key] = vars.Substitute(field.Value, envVars)
		}
	case model.BodyMultipart:
		payload.MultipartText = make(map[string]string)
		payload.MultipartFiles = make(map[string]string)
		for _, item := range req.MultipartData {
			if !item.Enabled || item.Key == "" {
				continue
			}
			key := vars.Substitute(item.Key, envVars)
			if item.Kind == model.MultipartFile {
				payload.MultipartFiles[key] = vars.Substitute(item.Value, envVars)
			} else {
				payload.MultipartText[key] = vars.Substitute(item.Value, envVars)
			}
		}
	}
	return payload
}
