package model

import (
	"net/url"
	"strings"
	"time"
)

type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

var Methods = []Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodPatch,
	MethodDelete,
	MethodHead,
	MethodOptions,
}

// ParseMethod maps arbitrary input to a known method, falling back to GET.
func ParseMethod(raw string) Method {
	candidate := Method(strings.ToUpper(strings.TrimSpace(raw)))
	for _, m := range Methods {
		if m == candidate {
			return m
		}
	}
	return MethodGet
}

type BodyType string

const (
	BodyNone      BodyType = "none"
	BodyRaw       BodyType = "raw"
	BodyForm      BodyType = "x-www-form-urlencoded"
	BodyMultipart BodyType = "multipart/form-data"
)

type RawBodyType string

const (
	RawText RawBodyType = "text"
	RawJSON RawBodyType = "json"
	RawXML  RawBodyType = "xml"
)

type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthBasic  AuthType = "basic"
	AuthBearer AuthType = "bearer"
)

type KeyValuePair struct {
	Enabled bool   `json:"enabled"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

type MultipartKind string

const (
	MultipartText MultipartKind = "text"
	MultipartFile MultipartKind = "file"
)

type MultipartItem struct {
	Enabled bool          `json:"enabled"`
	Key     string        `json:"key"`
	Kind    MultipartKind `json:"type"`
	Value   string        `json:"value"`
}

type AuthConfig struct {
	Type        AuthType `json:"auth_type"`
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	BearerToken string   `json:"bearer_token"`
}

// Request keeps every body representation around so switching the body type
// in the editor does not discard previously entered data. Only the variant
// selected by BodyType is used when the wire request is built.
type Request struct {
	Method        Method          `json:"method"`
	URL           string          `json:"url"`
	QueryParams   []KeyValuePair  `json:"query_params"`
	Headers       []KeyValuePair  `json:"headers"`
	BodyType      BodyType        `json:"body_type"`
	RawBodyType   RawBodyType     `json:"raw_body_type"`
	RawBody       string          `json:"raw_body"`
	FormData      []KeyValuePair  `json:"form_data"`
	MultipartData []MultipartItem `json:"multipart_data"`
	Auth          AuthConfig      `json:"auth"`
	Environment   string          `json:"environment"`
}

func NewRequest() *Request {
	return &Request{
		Method:      MethodGet,
		BodyType:    BodyNone,
		RawBodyType: RawText,
		Auth:        AuthConfig{Type: AuthNone},
		Environment: DefaultEnvironmentName,
	}
}

func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	clone := *r
	clone.QueryParams = append([]KeyValuePair(nil), r.QueryParams...)
	clone.Headers = append([]KeyValuePair(nil), r.Headers...)
	clone.FormData = append([]KeyValuePair(nil), r.FormData...)
	clone.MultipartData = append([]MultipartItem(nil), r.MultipartData...)
	return &clone
}

type Response struct {
	StatusCode int               `json:"status_code"`
	Reason     string            `json:"reason"`
	Headers    map[string]string `json:"headers"`
	BodyBytes  []byte            `json:"-"`
	BodyText   string            `json:"body_text"`
	ElapsedMs  float64           `json:"time_taken_ms"`
	Error      string            `json:"error,omitempty"`
}

func (r *Response) Failed() bool {
	return r.Error != ""
}

const DefaultEnvironmentName = "Default"

type Environment struct {
	Name      string            `json:"name"`
	Variables map[string]string `json:"variables"`
}

type HistoryEntry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Method     Method    `json:"method"`
	URL        string    `json:"url"`
	StatusCode *int      `json:"status_code"`
	Name       string    `json:"name"`
	Request    *Request  `json:"request,omitempty"`
}

// DeriveHistoryName builds a short label from the method and URL, used when
// an entry is recorded without an explicit name.
func DeriveHistoryName(method Method, rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return string(method) + " " + truncate(rawURL, 40)
	}
	return string(method) + " " + parsed.Host + truncate(parsed.Path, 30)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

type CollectionItem struct {
	Name    string   `json:"name"`
	Request *Request `json:"request"`
}

type Collection struct {
	Name  string           `json:"name"`
	Items []CollectionItem `json:"items"`
}
