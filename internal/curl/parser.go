// Package curl converts between shell curl command lines and the request
// model: Parse imports a command produced by a shell history or a browser's
// "copy as cURL", Generate exports the model back to a runnable command.
package curl

import (
	"net/url"
	"strings"

	"github.com/unkn0wn-root/curlmonkey/internal/errdef"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
)

// Parse tokenizes a curl command and populates a request model. The only
// fatal condition is a command with no URL token; unknown flags, invalid
// methods, and malformed auth strings all degrade instead of failing.
func Parse(command string) (*model.Request, error) {
	command = strings.TrimSpace(command)
	command = strings.TrimPrefix(command, "curl ")
	command = strings.TrimPrefix(command, "curl\n")

	tokens, err := splitTokens(command)
	if err != nil {
		tokens = lenientSplit(command)
	}

	st := scanTokens(tokens)
	if st.url == "" {
		return nil, errdef.New(errdef.CodeParse, "no URL found in curl command")
	}
	return st.buildRequest(), nil
}

// body candidate slots, in assembly precedence order
type bodySlot int

const (
	slotDataRaw bodySlot = iota
	slotDataBinary
	slotData
	slotCount
)

type scanState struct {
	method    string
	url       string
	headers   []model.KeyValuePair
	bearer    string
	user      string
	pass      string
	hasUser   bool
	bodySlots [slotCount]string
	formItems []string
}

type optFn func(st *scanState, val string)

var valueOpts = map[string]optFn{
	"-X":            (*scanState).setMethod,
	"--request":     (*scanState).setMethod,
	"-H":            (*scanState).addHeader,
	"--header":      (*scanState).addHeader,
	"-d":            slotOpt(slotData),
	"--data":        slotOpt(slotData),
	"--data-raw":    slotOpt(slotDataRaw),
	"--data-binary": slotOpt(slotDataBinary),
	"-F":            (*scanState).addForm,
	"--form":        (*scanState).addForm,
	"-u":            (*scanState).setUser,
	"--user":        (*scanState).setUser,
}

func slotOpt(slot bodySlot) optFn {
	return func(st *scanState, val string) {
		// first occurrence wins per slot; precedence between slots is
		// applied at assembly time (raw > binary > data)
		if st.bodySlots[slot] == "" {
			st.bodySlots[slot] = val
		}
	}
}

func scanTokens(tokens []string) *scanState {
	st := &scanState{method: string(model.MethodGet)}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if fn, ok := valueOpts[tok]; ok {
			if i+1 < len(tokens) {
				fn(st, tokens[i+1])
				i++
			}
			continue
		}
		if strings.HasPrefix(tok, "--proxy") {
			if i+1 < len(tokens) {
				i++
			}
			continue
		}
		if strings.HasPrefix(tok, "-") {
			continue // unrecognized flag, argument not consumed
		}
		if st.url == "" {
			// taken as the URL whether or not it looks like one
			st.url = tok
		}
	}
	return st
}

func (st *scanState) setMethod(val string) {
	st.method = strings.ToUpper(val)
}

func (st *scanState) addHeader(val string) {
	name, value, ok := strings.Cut(val, ":")
	if !ok {
		return
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)

	if strings.EqualFold(name, headerAuthorization) &&
		len(value) >= len(bearerPrefix) &&
		strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		st.bearer = strings.TrimSpace(value[len(bearerPrefix):])
		return
	}
	st.headers = append(st.headers, model.KeyValuePair{Enabled: true, Key: name, Value: value})
}

func (st *scanState) addForm(val string) {
	st.formItems = append(st.formItems, val)
}

func (st *scanState) setUser(val string) {
	st.hasUser = true
	st.user, st.pass, _ = strings.Cut(val, ":")
}

func (st *scanState) buildRequest() *model.Request {
	req := model.NewRequest()
	req.Method = model.ParseMethod(st.method)
	req.URL = st.url
	req.QueryParams = queryPairs(st.url)
	req.Headers = st.headers

	switch {
	case st.bearer != "":
		req.Auth = model.AuthConfig{Type: model.AuthBearer, BearerToken: st.bearer}
	case st.hasUser:
		req.Auth = model.AuthConfig{Type: model.AuthBasic, Username: st.user, Password: st.pass}
	}

	st.applyBody(req)
	return req
}

func (st *scanState) bodyCandidate() string {
	for slot := slotDataRaw; slot < slotCount; slot++ {
		if st.bodySlots[slot] != "" {
			return st.bodySlots[slot]
		}
	}
	return ""
}

func (st *scanState) applyBody(req *model.Request) {
	if body := strings.TrimSpace(st.bodyCandidate()); body != "" {
		classifyBody(req, body)
		return
	}
	if len(st.formItems) == 0 {
		return
	}

	req.BodyType = model.BodyMultipart
	for _, item := range st.formItems {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		part := model.MultipartItem{Enabled: true, Key: key, Kind: model.MultipartText, Value: value}
		if strings.HasPrefix(value, "@") {
			part.Kind = model.MultipartFile
			part.Value = value[1:]
		}
		req.MultipartData = append(req.MultipartData, part)
	}
}

// classifyBody sniffs the collected data value: a leading { or [ means raw
// JSON, a value containing both = and & means urlencoded form data, and
// anything else is raw text.
func classifyBody(req *model.Request, body string) {
	if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
		req.BodyType = model.BodyRaw
		req.RawBodyType = model.RawJSON
		req.RawBody = body
		return
	}

	if strings.Contains(body, "=") && strings.Contains(body, "&") {
		req.BodyType = model.BodyForm
		for _, pair := range strings.Split(body, "&") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				continue
			}
			req.FormData = append(req.FormData, model.KeyValuePair{Enabled: true, Key: key, Value: value})
		}
		return
	}

	req.BodyType = model.BodyRaw
	req.RawBodyType = model.RawText
	req.RawBody = body
}

// queryPairs lifts the URL's existing query string into editable pairs,
// preserving order, repeated keys, and blank values.
func queryPairs(rawURL string) []model.KeyValuePair {
	_, query, ok := strings.Cut(rawURL, "?")
	if !ok || query == "" {
		return nil
	}
	if idx := strings.IndexByte(query, '#'); idx >= 0 {
		query = query[:idx]
	}

	var pairs []model.KeyValuePair
	for _, segment := range strings.Split(query, "&") {
		if segment == "" {
			continue
		}
		key, value, _ := strings.Cut(segment, "=")
		pairs = append(pairs, model.KeyValuePair{
			Enabled: true,
			Key:     unescapeQuery(key),
			Value:   unescapeQuery(value),
		})
	}
	return pairs
}

func unescapeQuery(s string) string {
	unescaped, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return unescaped
}
