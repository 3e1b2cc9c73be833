package ui

import (
	"strings"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

// The params, headers, and form editors are plain text areas holding one pair
// per line. A leading '#' keeps the pair around but disables it, mirroring
// the enabled checkbox of the persisted schema.

func formatKVLines(pairs []model.KeyValuePair, sep string) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('\n')
		}
		if !p.Enabled {
			b.WriteByte('#')
		}
		b.WriteString(p.Key)
		b.WriteString(sep)
		b.WriteString(p.Value)
	}
	return b.String()
}

func parseKVLines(text, sep string) []model.KeyValuePair {
	var pairs []model.KeyValuePair
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		enabled := true
		if strings.HasPrefix(line, "#") {
			enabled = false
			line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			if line == "" {
				continue
			}
		}
		key, value, _ := strings.Cut(line, sep)
		pairs = append(pairs, model.KeyValuePair{
			Enabled: enabled,
			Key:     strings.TrimSpace(key),
			Value:   strings.TrimSpace(value),
		})
	}
	return pairs
}

// Multipart lines reuse the pair syntax with an optional @ prefix on the
// value marking a file part, the same shorthand curl's -F uses.
func formatMultipartLines(items []model.MultipartItem) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		if !item.Enabled {
			b.WriteByte('#')
		}
		b.WriteString(item.Key)
		b.WriteByte('=')
		if item.Kind == model.MultipartFile {
			b.WriteByte('@')
		}
		b.WriteString(item.Value)
	}
	return b.String()
}

func parseMultipartLines(text string) []model.MultipartItem {
	var items []model.MultipartItem
	for _, p := range parseKVLines(text, "=") {
		item := model.MultipartItem{
			Enabled: p.Enabled,
			Key:     p.Key,
			Kind:    model.MultipartText,
			Value:   p.Value,
		}
		if strings.HasPrefix(p.Value, "@") {
			item.Kind = model.MultipartFile
			item.Value = strings.TrimPrefix(p.Value, "@")
		}
		items = append(items, item)
	}
	return items
}

// syncFormFromRequest pushes m.req into the editor widgets. Called after
// loading a request from history, a collection, or a curl import.
func (m *Model) syncFormFromRequest() {
	m.urlInput.SetValue(m.req.URL)
	m.paramsArea.SetValue(formatKVLines(m.req.QueryParams, "="))
	m.headersArea.SetValue(formatKVLines(m.req.Headers, ": "))
	m.syncBodyArea()
	m.syncAuthInputs()
	m.applyFieldFocus()
}

func (m *Model) syncBodyArea() {
	switch m.req.BodyType {
	case model.BodyForm:
		m.bodyArea.SetValue(formatKVLines(m.req.FormData, "="))
	case model.BodyMultipart:
		m.bodyArea.SetValue(formatMultipartLines(m.req.MultipartData))
	default:
		m.bodyArea.SetValue(m.req.RawBody)
	}
}

func (m *Model) syncAuthInputs() {
	switch m.req.Auth.Type {
	case model.AuthBasic:
		m.authPrimary.SetValue(m.req.Auth.Username)
		m.authSecondary.SetValue(m.req.Auth.Password)
	case model.AuthBearer:
		m.authPrimary.SetValue(m.req.Auth.BearerToken)
		m.authSecondary.SetValue("")
	default:
		m.authPrimary.SetValue("")
		m.authSecondary.SetValue("")
	}
}

// collectRequest pulls the editor widgets back into m.req and returns it.
func (m *Model) collectRequest() *model.Request {
	m.req.URL = strings.TrimSpace(m.urlInput.Value())
	m.req.QueryParams = parseKVLines(m.paramsArea.Value(), "=")
	m.req.Headers = parseKVLines(m.headersArea.Value(), ": ")
	switch m.req.BodyType {
	case model.BodyForm:
		m.req.FormData = parseKVLines(m.bodyArea.Value(), "=")
	case model.BodyMultipart:
		m.req.MultipartData = parseMultipartLines(m.bodyArea.Value())
	default:
		m.req.RawBody = m.bodyArea.Value()
	}
	switch m.req.Auth.Type {
	case model.AuthBasic:
		m.req.Auth.Username = m.authPrimary.Value()
		m.req.Auth.Password = m.authSecondary.Value()
	case model.AuthBearer:
		m.req.Auth.BearerToken = m.authPrimary.Value()
	}
	m.req.Environment = m.environment
	return m.req
}

func (m *Model) cycleMethod() {
	for i, method := range model.Methods {
		if method == m.req.Method {
			m.req.Method = model.Methods[(i+1)%len(model.Methods)]
			return
		}
	}
	m.req.Method = model.MethodGet
}

var bodyTypes = []model.BodyType{
	model.BodyNone,
	model.BodyRaw,
	model.BodyForm,
	model.BodyMultipart,
}

func (m *Model) cycleBodyType() {
	m.collectRequest()
	for i, bt := range bodyTypes {
		if bt == m.req.BodyType {
			m.req.BodyType = bodyTypes[(i+1)%len(bodyTypes)]
			break
		}
	}
	m.syncBodyArea()
}

var rawBodyTypes = []model.RawBodyType{model.RawText, model.RawJSON, model.RawXML}

func (m *Model) cycleRawBodyType() {
	for i, rt := range rawBodyTypes {
		if rt == m.req.RawBodyType {
			m.req.RawBodyType = rawBodyTypes[(i+1)%len(rawBodyTypes)]
			return
		}
	}
	m.req.RawBodyType = model.RawText
}

var authTypes = []model.AuthType{model.AuthNone, model.AuthBasic, model.AuthBearer}

func (m *Model) cycleAuthType() {
	m.collectRequest()
	for i, at := range authTypes {
		if at == m.req.Auth.Type {
			m.req.Auth.Type = authTypes[(i+1)%len(authTypes)]
			break
		}
	}
	m.syncAuthInputs()
}

func (m *Model) authFieldCount() int {
	switch m.req.Auth.Type {
	case model.AuthBasic:
		return 2
	case model.AuthBearer:
		return 1
	default:
		return 0
	}
}

func (m *Model) lastField() formField {
	switch m.authFieldCount() {
	case 2:
		return fieldAuthSecondary
	case 1:
		return fieldAuthPrimary
	default:
		return fieldBody
	}
}

func (m *Model) focusNextField(backwards bool) {
	last := m.lastField()
	if backwards {
		if m.focusIdx == fieldURL {
			m.focusIdx = last
		} else {
			m.focusIdx--
		}
	} else {
		if m.focusIdx >= last {
			m.focusIdx = fieldURL
		} else {
			m.focusIdx++
		}
	}
	m.applyFieldFocus()
}

func (m *Model) applyFieldFocus() {
	m.urlInput.Blur()
	m.paramsArea.Blur()
	m.headersArea.Blur()
	m.bodyArea.Blur()
	m.authPrimary.Blur()
	m.authSecondary.Blur()

	switch m.focusIdx {
	case fieldURL:
		m.urlInput.Focus()
	case fieldParams:
		m.paramsArea.Focus()
	case fieldHeaders:
		m.headersArea.Focus()
	case fieldBody:
		m.bodyArea.Focus()
	case fieldAuthPrimary:
		m.authPrimary.Focus()
	case fieldAuthSecondary:
		m.authSecondary.Focus()
	}
}

// loadRequest replaces the editor contents with a copy of req.
func (m *Model) loadRequest(req *model.Request) {
	m.req = req.Clone()
	m.focusIdx = fieldURL
	m.syncFormFromRequest()
}
