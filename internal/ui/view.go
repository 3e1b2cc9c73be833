package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/curlmonkey/internal/highlight"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

const (
	statusBarHeight = 1
	tabBarHeight    = 1
)

var viewTabs = []struct {
	id    viewID
	label string
}{
	{viewRequest, "Request"},
	{viewHistory, "History"},
	{viewCollections, "Collections"},
	{viewEnvironments, "Environments"},
	{viewSettings, "Settings"},
}

func (m *Model) resize() {
	contentHeight := m.height - statusBarHeight - tabBarHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	formWidth, respWidth := m.splitWidths()

	m.urlInput.Width = formWidth - 14
	m.paramsArea.SetWidth(formWidth - 4)
	m.paramsArea.SetHeight(3)
	m.headersArea.SetWidth(formWidth - 4)
	m.headersArea.SetHeight(4)
	m.bodyArea.SetWidth(formWidth - 4)
	bodyHeight := contentHeight - 18
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.bodyArea.SetHeight(bodyHeight)
	m.authPrimary.Width = formWidth - 16
	m.authSecondary.Width = formWidth - 16

	m.respViewport.Width = respWidth - 2
	m.respViewport.Height = contentHeight - 4

	listHeight := contentHeight - 1
	m.historyList.SetSize(m.width-4, listHeight)
	m.collList.SetSize(m.width-4, listHeight)
	m.reqList.SetSize(m.width-4, listHeight)
	m.envList.SetSize(m.width-4, listHeight)

	m.overlayArea.SetWidth(m.overlayWidth() - 4)
	m.overlayArea.SetHeight(8)
	m.overlayInput.Width = m.overlayWidth() - 6

	if m.lastResponse != nil {
		m.renderResponse()
	}
}

func (m *Model) splitWidths() (form, resp int) {
	form = m.width / 2
	if form < 40 {
		form = 40
	}
	resp = m.width - form
	if resp < 20 {
		resp = 20
	}
	return form, resp
}

func (m *Model) overlayWidth() int {
	w := m.width - 10
	if w > 90 {
		w = 90
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var body string
	switch m.view {
	case viewRequest:
		body = m.viewRequestPane()
	case viewHistory:
		body = m.historyList.View()
	case viewCollections:
		if m.openColl != "" {
			body = m.reqList.View()
		} else {
			body = m.collList.View()
		}
	case viewEnvironments:
		body = m.envList.View()
	case viewSettings:
		body = m.viewSettingsPane()
	}

	screen := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabBar(),
		body,
		m.viewStatusBar(),
	)
	if m.overlay != overlayNone {
		return m.renderOverlay()
	}
	return screen
}

func (m *Model) viewTabBar() string {
	parts := make([]string, 0, len(viewTabs))
	for i, tab := range viewTabs {
		label := fmt.Sprintf("F%d %s", i+1, tab.label)
		if tab.id == m.view {
			parts = append(parts, m.th.TabActive.Render(label))
		} else {
			parts = append(parts, m.th.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) viewStatusBar() string {
	left := m.th.StatusBarKey.Render(" "+m.environment+" ") + " "
	switch m.status.level {
	case statusError:
		left += m.th.StatusError.Render(m.status.text)
	case statusSuccess:
		left += m.th.StatusSuccess.Render(m.status.text)
	default:
		left += m.status.text
	}
	if m.sending {
		left += " " + m.sendSpinner.View()
	}

	hint := m.th.Hint.Render("ctrl+s send · ctrl+u import curl · ctrl+x copy curl · ? help")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hint)
	if gap < 1 {
		return m.th.StatusBar.Width(m.width).Render(left)
	}
	return m.th.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + hint)
}

func (m *Model) viewRequestPane() string {
	formWidth, respWidth := m.splitWidths()
	form := m.viewForm(formWidth)
	resp := m.viewResponse(respWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, form, resp)
}

func (m *Model) viewForm(width int) string {
	var b strings.Builder

	badge := m.th.MethodBadge.Render(string(m.req.Method))
	b.WriteString(badge + " " + m.fieldLabel(fieldURL, "URL"))
	b.WriteString("\n" + m.urlInput.View() + "\n\n")

	b.WriteString(m.fieldLabel(fieldParams, "Query Params") + "\n")
	b.WriteString(m.paramsArea.View() + "\n\n")

	b.WriteString(m.fieldLabel(fieldHeaders, "Headers") + "\n")
	b.WriteString(m.headersArea.View() + "\n\n")

	b.WriteString(m.fieldLabel(fieldBody, "Body") + " " +
		m.th.Hint.Render("["+string(m.req.BodyType)+bodySubLabel(m.req)+"]") + "\n")
	b.WriteString(m.bodyArea.View() + "\n\n")

	b.WriteString(m.viewAuth())

	style := m.th.PaneBorder
	if m.view == viewRequest {
		style = m.th.PaneFocused
	}
	return style.Width(width - 2).Render(b.String())
}

func bodySubLabel(req *model.Request) string {
	if req.BodyType == model.BodyRaw {
		return "/" + string(req.RawBodyType)
	}
	return ""
}

func (m *Model) viewAuth() string {
	label := m.th.Label.Render("Auth") + " " +
		m.th.Hint.Render("["+string(m.req.Auth.Type)+"]")
	switch m.req.Auth.Type {
	case model.AuthBasic:
		return label + "\n" +
			m.fieldLabel(fieldAuthPrimary, "user") + " " + m.authPrimary.View() + "\n" +
			m.fieldLabel(fieldAuthSecondary, "pass") + " " + m.authSecondary.View()
	case model.AuthBearer:
		return label + "\n" +
			m.fieldLabel(fieldAuthPrimary, "token") + " " + m.authPrimary.View()
	default:
		return label
	}
}

func (m *Model) fieldLabel(field formField, text string) string {
	if m.focusIdx == field {
		return m.th.Selected.Render(text)
	}
	return m.th.Label.Render(text)
}

func (m *Model) viewResponse(width int) string {
	title := m.th.PaneTitle.Render("Response")
	var header string
	switch {
	case m.sending:
		header = m.sendSpinner.View() + " sending..."
	case m.lastResponse == nil:
		header = m.th.Hint.Render("no response yet")
	case m.lastResponse.Failed():
		header = m.th.StatusError.Render("error")
	default:
		header = m.th.StatusStyle(m.lastResponse.StatusCode).Render(
			responseStatusLine(m.lastResponse),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, header, m.respViewport.View())
	return m.th.PaneBorder.Width(width - 2).Render(content)
}

func responseStatusLine(resp *model.Response) string {
	return fmt.Sprintf(
		"%d %s · %.0f ms · %s",
		resp.StatusCode, resp.Reason, resp.ElapsedMs, formatSize(len(resp.BodyBytes)),
	)
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func plainHeaders(headers map[string]string) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k + ": " + headers[k])
	}
	return b.String()
}

// renderResponse fills the viewport from the last response, honouring the
// headers toggle and the pretty-print toggle.
func (m *Model) renderResponse() {
	resp := m.lastResponse
	if resp == nil {
		m.respViewport.SetContent("")
		return
	}
	if resp.Failed() {
		m.respViewport.SetContent(m.th.StatusError.Render(resp.Error))
		return
	}

	if m.showHeaders {
		m.respViewport.SetContent(renderHeaders(resp.Headers, m.th.Label, m.th.Value))
		m.respViewport.GotoTop()
		return
	}

	body := resp.BodyText
	if m.prettyBody {
		if pretty, ok := highlight.PrettyJSON(body); ok {
			body = pretty
		}
	}
	m.respViewport.SetContent(highlight.Body(body, resp.Headers["Content-Type"]))
	m.respViewport.GotoTop()
}

func renderHeaders(headers map[string]string, keyStyle, valStyle lipgloss.Style) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(keyStyle.Render(k+":") + " " + valStyle.Render(headers[k]))
	}
	return b.String()
}

func (m *Model) viewSettingsPane() string {
	labels := []string{
		"Timeout (seconds)",
		"HTTP proxy",
		"HTTPS proxy",
		"Default environment",
		"Theme",
	}
	var b strings.Builder
	b.WriteString(m.th.PaneTitle.Render("Settings") + "\n\n")
	for i, label := range labels {
		style := m.th.Label
		if i == m.settingsFocus {
			style = m.th.Selected
		}
		b.WriteString(style.Render(label) + "\n")
		b.WriteString(m.settingsInputs[i].View() + "\n\n")
	}
	ssl := "off"
	if m.sslVerify {
		ssl = "on"
	}
	b.WriteString(m.th.Label.Render("SSL verification") + " " + m.th.Value.Render(ssl) + "\n\n")
	b.WriteString(m.th.Hint.Render("tab next · ctrl+t toggle ssl · ctrl+d save"))
	return m.th.PaneBorder.Width(m.width - 4).Render(b.String())
}

func (m *Model) renderOverlay() string {
	box := m.th.Overlay.Width(m.overlayWidth()).Render(m.overlayContent())
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func (m *Model) overlayContent() string {
	title := func(s string) string { return m.th.OverlayTitle.Render(s) + "\n" }
	hint := func(s string) string { return "\n" + m.th.Hint.Render(s) }

	switch m.overlay {
	case overlayImportCurl:
		return title("Import cURL command") + m.overlayArea.View() +
			hint("ctrl+v paste · ctrl+d import · esc cancel")
	case overlayExportCurl:
		return title("cURL command (copied to clipboard)") + m.overlayArea.View() +
			hint("esc close")
	case overlaySaveToCollection:
		return title("Save request to collection") + m.overlayInput.View() +
			hint("enter save · esc cancel")
	case overlayNewCollection:
		return title("New collection") + m.overlayInput.View() +
			hint("enter create · esc cancel")
	case overlayNewEnvironment:
		return title("New environment") + m.overlayInput.View() +
			hint("enter create · esc cancel")
	case overlayEditEnvironment:
		return title("Edit environment: "+m.overlayEnvName) + m.overlayArea.View() +
			hint("one VAR=value per line · ctrl+d save · esc cancel")
	case overlayExportCollections:
		return title("Export collections to file") + m.overlayInput.View() +
			hint("enter export · esc cancel")
	case overlayImportCollections:
		return title("Import collections from file") + m.overlayInput.View() +
			hint("enter import · esc cancel")
	case overlayImportDotenv:
		return title("Import .env into "+m.overlayEnvName) + m.overlayInput.View() +
			hint("enter import · esc cancel")
	case overlayHelp:
		return title("Keys") + helpText() + hint("any key closes")
	}
	return ""
}

func helpText() string {
	return strings.Join([]string{
		"F1-F5        switch view",
		"ctrl+s       send request",
		"tab          next field",
		"ctrl+j       cycle method",
		"ctrl+b       cycle body type",
		"ctrl+n       cycle raw body type",
		"ctrl+a       cycle auth type",
		"ctrl+y       copy response to clipboard",
		"ctrl+u       import curl command",
		"ctrl+x       copy request as curl",
		"ctrl+w       save request to collection",
		"ctrl+p       pretty-print json response",
		"ctrl+r       toggle response body/headers",
		"enter        open / load selected item",
		"n e d x i    new edit delete export import",
		"ctrl+c       quit",
	}, "\n")
}
