package ui

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/curlmonkey/internal/config"
	"github.com/unkn0wn-root/curlmonkey/internal/curl"
	"github.com/unkn0wn-root/curlmonkey/internal/errdef"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
	"github.com/unkn0wn-root/curlmonkey/internal/vars"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}
		var cmd tea.Cmd
		m.sendSpinner, cmd = m.sendSpinner.Update(msg)
		return m, cmd

	case responseMsg:
		m.sending = false
		m.lastResponse = msg.response
		m.prettyBody = false
		m.showHeaders = false
		m.renderResponse()
		m.refreshHistoryList()
		if msg.response.Failed() {
			m.setStatus(statusError, msg.response.Error)
		} else {
			m.setStatus(statusSuccess, responseStatusLine(msg.response))
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.setStatus(statusError, "clipboard: "+msg.err.Error())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.overlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ViewRequest):
		m.view = viewRequest
		return m, nil
	case key.Matches(msg, m.keys.ViewHistory):
		m.view = viewHistory
		m.refreshHistoryList()
		return m, nil
	case key.Matches(msg, m.keys.ViewCollections):
		m.view = viewCollections
		m.refreshCollectionLists()
		return m, nil
	case key.Matches(msg, m.keys.ViewEnvironments):
		m.view = viewEnvironments
		m.refreshEnvironmentList()
		return m, nil
	case key.Matches(msg, m.keys.ViewSettings):
		m.view = viewSettings
		return m, nil
	case key.Matches(msg, m.keys.Help):
		if m.view != viewRequest {
			m.overlay = overlayHelp
			return m, nil
		}
	}

	switch m.view {
	case viewRequest:
		return m.handleRequestKey(msg)
	case viewHistory:
		return m.handleHistoryKey(msg)
	case viewCollections:
		return m.handleCollectionsKey(msg)
	case viewEnvironments:
		return m.handleEnvironmentsKey(msg)
	case viewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m *Model) handleRequestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Send):
		if m.sending {
			return m, nil
		}
		m.sending = true
		m.setStatus(statusInfo, "sending...")
		req := m.collectRequest().Clone()
		return m, tea.Batch(m.sendSpinner.Tick, m.sendCmd(req))

	case key.Matches(msg, m.keys.CycleMethod):
		m.cycleMethod()
		return m, nil

	case key.Matches(msg, m.keys.CycleBody):
		m.cycleBodyType()
		return m, nil

	case key.Matches(msg, m.keys.CycleRawBody):
		if m.req.BodyType == model.BodyRaw {
			m.cycleRawBodyType()
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyResponse):
		if m.lastResponse == nil {
			return m, nil
		}
		text := m.lastResponse.BodyText
		if m.showHeaders {
			text = plainHeaders(m.lastResponse.Headers)
		}
		m.setStatus(statusSuccess, "response copied to clipboard")
		return m, copyToClipboard(text)

	case key.Matches(msg, m.keys.CycleAuth):
		m.cycleAuthType()
		if m.focusIdx > m.lastField() {
			m.focusIdx = fieldURL
			m.applyFieldFocus()
		}
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.collectRequest()
		m.focusNextField(false)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.collectRequest()
		m.focusNextField(true)
		return m, nil

	case key.Matches(msg, m.keys.ImportCurl):
		m.overlay = overlayImportCurl
		m.overlayArea.SetValue("")
		m.overlayArea.Focus()
		return m, nil

	case key.Matches(msg, m.keys.ExportCurl):
		command := curl.Generate(m.collectRequest(), curl.ExportOptions{
			IncludeProxy: m.settings.HTTPProxy != "" || m.settings.HTTPSProxy != "",
			HTTPProxy:    m.settings.HTTPProxy,
			HTTPSProxy:   m.settings.HTTPSProxy,
			SSLVerify:    m.settings.SSLVerify,
		})
		m.overlay = overlayExportCurl
		m.overlayArea.SetValue(command)
		m.overlayArea.Blur()
		m.setStatus(statusSuccess, "curl command copied to clipboard")
		return m, copyToClipboard(command)

	case key.Matches(msg, m.keys.Save):
		m.overlay = overlaySaveToCollection
		m.overlayInput.SetValue("")
		m.overlayInput.Placeholder = "collection name"
		m.overlayInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.PrettyJSON):
		if m.lastResponse != nil {
			m.prettyBody = !m.prettyBody
			m.renderResponse()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleView):
		if m.lastResponse != nil {
			m.showHeaders = !m.showHeaders
			m.renderResponse()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
		var cmd tea.Cmd
		m.respViewport, cmd = m.respViewport.Update(msg)
		return m, cmd
	}

	return m, m.updateFocusedField(msg)
}

func (m *Model) updateFocusedField(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focusIdx {
	case fieldURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case fieldParams:
		m.paramsArea, cmd = m.paramsArea.Update(msg)
	case fieldHeaders:
		m.headersArea, cmd = m.headersArea.Update(msg)
	case fieldBody:
		m.bodyArea, cmd = m.bodyArea.Update(msg)
	case fieldAuthPrimary:
		m.authPrimary, cmd = m.authPrimary.Update(msg)
	case fieldAuthSecondary:
		m.authSecondary, cmd = m.authSecondary.Update(msg)
	}
	return cmd
}

func (m *Model) sendCmd(req *model.Request) tea.Cmd {
	envVars := m.envStore.VariablesFor(m.environment)
	opts := m.httpOptions()
	client := m.client
	store := m.historyStore
	logger := m.logger
	return func() tea.Msg {
		resp := client.Execute(context.Background(), req, envVars, opts)
		if _, err := store.Record(req, resp); err != nil {
			logger.Printf("history record failed: %v", err)
		}
		return responseMsg{response: resp, request: req}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{text: text, err: clipboard.WriteAll(text)}
	}
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		if item, ok := m.historyList.SelectedItem().(historyItem); ok {
			if item.entry.Request == nil {
				m.setStatus(statusError, "entry has no saved request")
				return m, nil
			}
			m.loadRequest(item.entry.Request)
			m.view = viewRequest
			m.setStatus(statusInfo, "loaded "+item.entry.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.historyList.SelectedItem().(historyItem); ok {
			if _, err := m.historyStore.Delete(item.entry.ID); err != nil {
				m.setStatus(statusError, err.Error())
			} else {
				m.refreshHistoryList()
			}
		}
		return m, nil

	case msg.String() == "D":
		if err := m.historyStore.Clear(); err != nil {
			m.setStatus(statusError, err.Error())
		} else {
			m.refreshHistoryList()
			m.setStatus(statusInfo, "history cleared")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m *Model) handleCollectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.openColl != "" {
		return m.handleCollectionRequestsKey(msg)
	}

	switch {
	case msg.Type == tea.KeyEnter:
		if item, ok := m.collList.SelectedItem().(collectionItem); ok {
			m.openColl = item.coll.Name
			m.refreshCollectionLists()
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.overlay = overlayNewCollection
		m.overlayInput.SetValue("")
		m.overlayInput.Placeholder = "collection name"
		m.overlayInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.collList.SelectedItem().(collectionItem); ok {
			if err := m.collStore.Delete(item.coll.Name); err != nil {
				m.setStatus(statusError, err.Error())
			} else {
				m.refreshCollectionLists()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Export):
		m.overlay = overlayExportCollections
		m.overlayInput.SetValue("collections-export.json")
		m.overlayInput.Placeholder = "export path"
		m.overlayInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Import):
		m.overlay = overlayImportCollections
		m.overlayInput.SetValue("")
		m.overlayInput.Placeholder = "path to collections json"
		m.overlayInput.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.collList, cmd = m.collList.Update(msg)
	return m, cmd
}

func (m *Model) handleCollectionRequestsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.openColl = ""
		m.refreshCollectionLists()
		return m, nil

	case msg.Type == tea.KeyEnter:
		if item, ok := m.reqList.SelectedItem().(requestItem); ok && item.item.Request != nil {
			m.loadRequest(item.item.Request)
			m.view = viewRequest
			m.setStatus(statusInfo, "loaded "+item.item.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		idx := m.reqList.Index()
		if err := m.collStore.DeleteRequest(m.openColl, idx); err != nil {
			m.setStatus(statusError, err.Error())
		} else {
			m.refreshCollectionLists()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.reqList, cmd = m.reqList.Update(msg)
	return m, cmd
}

func (m *Model) handleEnvironmentsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		if item, ok := m.envList.SelectedItem().(environmentItem); ok {
			m.environment = item.env.Name
			m.refreshEnvironmentList()
			m.setStatus(statusInfo, "active environment: "+m.environment)
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.overlay = overlayNewEnvironment
		m.overlayInput.SetValue("")
		m.overlayInput.Placeholder = "environment name"
		m.overlayInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if item, ok := m.envList.SelectedItem().(environmentItem); ok {
			m.overlay = overlayEditEnvironment
			m.overlayEnvName = item.env.Name
			m.overlayArea.SetValue(formatEnvLines(item.env.Variables))
			m.overlayArea.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if item, ok := m.envList.SelectedItem().(environmentItem); ok {
			if err := m.envStore.Delete(item.env.Name); err != nil {
				m.setStatus(statusError, err.Error())
			} else {
				if m.environment == item.env.Name {
					m.environment = model.DefaultEnvironmentName
				}
				m.refreshEnvironmentList()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Import):
		if item, ok := m.envList.SelectedItem().(environmentItem); ok {
			m.overlay = overlayImportDotenv
			m.overlayEnvName = item.env.Name
			m.overlayInput.SetValue("")
			m.overlayInput.Placeholder = "path to .env file"
			m.overlayInput.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.envList, cmd = m.envList.Update(msg)
	return m, cmd
}

func (m *Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextField):
		m.settingsFocus = (m.settingsFocus + 1) % len(m.settingsInputs)
		m.applySettingsFocus()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.settingsFocus = (m.settingsFocus + len(m.settingsInputs) - 1) % len(m.settingsInputs)
		m.applySettingsFocus()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSSL):
		m.sslVerify = !m.sslVerify
		return m, nil

	case key.Matches(msg, m.keys.Accept):
		return m, m.saveSettings()
	}

	var cmd tea.Cmd
	m.settingsInputs[m.settingsFocus], cmd = m.settingsInputs[m.settingsFocus].Update(msg)
	return m, cmd
}

func (m *Model) saveSettings() tea.Cmd {
	updated, err := m.collectSettings()
	if err != nil {
		m.setStatus(statusError, err.Error())
		return nil
	}
	if err := config.SaveSettings(updated, m.settingsSave); err != nil {
		m.setStatus(statusError, err.Error())
		return nil
	}
	m.settings = updated
	m.setStatus(statusSuccess, "settings saved")
	return nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overlay == overlayHelp {
		m.overlay = overlayNone
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeOverlay()
		return m, nil

	case key.Matches(msg, m.keys.Paste):
		text, err := clipboard.ReadAll()
		if err != nil {
			m.setStatus(statusError, "clipboard: "+err.Error())
			return m, nil
		}
		if m.overlayUsesTextArea() {
			m.overlayArea.SetValue(text)
		} else {
			m.overlayInput.SetValue(strings.TrimSpace(text))
		}
		return m, nil

	case key.Matches(msg, m.keys.Accept),
		msg.Type == tea.KeyEnter && !m.overlayUsesTextArea():
		return m.acceptOverlay()
	}

	var cmd tea.Cmd
	if m.overlayUsesTextArea() {
		m.overlayArea, cmd = m.overlayArea.Update(msg)
	} else {
		m.overlayInput, cmd = m.overlayInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) overlayUsesTextArea() bool {
	switch m.overlay {
	case overlayImportCurl, overlayExportCurl, overlayEditEnvironment:
		return true
	}
	return false
}

func (m *Model) acceptOverlay() (tea.Model, tea.Cmd) {
	switch m.overlay {
	case overlayImportCurl:
		req, err := curl.Parse(m.overlayArea.Value())
		if err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.loadRequest(req)
		m.setStatus(statusSuccess, "curl command imported")

	case overlayExportCurl:
		// already on the clipboard, nothing to confirm

	case overlaySaveToCollection:
		name := strings.TrimSpace(m.overlayInput.Value())
		if name == "" {
			m.setStatus(statusError, "collection name is required")
			return m, nil
		}
		req := m.collectRequest()
		if err := m.collStore.Create(name); err != nil &&
			errdef.CodeOf(err) != errdef.CodeCollection {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		if err := m.collStore.AddRequest(name, "", req); err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.setStatus(statusSuccess, "request saved to "+name)

	case overlayNewCollection:
		name := strings.TrimSpace(m.overlayInput.Value())
		if err := m.collStore.Create(name); err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.refreshCollectionLists()

	case overlayNewEnvironment:
		name := strings.TrimSpace(m.overlayInput.Value())
		if name == "" {
			m.setStatus(statusError, "environment name is required")
			return m, nil
		}
		err := m.envStore.Put(model.Environment{Name: name, Variables: map[string]string{}})
		if err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.refreshEnvironmentList()

	case overlayEditEnvironment:
		env := model.Environment{
			Name:      m.overlayEnvName,
			Variables: parseEnvLines(m.overlayArea.Value()),
		}
		if err := m.envStore.Put(env); err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.refreshEnvironmentList()

	case overlayExportCollections:
		path := strings.TrimSpace(m.overlayInput.Value())
		if err := m.collStore.ExportFile(path); err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.setStatus(statusSuccess, "collections exported to "+path)

	case overlayImportCollections:
		path := strings.TrimSpace(m.overlayInput.Value())
		added, err := m.collStore.ImportFile(path)
		if err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.refreshCollectionLists()
		m.setStatus(statusSuccess, "imported "+strconv.Itoa(added)+" collections")

	case overlayImportDotenv:
		path := strings.TrimSpace(m.overlayInput.Value())
		values, err := vars.LoadDotEnv(path)
		if err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		env, _ := m.envStore.Get(m.overlayEnvName)
		if env.Variables == nil {
			env.Variables = map[string]string{}
		}
		env.Name = m.overlayEnvName
		for k, v := range values {
			env.Variables[k] = v
		}
		if err := m.envStore.Put(env); err != nil {
			m.setStatus(statusError, err.Error())
			return m, nil
		}
		m.refreshEnvironmentList()
		m.setStatus(statusSuccess, "imported "+strconv.Itoa(len(values))+" variables")
	}

	m.closeOverlay()
	return m, nil
}

func (m *Model) closeOverlay() {
	m.overlay = overlayNone
	m.overlayEnvName = ""
	m.overlayArea.Blur()
	m.overlayInput.Blur()
	if m.view == viewRequest {
		m.applyFieldFocus()
	}
}

func formatEnvLines(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(values[k])
	}
	return b.String()
}

func parseEnvLines(text string) map[string]string {
	values := map[string]string{}
	for _, p := range parseKVLines(text, "=") {
		if !p.Enabled || p.Key == "" {
			continue
		}
		values[p.Key] = p.Value
	}
	return values
}

func (m *Model) collectSettings() (config.Settings, error) {
	updated := m.settings
	timeout, err := strconv.Atoi(strings.TrimSpace(m.settingsInputs[settingTimeout].Value()))
	if err != nil || timeout <= 0 {
		return updated, errdef.New(errdef.CodeParse, "timeout must be a positive number of seconds")
	}
	updated.DefaultTimeout = timeout
	updated.HTTPProxy = strings.TrimSpace(m.settingsInputs[settingHTTPProxy].Value())
	updated.HTTPSProxy = strings.TrimSpace(m.settingsInputs[settingHTTPSProxy].Value())
	updated.DefaultEnvironment = strings.TrimSpace(m.settingsInputs[settingDefaultEnv].Value())
	if updated.DefaultEnvironment == "" {
		updated.DefaultEnvironment = model.DefaultEnvironmentName
	}
	updated.Theme = strings.TrimSpace(m.settingsInputs[settingTheme].Value())
	updated.SSLVerify = m.sslVerify
	return updated, nil
}

const (
	settingTimeout = iota
	settingHTTPProxy
	settingHTTPSProxy
	settingDefaultEnv
	settingTheme
	settingCount
)

func newSettingsInputs(s config.Settings) []textinput.Model {
	inputs := make([]textinput.Model, settingCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = ""
	}
	inputs[settingTimeout].SetValue(strconv.Itoa(s.DefaultTimeout))
	inputs[settingHTTPProxy].SetValue(s.HTTPProxy)
	inputs[settingHTTPSProxy].SetValue(s.HTTPSProxy)
	inputs[settingDefaultEnv].SetValue(s.DefaultEnvironment)
	inputs[settingTheme].SetValue(s.Theme)
	inputs[settingTimeout].Focus()
	return inputs
}

func (m *Model) applySettingsFocus() {
	for i := range m.settingsInputs {
		if i == m.settingsFocus {
			m.settingsInputs[i].Focus()
		} else {
			m.settingsInputs[i].Blur()
		}
	}
}
