// Package ui hosts the terminal interface: a request editor with a response
// pane plus list views for history, collections, and environments, and an
// overlay layer for curl import/export and the smaller prompts.
package ui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/curlmonkey/internal/collections"
	"github.com/unkn0wn-root/curlmonkey/internal/config"
	"github.com/unkn0wn-root/curlmonkey/internal/history"
	"github.com/unkn0wn-root/curlmonkey/internal/httpclient"
	"github.com/unkn0wn-root/curlmonkey/internal/model"
	"github.com/unkn0wn-root/curlmonkey/internal/theme"
	"github.com/unkn0wn-root/curlmonkey/internal/vars"
)

var _ tea.Model = (*Model)(nil)

type viewID int

const (
	viewRequest viewID = iota
	viewHistory
	viewCollections
	viewEnvironments
	viewSettings
)

type formField int

const (
	fieldURL formField = iota
	fieldParams
	fieldHeaders
	fieldBody
	fieldAuthPrimary
	fieldAuthSecondary
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayImportCurl
	overlayExportCurl
	overlaySaveToCollection
	overlayNewCollection
	overlayNewEnvironment
	overlayEditEnvironment
	overlayExportCollections
	overlayImportCollections
	overlayImportDotenv
	overlayHelp
)

type Config struct {
	Client         *httpclient.Client
	Theme          theme.Theme
	Settings       config.Settings
	SettingsHandle config.SettingsHandle
	History        *history.Store
	Collections    *collections.Store
	Environments   *vars.Store
	Environment    string
	Version        string
	Logger         *log.Logger
}

type Model struct {
	cfg  Config
	keys keyMap
	th   theme.Theme

	client       *httpclient.Client
	historyStore *history.Store
	collStore    *collections.Store
	envStore     *vars.Store
	settings     config.Settings
	settingsSave config.SettingsHandle
	environment  string
	logger       *log.Logger

	view viewID

	req           *model.Request
	focusIdx      formField
	urlInput      textinput.Model
	paramsArea    textarea.Model
	headersArea   textarea.Model
	bodyArea      textarea.Model
	authPrimary   textinput.Model
	authSecondary textinput.Model

	respViewport viewport.Model
	lastResponse *model.Response
	showHeaders  bool
	prettyBody   bool
	sending      bool
	sendSpinner  spinner.Model

	historyList list.Model
	collList    list.Model
	reqList     list.Model
	openColl    string
	envList     list.Model

	settingsInputs []textinput.Model
	settingsFocus  int
	sslVerify      bool

	overlay        overlayKind
	overlayArea    textarea.Model
	overlayInput   textinput.Model
	overlayEnvName string

	status statusMsg
	width  int
	height int
	ready  bool
}

func New(cfg Config) *Model {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}

	m := &Model{
		cfg:          cfg,
		keys:         defaultKeyMap(),
		th:           cfg.Theme,
		client:       cfg.Client,
		historyStore: cfg.History,
		collStore:    cfg.Collections,
		envStore:     cfg.Environments,
		settings:     cfg.Settings,
		settingsSave: cfg.SettingsHandle,
		environment:  cfg.Environment,
		logger:       logger,
		req:          model.NewRequest(),
	}
	if m.environment == "" {
		m.environment = cfg.Settings.DefaultEnvironment
	}

	m.urlInput = textinput.New()
	m.urlInput.Placeholder = "https://api.example.com/{{path}}"
	m.urlInput.Prompt = ""
	m.urlInput.Focus()

	m.paramsArea = newKVArea("key=value")
	m.headersArea = newKVArea("Content-Type: application/json")
	m.bodyArea = textarea.New()
	m.bodyArea.Placeholder = `{"hello": "{{name}}"}`
	m.bodyArea.ShowLineNumbers = false

	m.authPrimary = textinput.New()
	m.authPrimary.Prompt = ""
	m.authSecondary = textinput.New()
	m.authSecondary.Prompt = ""
	m.authSecondary.EchoMode = textinput.EchoPassword

	m.respViewport = viewport.New(0, 0)

	m.sendSpinner = spinner.New()
	m.sendSpinner.Spinner = spinner.MiniDot

	m.historyList = newPaneList("History", m.th)
	m.collList = newPaneList("Collections", m.th)
	m.reqList = newPaneList("Requests", m.th)
	m.envList = newPaneList("Environments", m.th)

	m.settingsInputs = newSettingsInputs(cfg.Settings)
	m.sslVerify = cfg.Settings.SSLVerify

	m.overlayArea = textarea.New()
	m.overlayArea.ShowLineNumbers = false
	m.overlayInput = textinput.New()
	m.overlayInput.Prompt = ""

	m.syncFormFromRequest()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func newKVArea(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	return ta
}

func newPaneList(title string, th theme.Theme) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = th.Selected
	delegate.Styles.SelectedDesc = th.Hint
	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = th.PaneTitle
	return l
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.status = statusMsg{text: text, level: level}
}

func (m *Model) httpOptions() httpclient.Options {
	return httpclient.Options{
		Timeout:    time.Duration(m.settings.DefaultTimeout) * time.Second,
		SSLVerify:  m.settings.SSLVerify,
		HTTPProxy:  m.settings.HTTPProxy,
		HTTPSProxy: m.settings.HTTPSProxy,
	}
}
