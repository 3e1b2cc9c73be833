package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Send         key.Binding
	NextField    key.Binding
	PrevField    key.Binding
	CycleMethod  key.Binding
	CycleBody    key.Binding
	CycleRawBody key.Binding
	CycleAuth    key.Binding
	CopyResponse key.Binding
	ImportCurl   key.Binding
	ExportCurl   key.Binding
	Save         key.Binding
	PrettyJSON   key.Binding
	ToggleView   key.Binding

	ViewRequest      key.Binding
	ViewHistory      key.Binding
	ViewCollections  key.Binding
	ViewEnvironments key.Binding
	ViewSettings     key.Binding

	ToggleSSL key.Binding

	Accept key.Binding
	Cancel key.Binding
	Paste  key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Export key.Binding
	Import key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send:         key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
		NextField:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		CycleMethod:  key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "method")),
		CycleBody:    key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "body type")),
		CycleRawBody: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "raw body type")),
		CycleAuth:    key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "auth type")),
		CopyResponse: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy response")),
		ImportCurl:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "import curl")),
		ExportCurl:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "copy as curl")),
		Save:         key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "save to collection")),
		PrettyJSON:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pretty json")),
		ToggleView:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "body/headers")),

		ViewRequest:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "request")),
		ViewHistory:      key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "history")),
		ViewCollections:  key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "collections")),
		ViewEnvironments: key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "environments")),
		ViewSettings:     key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "settings")),

		ToggleSSL: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "ssl verify")),

		Accept: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "confirm")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Paste:  key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Export: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
