package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/mattn/go-runewidth"

	"github.com/unkn0wn-root/curlmonkey/internal/model"
)

const listTitleWidth = 60

type historyItem struct {
	entry model.HistoryEntry
}

func (h historyItem) Title() string {
	return runewidth.Truncate(h.entry.Name, listTitleWidth, "…")
}

func (h historyItem) Description() string {
	status := "--"
	if h.entry.StatusCode != nil {
		status = fmt.Sprintf("%d", *h.entry.StatusCode)
	}
	return fmt.Sprintf("%s  %s", h.entry.Timestamp.Format("2006-01-02 15:04:05"), status)
}

func (h historyItem) FilterValue() string { return h.entry.Name }

type collectionItem struct {
	coll model.Collection
}

func (c collectionItem) Title() string {
	return runewidth.Truncate(c.coll.Name, listTitleWidth, "…")
}

func (c collectionItem) Description() string {
	return fmt.Sprintf("%d requests", len(c.coll.Items))
}

func (c collectionItem) FilterValue() string { return c.coll.Name }

type requestItem struct {
	item model.CollectionItem
}

func (r requestItem) Title() string {
	return runewidth.Truncate(r.item.Name, listTitleWidth, "…")
}

func (r requestItem) Description() string {
	if r.item.Request == nil {
		return ""
	}
	return runewidth.Truncate(
		string(r.item.Request.Method)+" "+r.item.Request.URL, listTitleWidth, "…",
	)
}

func (r requestItem) FilterValue() string { return r.item.Name }

type environmentItem struct {
	env    model.Environment
	active bool
}

func (e environmentItem) Title() string {
	name := e.env.Name
	if e.active {
		name += " (active)"
	}
	return runewidth.Truncate(name, listTitleWidth, "…")
}

func (e environmentItem) Description() string {
	return fmt.Sprintf("%d variables", len(e.env.Variables))
}

func (e environmentItem) FilterValue() string { return e.env.Name }

func (m *Model) refreshHistoryList() {
	entries := m.historyStore.Entries()
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{entry: e})
	}
	m.historyList.SetItems(items)
}

func (m *Model) refreshCollectionLists() {
	colls := m.collStore.Collections()
	items := make([]list.Item, 0, len(colls))
	for _, c := range colls {
		items = append(items, collectionItem{coll: c})
	}
	m.collList.SetItems(items)

	if m.openColl == "" {
		m.reqList.SetItems(nil)
		return
	}
	for _, c := range colls {
		if c.Name == m.openColl {
			reqItems := make([]list.Item, 0, len(c.Items))
			for _, it := range c.Items {
				reqItems = append(reqItems, requestItem{item: it})
			}
			m.reqList.SetItems(reqItems)
			m.reqList.Title = m.openColl
			return
		}
	}
	// collection disappeared underneath us
	m.openColl = ""
	m.reqList.SetItems(nil)
}

func (m *Model) refreshEnvironmentList() {
	names := m.envStore.Names()
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		env, ok := m.envStore.Get(name)
		if !ok {
			continue
		}
		items = append(items, environmentItem{env: env, active: name == m.environment})
	}
	m.envList.SetItems(items)
}
