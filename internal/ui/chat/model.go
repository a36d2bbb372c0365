// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatview/internal/i18n"
	"github.com/jeranaias/chatview/internal/model"
	"github.com/jeranaias/chatview/internal/ui/components"
	"github.com/jeranaias/chatview/internal/ui/markdown"
	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures a Model.
type Options struct {
	Theme      *styles.Theme
	Renderer   *markdown.Renderer
	Translator *i18n.Translator
	Clipboard  components.Clipboard
	Sounder    components.Sounder
	Schedule   components.Scheduler
	PulseFPS   int
	// PulseEasing shapes the pulse cycle; nil is linear.
	PulseEasing styles.EasingFunc
	OnEdit      EditHandler
}

// Model is the message list. It owns the conversation and one Item per
// message, keyed by position.
type Model struct {
	conv     *model.Conversation
	items    []*components.Item
	itemOpts components.ItemOptions
	selected int

	// UI Components
	viewport viewport.Model
	icon     components.PendingIcon
	loader   components.LoadingIndicator
	help     help.Model
	keyMap   KeyMap

	// Dimensions
	width  int
	height int
	ready  bool

	// offsets[i] is the first content line of item i.
	offsets []int

	onEdit EditHandler
	theme  *styles.Theme
	tr     *i18n.Translator
}

// New creates a message list showing conv.
func New(conv *model.Conversation, opts Options) *Model {
	if conv == nil {
		conv = model.NewConversation()
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme()
	}
	if opts.Renderer == nil {
		opts.Renderer = markdown.NewRenderer(opts.Theme, markdown.DefaultOptions(opts.Theme))
	}

	m := &Model{
		conv: conv,
		itemOpts: components.ItemOptions{
			Theme:       opts.Theme,
			Renderer:    opts.Renderer,
			Translator:  opts.Translator,
			Clipboard:   opts.Clipboard,
			Sounder:     opts.Sounder,
			Schedule:    opts.Schedule,
			Keys:        components.DefaultEditorKeyMap(opts.Translator),
			PulseFPS:    opts.PulseFPS,
			PulseEasing: opts.PulseEasing,
		},
		selected: -1,
		viewport: viewport.New(80, 20),
		icon:     components.NewPendingIcon(),
		loader:   components.NewLoadingIndicator(opts.Theme, opts.Translator),
		help:     help.New(),
		keyMap:   DefaultKeyMap(opts.Translator),
		width:    80,
		height:   24,
		onEdit:   opts.OnEdit,
		theme:    opts.Theme,
		tr:       opts.Translator,
	}
	m.viewport.KeyMap = viewport.KeyMap{}
	return m
}

// Init mounts the initial conversation.
func (m *Model) Init() tea.Cmd {
	msgs := m.conv.Messages()
	pending := m.conv.Pending()
	return tea.Batch(m.SetMessages(msgs), m.SetPending(pending))
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Conversation returns the owned conversation.
func (m *Model) Conversation() *model.Conversation {
	return m.conv
}

// Len returns the number of mounted items.
func (m *Model) Len() int {
	return len(m.items)
}

// Item returns the item at index i, or nil.
func (m *Model) Item(i int) *components.Item {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	return m.items[i]
}

// Selected returns the cursor position, or -1 when the list is empty.
func (m *Model) Selected() int {
	return m.selected
}

// Editing returns the item being edited, or nil.
func (m *Model) Editing() *components.Item {
	for _, it := range m.items {
		if it.IsEditing() {
			return it
		}
	}
	return nil
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// SetMessages reconciles the items with msgs. Existing positions receive the
// new message, new positions are mounted and initialised, surplus items are
// disposed, and the newest flag is recomputed.
func (m *Model) SetMessages(msgs []model.Message) tea.Cmd {
	follow := m.selected < 0 || m.selected == len(m.items)-1

	m.conv.SetMessages(msgs)
	msgs = m.conv.Messages()

	var cmds []tea.Cmd
	for i, msg := range msgs {
		if i < len(m.items) {
			m.items[i].SetIndex(i)
			cmds = append(cmds, m.items[i].SetMessage(msg))
			continue
		}
		it := components.NewItem(i, msg, m.itemOpts)
		it.SetWidth(m.width)
		m.items = append(m.items, it)
		cmds = append(cmds, it.Init())
	}
	for _, it := range m.items[len(msgs):] {
		it.Dispose()
	}
	m.items = m.items[:len(msgs)]

	cmds = append(cmds, m.syncLast())

	switch {
	case len(m.items) == 0:
		m.selected = -1
	case follow || m.selected >= len(m.items):
		m.selected = len(m.items) - 1
	}
	m.syncSelection()
	m.refresh(follow)
	return tea.Batch(cmds...)
}

// SetPending shows or hides the loading indicator.
func (m *Model) SetPending(pending bool) tea.Cmd {
	m.conv.SetPending(pending)
	var cmd tea.Cmd
	if pending {
		cmd = m.icon.Start()
	} else {
		m.icon.Stop()
	}
	m.refresh(m.atBottom())
	return cmd
}

// applyEdit writes a committed edit into the conversation and pushes it back
// into the item.
func (m *Model) applyEdit(msg components.EditMessageMsg) tea.Cmd {
	// items mirror the conversation one to one, so Replace bounds both.
	if err := m.conv.Replace(msg.Index, msg.Message); err != nil {
		log.Printf("chat: apply edit: %v", err)
		return nil
	}
	cmds := []tea.Cmd{m.items[msg.Index].SetMessage(msg.Message)}
	if m.onEdit != nil {
		cmds = append(cmds, m.onEdit(msg.Message, msg.Index))
	}
	return tea.Batch(cmds...)
}

func (m *Model) syncLast() tea.Cmd {
	var cmds []tea.Cmd
	for i, it := range m.items {
		cmds = append(cmds, it.SetLast(i == len(m.items)-1))
	}
	return tea.Batch(cmds...)
}

func (m *Model) syncSelection() {
	for i, it := range m.items {
		it.SetSelected(i == m.selected)
	}
}

func (m *Model) itemByID(id string) *components.Item {
	for _, it := range m.items {
		if it.ID() == id {
			return it
		}
	}
	return nil
}
