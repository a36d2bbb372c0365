// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatview/internal/config"
	"github.com/jeranaias/chatview/internal/i18n"
	"github.com/jeranaias/chatview/internal/model"
	"github.com/jeranaias/chatview/internal/transcript"
	"github.com/jeranaias/chatview/internal/ui/chat"
	"github.com/jeranaias/chatview/internal/ui/components"
	"github.com/jeranaias/chatview/internal/ui/markdown"
	"github.com/jeranaias/chatview/internal/ui/styles"
	"github.com/jeranaias/chatview/internal/watch"
)

// =============================================================================
// APP MODEL
// =============================================================================

// App is the top-level program model: the message list fed by an optional
// transcript watcher, rebuilt when an optional config watcher reports a
// change.
type App struct {
	list        *chat.Model
	transcripts *transcript.Watcher
	configs     *watch.Watcher[*config.Config]
	rebuild     func(transcript.File) *chat.Model

	width  int
	height int
	stale  bool
}

// NewApp creates the program model. watcher may be nil.
func NewApp(list *chat.Model, watcher *transcript.Watcher) *App {
	return &App{list: list, transcripts: watcher}
}

// WithConfigWatcher follows config reloads. rebuild makes a list for the
// reloaded global configuration; w may be nil when reloads are delivered some
// other way.
func (a *App) WithConfigWatcher(w *watch.Watcher[*config.Config], rebuild func(transcript.File) *chat.Model) *App {
	a.configs = w
	a.rebuild = rebuild
	return a
}

// List returns the message list.
func (a *App) List() *chat.Model {
	return a.list
}

// Init mounts the list and starts following the transcript and config.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.list.Init(), a.next(), a.nextConfig())
}

// Update turns transcript reloads into conversation updates, swaps the list
// after a config reload and hands everything else to the list.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case transcript.UpdatedMsg:
		log.Printf("transcript reloaded: %d messages, pending=%t",
			len(msg.Value.Messages), msg.Value.Pending)
		_, cmd := a.list.Update(chat.ConversationMsg{
			Messages: msg.Value.Messages,
			Pending:  msg.Value.Pending,
		})
		return a, tea.Batch(cmd, a.next())

	case watch.UpdatedMsg[*config.Config]:
		log.Printf("config reloaded from %s", msg.Path)
		a.stale = true
		return a, tea.Batch(a.applyConfig(), a.nextConfig())

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	}

	_, cmd := a.list.Update(msg)
	if a.stale {
		cmd = tea.Batch(cmd, a.applyConfig())
	}
	return a, cmd
}

// View renders the list.
func (a *App) View() string {
	return a.list.View()
}

// applyConfig replaces the list with one built for the current global
// configuration, carrying the conversation over. A draft being edited is
// never discarded: the swap waits until editing ends.
func (a *App) applyConfig() tea.Cmd {
	if !a.stale || a.rebuild == nil || a.list.Editing() != nil {
		return nil
	}
	a.stale = false

	conv := a.list.Conversation()
	list := a.rebuild(transcript.File{Messages: conv.Messages(), Pending: conv.Pending()})
	cmds := []tea.Cmd{list.Init()}
	if a.width > 0 {
		_, cmd := list.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		cmds = append(cmds, cmd)
	}
	a.list = list
	return tea.Batch(cmds...)
}

func (a *App) next() tea.Cmd {
	if a.transcripts == nil {
		return nil
	}
	return a.transcripts.Next()
}

func (a *App) nextConfig() tea.Cmd {
	if a.configs == nil {
		return nil
	}
	return a.configs.Next()
}

// =============================================================================
// WIRING
// =============================================================================

// newChatModel builds the message list for the global configuration. Nil
// sounder or clipboard disable those features.
func newChatModel(file transcript.File, sounder components.Sounder, clip components.Clipboard) *chat.Model {
	cfg := config.Global()
	theme := styles.NewThemeWithMode(cfg.UI.Theme)

	code := markdown.NewCodeBlockRenderer(theme, cfg.UI.CodeStyle)
	code.LineNumbers = cfg.UI.LineNumbers

	opts := markdown.DefaultOptions(theme)
	opts.Code = code
	opts.WordWrap = cfg.UI.WordWrap

	easing, ok := styles.EasingByName(cfg.UI.PulseEasing)
	if !ok {
		log.Printf("unknown pulse easing %q, using linear", cfg.UI.PulseEasing)
	}

	return chat.New(file.Conversation(), chat.Options{
		Theme:       theme,
		Renderer:    markdown.NewRenderer(theme, opts),
		Translator:  i18n.New(cfg.UI.Locale),
		Clipboard:   clip,
		Sounder:     sounder,
		PulseFPS:    cfg.UI.PulseFPS,
		PulseEasing: easing,
		OnEdit:      logEdit,
	})
}

// logEdit records committed edits. Transcripts are never written back.
func logEdit(msg model.Message, index int) tea.Cmd {
	log.Printf("message %d edited (%d bytes)", index, len(msg.Content))
	return nil
}
