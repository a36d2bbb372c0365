// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatview/internal/config"
	"github.com/jeranaias/chatview/internal/model"
	"github.com/jeranaias/chatview/internal/transcript"
	"github.com/jeranaias/chatview/internal/ui/chat"
	"github.com/jeranaias/chatview/internal/watch"
)

func newTestApp(t *testing.T, msgs ...model.Message) *App {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Theme = "dark"
	config.SetGlobal(cfg)
	t.Cleanup(config.ResetGlobalForTesting)

	app := NewApp(newChatModel(transcript.File{Messages: msgs}, nil, nil), nil)
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return app
}

func TestApp_TranscriptUpdateReplacesConversation(t *testing.T) {
	app := newTestApp(t, model.NewUserMessage("hi"))
	require.Equal(t, 1, app.List().Len())

	app.Update(transcript.UpdatedMsg{Value: transcript.File{
		Messages: []model.Message{
			model.NewUserMessage("hi"),
			model.NewAssistantMessage("hello there"),
		},
		Pending: false,
	}})

	assert.Equal(t, 2, app.List().Len())
	assert.True(t, app.List().Item(1).IsLast())
	assert.Contains(t, ansi.Strip(app.View()), "hello there")
}

func TestApp_PendingFromTranscript(t *testing.T) {
	app := newTestApp(t, model.NewUserMessage("hi"))

	app.Update(transcript.UpdatedMsg{Value: transcript.File{
		Messages: []model.Message{model.NewUserMessage("hi")},
		Pending:  true,
	}})

	assert.True(t, app.List().Conversation().Pending())
	assert.Contains(t, ansi.Strip(app.View()), "thinking...")
}

func TestApp_ForwardsKeys(t *testing.T) {
	app := newTestApp(t, model.NewUserMessage("hi"))

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	assert.NotNil(t, app.List().Editing())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, app.List().Editing())
}

func TestApp_NoWatcher(t *testing.T) {
	app := newTestApp(t)
	assert.Nil(t, app.next())
	assert.Nil(t, app.nextConfig())
}

// reloadConfig installs a German configuration and reports it to app.
func reloadConfig(app *App) {
	cfg := config.Default()
	cfg.UI.Theme = "dark"
	cfg.UI.Locale = "de"
	config.SetGlobal(cfg)
	app.Update(watch.UpdatedMsg[*config.Config]{Path: "config.toml", Value: cfg})
}

func TestApp_ConfigReloadRebuildsList(t *testing.T) {
	app := newTestApp(t, model.NewUserMessage("hi"))
	app.WithConfigWatcher(nil, func(f transcript.File) *chat.Model {
		return newChatModel(f, nil, nil)
	})
	app.Update(transcript.UpdatedMsg{Value: transcript.File{
		Messages: []model.Message{model.NewUserMessage("hi")},
		Pending:  true,
	}})
	before := app.List()
	require.Contains(t, ansi.Strip(app.View()), "thinking...")

	reloadConfig(app)

	assert.NotSame(t, before, app.List())
	assert.Equal(t, 1, app.List().Len())
	assert.True(t, app.List().Conversation().Pending())
	view := ansi.Strip(app.View())
	assert.Contains(t, view, "hi")
	assert.Contains(t, view, "denke nach...")
}

func TestApp_ConfigReloadWaitsForEdit(t *testing.T) {
	app := newTestApp(t, model.NewUserMessage("hi"))
	app.WithConfigWatcher(nil, func(f transcript.File) *chat.Model {
		return newChatModel(f, nil, nil)
	})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.NotNil(t, app.List().Editing())
	before := app.List()

	reloadConfig(app)
	assert.Same(t, before, app.List(), "draft kept while editing")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotSame(t, before, app.List())
	assert.Nil(t, app.List().Editing())
}

func TestApp_ConfigReloadWithoutRebuildIsIgnored(t *testing.T) {
	app := newTestApp(t, model.NewUserMessage("hi"))
	before := app.List()
	reloadConfig(app)
	assert.Same(t, before, app.List())
}
