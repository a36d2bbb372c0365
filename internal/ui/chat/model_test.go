// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatview/internal/model"
	"github.com/jeranaias/chatview/internal/ui/components"
	"github.com/jeranaias/chatview/internal/ui/markdown"
	"github.com/jeranaias/chatview/internal/ui/styles"
)

type memClipboard struct {
	text string
}

func (c *memClipboard) Available() bool { return true }

func (c *memClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

type countingSounder struct {
	plays int
}

func (s *countingSounder) Play() error {
	s.plays++
	return nil
}

// immediate delivers scheduled messages without waiting.
func immediate(_ time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

type editCall struct {
	msg   model.Message
	index int
}

type harness struct {
	list  *Model
	clip  *memClipboard
	sound *countingSounder
	edits []editCall
}

func newHarness(t *testing.T, msgs ...model.Message) *harness {
	t.Helper()
	theme := styles.NewThemeWithMode("dark")
	opts := markdown.DefaultOptions(theme)
	opts.GlamourStyle = "notty"

	h := &harness{clip: &memClipboard{}, sound: &countingSounder{}}
	h.list = New(model.NewConversation(msgs...), Options{
		Theme:     theme,
		Renderer:  markdown.NewRenderer(theme, opts),
		Clipboard: h.clip,
		Sounder:   h.sound,
		Schedule:  immediate,
		PulseFPS:  10,
		OnEdit: func(msg model.Message, index int) tea.Cmd {
			h.edits = append(h.edits, editCall{msg: msg, index: index})
			return nil
		},
	})
	h.list.SetSize(80, 40)
	runSync(h.list.Init())
	return h
}

// runSync executes cmd and its batches, dropping the resulting messages.
// Timer commands are not fed back, so pulses do not loop.
func runSync(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch m := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, runSync(c)...)
		}
		return out
	default:
		return []tea.Msg{m}
	}
}

func (h *harness) send(msg tea.Msg) []tea.Msg {
	_, cmd := h.list.Update(msg)
	return runSync(cmd)
}

func (h *harness) key(k tea.KeyMsg) []tea.Msg {
	return h.send(k)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// =============================================================================
// RECONCILIATION
// =============================================================================

func TestModel_MountsItemsAndMarksNewest(t *testing.T) {
	h := newHarness(t,
		model.NewUserMessage("hi"),
		model.NewAssistantMessage("hello"),
	)

	require.Equal(t, 2, h.list.Len())
	assert.False(t, h.list.Item(0).IsLast())
	assert.True(t, h.list.Item(1).IsLast())
	assert.True(t, h.list.Item(1).Pulsing())
	assert.Equal(t, 1, h.list.Selected())
	assert.Equal(t, 2, h.sound.plays, "each mounted item plays once")
}

func TestModel_SetMessagesReconciles(t *testing.T) {
	h := newHarness(t,
		model.NewUserMessage("q1"),
		model.NewAssistantMessage("a1"),
	)
	first := h.list.Item(0)
	second := h.list.Item(1)
	plays := h.sound.plays

	runSync(h.list.SetMessages([]model.Message{
		model.NewUserMessage("q1"),
		model.NewAssistantMessage("a1"),
		model.NewUserMessage("q2"),
		model.NewAssistantMessage("a2"),
	}))

	require.Equal(t, 4, h.list.Len())
	assert.Same(t, first, h.list.Item(0), "existing positions keep their item")
	assert.Same(t, second, h.list.Item(1))
	assert.False(t, second.Pulsing(), "no longer newest")
	assert.True(t, h.list.Item(3).Pulsing())
	assert.Equal(t, plays+2, h.sound.plays, "only new items play")
	assert.Equal(t, 3, h.list.Selected(), "selection follows the newest message")
}

func TestModel_SetMessagesDisposesSurplus(t *testing.T) {
	h := newHarness(t,
		model.NewUserMessage("q1"),
		model.NewAssistantMessage("a1"),
	)
	dropped := h.list.Item(1)

	runSync(h.list.SetMessages([]model.Message{model.NewUserMessage("q1")}))

	assert.Equal(t, 1, h.list.Len())
	assert.True(t, dropped.Disposed())
	assert.False(t, dropped.Pulsing())
	assert.True(t, h.list.Item(0).IsLast())
	assert.Equal(t, 0, h.list.Selected())
}

func TestModel_StreamingContentPlaysSound(t *testing.T) {
	h := newHarness(t, model.NewAssistantMessage("par"))
	plays := h.sound.plays

	h.send(ConversationMsg{Messages: []model.Message{model.NewAssistantMessage("partial")}})
	h.send(ConversationMsg{Messages: []model.Message{model.NewAssistantMessage("partial")}})

	assert.Equal(t, plays+1, h.sound.plays)
}

// =============================================================================
// EDITING
// =============================================================================

func TestModel_EditRoundTrip(t *testing.T) {
	h := newHarness(t,
		model.NewUserMessage("hello"),
		model.NewAssistantMessage("hi there"),
	)

	h.key(tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, h.list.Selected())

	h.key(runes("e"))
	require.NotNil(t, h.list.Editing())

	// keys now belong to the editor, including q
	h.key(runes(" world q"))
	assert.Equal(t, "hello world q", h.list.Item(0).Draft())

	out := h.key(tea.KeyMsg{Type: tea.KeyEnter})
	edit, ok := find[components.EditMessageMsg](out)
	require.True(t, ok)
	assert.Nil(t, h.list.Editing())

	plays := h.sound.plays
	h.send(edit)

	assert.Equal(t, "hello world q", h.list.Conversation().At(0).Content)
	assert.Equal(t, "hello world q", h.list.Item(0).Message().Content)
	require.Len(t, h.edits, 1)
	assert.Equal(t, 0, h.edits[0].index)
	assert.Equal(t, "hello world q", h.edits[0].msg.Content)
	assert.Equal(t, plays+1, h.sound.plays)
}

func TestModel_AssistantEditKeyIgnored(t *testing.T) {
	h := newHarness(t, model.NewAssistantMessage("hi"))
	h.key(runes("e"))
	assert.Nil(t, h.list.Editing())
}

func TestModel_OutOfRangeEditIgnored(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	h := newHarness(t, model.NewUserMessage("a"))
	for _, index := range []int{5, -1} {
		h.send(components.EditMessageMsg{Message: model.NewUserMessage("b"), Index: index})
	}
	assert.Equal(t, "a", h.list.Conversation().At(0).Content)
	assert.Empty(t, h.edits)
	assert.Equal(t, 2, strings.Count(buf.String(), "chat: apply edit"))
	assert.Contains(t, buf.String(), model.ErrIndexOutOfRange.Error())
}

// =============================================================================
// KEYS AND TIMERS
// =============================================================================

func TestModel_QuitKeys(t *testing.T) {
	h := newHarness(t, model.NewUserMessage("a"))

	_, ok := find[tea.QuitMsg](h.key(runes("q")))
	assert.True(t, ok)

	h.key(runes("e"))
	require.NotNil(t, h.list.Editing())
	_, ok = find[tea.QuitMsg](h.key(runes("q")))
	assert.False(t, ok, "q types while editing")

	_, ok = find[tea.QuitMsg](h.key(tea.KeyMsg{Type: tea.KeyCtrlC}))
	assert.True(t, ok)
}

func TestModel_SelectionClamps(t *testing.T) {
	h := newHarness(t, model.NewUserMessage("a"), model.NewAssistantMessage("b"))

	h.key(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, h.list.Selected())
	h.key(runes("k"))
	h.key(runes("k"))
	assert.Equal(t, 0, h.list.Selected())
	h.key(runes("G"))
	assert.Equal(t, 1, h.list.Selected())
}

func TestModel_CopyRoutesFeedbackToItem(t *testing.T) {
	h := newHarness(t, model.NewUserMessage("a"), model.NewAssistantMessage("copy this"))

	out := h.key(runes("y"))
	copied, ok := find[components.CopiedMsg](out)
	require.True(t, ok)
	assert.Equal(t, "copy this", h.clip.text)

	expiry := h.send(copied)
	assert.True(t, h.list.Item(1).CopiedFeedback())
	assert.False(t, h.list.Item(0).CopiedFeedback())

	msg, ok := find[components.CopyFeedbackExpiredMsg](expiry)
	require.True(t, ok)
	h.send(msg)
	assert.False(t, h.list.Item(1).CopiedFeedback())
}

// =============================================================================
// VIEW
// =============================================================================

func TestModel_EmptyAndPending(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, ansi.Strip(h.list.View()), "No messages yet.")

	h.send(ConversationMsg{Pending: true})
	out := ansi.Strip(h.list.View())
	assert.Contains(t, out, "thinking...")
	assert.NotContains(t, out, "No messages yet.")

	h.send(ConversationMsg{Messages: []model.Message{model.NewAssistantMessage("done")}})
	assert.NotContains(t, ansi.Strip(h.list.View()), "thinking...")
}

func TestModel_ContentShowsBothRoles(t *testing.T) {
	h := newHarness(t, model.NewUserMessage("question"), model.NewAssistantMessage("answer"))
	out := ansi.Strip(h.list.Content())
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "question")
	assert.Contains(t, out, "answer")
}

func TestModel_SnapshotHidesHints(t *testing.T) {
	h := newHarness(t, model.NewUserMessage("question"), model.NewAssistantMessage("answer"))
	require.Equal(t, 1, h.list.Selected())

	out := ansi.Strip(h.list.Snapshot())
	assert.Contains(t, out, "answer")
	assert.NotContains(t, out, "y copy")
	assert.Equal(t, 1, h.list.Selected(), "selection survives")
}
