// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/chatview/internal/model"
	"github.com/jeranaias/chatview/internal/ui/markdown"
	"github.com/jeranaias/chatview/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

type scheduled struct {
	d   time.Duration
	msg tea.Msg
}

type fakeScheduler struct {
	calls []scheduled
}

func (f *fakeScheduler) schedule(d time.Duration, msg tea.Msg) tea.Cmd {
	f.calls = append(f.calls, scheduled{d: d, msg: msg})
	return func() tea.Msg { return msg }
}

func (f *fakeScheduler) last() scheduled {
	return f.calls[len(f.calls)-1]
}

type fakeClipboard struct {
	available bool
	err       error
	writes    []string
}

func (f *fakeClipboard) Available() bool { return f.available }

func (f *fakeClipboard) WriteText(text string) error {
	f.writes = append(f.writes, text)
	return f.err
}

type fakeSounder struct {
	plays int
}

func (f *fakeSounder) Play() error {
	f.plays++
	return nil
}

type fixture struct {
	item  *Item
	sched *fakeScheduler
	clip  *fakeClipboard
	sound *fakeSounder
}

func newFixture(t *testing.T, index int, msg model.Message) *fixture {
	t.Helper()
	theme := styles.NewThemeWithMode("dark")
	f := &fixture{
		sched: &fakeScheduler{},
		clip:  &fakeClipboard{available: true},
		sound: &fakeSounder{},
	}
	opts := markdown.DefaultOptions(theme)
	opts.GlamourStyle = "notty"
	f.item = NewItem(index, msg, ItemOptions{
		Theme:     theme,
		Renderer:  markdown.NewRenderer(theme, opts),
		Clipboard: f.clip,
		Sounder:   f.sound,
		Schedule:  f.sched.schedule,
		PulseFPS:  10,
	})
	f.item.SetWidth(60)
	return f
}

// drain runs cmd and every command it batches, returning the messages
// produced in order.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, drain(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func editMsgs(msgs []tea.Msg) []EditMessageMsg {
	var out []EditMessageMsg
	for _, m := range msgs {
		if e, ok := m.(EditMessageMsg); ok {
			out = append(out, e)
		}
	}
	return out
}

func typeText(it *Item, s string) {
	it.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyAltEnter = tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	keyCtrlJ    = tea.KeyMsg{Type: tea.KeyCtrlJ}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
)

// =============================================================================
// EDITING
// =============================================================================

func TestItem_InitialState(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("hello"))
	assert.Equal(t, Viewing, f.item.State())
	assert.False(t, f.item.Composing())
	assert.False(t, f.item.CopiedFeedback())
	assert.NotEmpty(t, f.item.ID())
}

func TestItem_EditAndCommitChangedDraft(t *testing.T) {
	f := newFixture(t, 3, model.NewUserMessage("hello"))

	f.item.StartEditing()
	require.Equal(t, Editing, f.item.State())
	assert.Equal(t, "hello", f.item.Draft())

	typeText(f.item, " world")
	assert.Equal(t, "hello world", f.item.Draft())

	msgs := drain(f.item.Update(keyEnter))
	edits := editMsgs(msgs)
	require.Len(t, edits, 1)
	assert.Equal(t, 3, edits[0].Index)
	assert.Equal(t, model.RoleUser, edits[0].Message.Role)
	assert.Equal(t, "hello world", edits[0].Message.Content)
	assert.Equal(t, Viewing, f.item.State())

	// The item does not change its own content; the parent pushes it back.
	assert.Equal(t, "hello", f.item.Message().Content)
}

func TestItem_CommitUnchangedEmitsNothing(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("hello"))
	f.item.StartEditing()

	assert.Nil(t, f.item.Update(keyEnter))
	assert.Equal(t, Viewing, f.item.State())
}

func TestItem_SaveKeyCommits(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("a"))
	f.item.StartEditing()
	typeText(f.item, "b")

	edits := editMsgs(drain(f.item.Update(keyCtrlS)))
	require.Len(t, edits, 1)
	assert.Equal(t, "ab", edits[0].Message.Content)
}

func TestItem_CancelRestoresAndEmitsNothing(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("hello"))
	f.item.StartEditing()
	typeText(f.item, " there")

	assert.Nil(t, f.item.Update(keyEsc))
	assert.Equal(t, Viewing, f.item.State())
	assert.Equal(t, "hello", f.item.Draft())
	assert.Equal(t, "hello", f.item.Message().Content)
}

func TestItem_BlankDraftCannotCommit(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("hello"))
	f.item.StartEditing()
	f.item.editor.SetValue("  \n\t ")

	assert.False(t, f.item.CanCommit())
	assert.Nil(t, f.item.Update(keyEnter))
	assert.Nil(t, f.item.Update(keyCtrlS))
	assert.Equal(t, Editing, f.item.State())
	assert.Contains(t, ansi.Strip(f.item.View()), "Save & Submit")
}

func TestItem_AssistantIsNotEditable(t *testing.T) {
	f := newFixture(t, 0, model.NewAssistantMessage("hi"))
	assert.Nil(t, f.item.StartEditing())
	assert.Equal(t, Viewing, f.item.State())
}

func TestItem_DraftReinitialisedOnEachEntry(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("one"))
	f.item.StartEditing()
	typeText(f.item, "!!")
	f.item.Update(keyEsc)

	f.item.SetMessage(model.NewUserMessage("two"))
	f.item.StartEditing()
	assert.Equal(t, "two", f.item.Draft())
}

func TestItem_NewlineKeysDoNotCommit(t *testing.T) {
	for _, k := range []tea.KeyMsg{keyAltEnter, keyCtrlJ} {
		t.Run(k.String(), func(t *testing.T) {
			f := newFixture(t, 0, model.NewUserMessage("line"))
			f.item.StartEditing()

			assert.Empty(t, editMsgs(drain(f.item.Update(k))))
			assert.Equal(t, Editing, f.item.State())
			assert.Equal(t, "line\n", f.item.Draft())
			assert.Equal(t, 2, f.item.editor.Height())
		})
	}
}

func TestItem_CompositionSuppressesCommit(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("ni"))
	f.item.StartEditing()
	typeText(f.item, "hao")

	f.item.Update(CompositionStartMsg{})
	assert.True(t, f.item.Composing())
	assert.Nil(t, f.item.Update(keyEnter))
	assert.Equal(t, Editing, f.item.State())

	f.item.Update(CompositionEndMsg{})
	assert.False(t, f.item.Composing())
	edits := editMsgs(drain(f.item.Update(keyEnter)))
	require.Len(t, edits, 1)
	assert.Equal(t, "nihao", edits[0].Message.Content)
}

func TestItem_EnterCommitsMultilineDraft(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))
	f.item.StartEditing()

	f.item.Update(keyCtrlJ)
	typeText(f.item, "y")
	require.Equal(t, "x\ny", f.item.Draft())

	edits := editMsgs(drain(f.item.Update(keyEnter)))
	require.Len(t, edits, 1)
	assert.Equal(t, "x\ny", edits[0].Message.Content)
	assert.Equal(t, Viewing, f.item.State())
}

func TestItem_FocusCycleAndButtons(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))
	f.item.StartEditing()
	typeText(f.item, "y")

	f.item.Update(keyTab)
	assert.Equal(t, FocusSave, f.item.editor.Focus())
	f.item.Update(keyTab)
	assert.Equal(t, FocusCancel, f.item.editor.Focus())

	// enter on Cancel presses it
	assert.Nil(t, f.item.Update(keyEnter))
	assert.Equal(t, Viewing, f.item.State())
	assert.Equal(t, "x", f.item.Draft())

	f.item.StartEditing()
	typeText(f.item, "z")
	f.item.Update(keyShiftTab)
	assert.Equal(t, FocusCancel, f.item.editor.Focus())
	f.item.Update(keyShiftTab)
	assert.Equal(t, FocusSave, f.item.editor.Focus())
	edits := editMsgs(drain(f.item.Update(keyEnter)))
	require.Len(t, edits, 1)
	assert.Equal(t, "xz", edits[0].Message.Content)
}

func TestItem_FocusSkipsDisabledSave(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))
	f.item.StartEditing()
	f.item.editor.SetValue("")

	f.item.Update(keyTab)
	assert.Equal(t, FocusCancel, f.item.editor.Focus())
}

// =============================================================================
// COPY
// =============================================================================

func TestItem_CopyShowsFeedbackForTwoSeconds(t *testing.T) {
	f := newFixture(t, 0, model.NewAssistantMessage("copy me"))

	msgs := drain(f.item.Copy())
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"copy me"}, f.clip.writes)

	expiry := drain(f.item.Update(msgs[0]))
	assert.True(t, f.item.CopiedFeedback())
	assert.Contains(t, ansi.Strip(f.item.View()), "Copied!")

	require.NotEmpty(t, f.sched.calls)
	assert.Equal(t, CopyFeedbackDuration, f.sched.last().d)
	assert.Equal(t, 2000*time.Millisecond, f.sched.last().d)

	require.Len(t, expiry, 1)
	f.item.Update(expiry[0])
	assert.False(t, f.item.CopiedFeedback())
}

func TestItem_LaterCopySupersedesTimer(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))

	first := drain(f.item.Update(drain(f.item.Copy())[0]))
	second := drain(f.item.Update(drain(f.item.Copy())[0]))
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	f.item.Update(first[0])
	assert.True(t, f.item.CopiedFeedback(), "stale timer must not clear newer feedback")

	f.item.Update(second[0])
	assert.False(t, f.item.CopiedFeedback())
}

func TestItem_CopyWithoutClipboardIsNoop(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))
	f.clip.available = false
	assert.Nil(t, f.item.Copy())
	assert.Empty(t, f.clip.writes)

	f.item.clipboard = nil
	assert.Nil(t, f.item.Copy())
}

func TestItem_CopyFailureIsAbsorbed(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))
	f.clip.err = errors.New("no display")

	msgs := drain(f.item.Copy())
	require.Len(t, msgs, 1)
	assert.Nil(t, f.item.Update(msgs[0]))
	assert.False(t, f.item.CopiedFeedback())
}

func TestItem_CopyMessagesForOtherItemsIgnored(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))
	assert.Nil(t, f.item.Update(CopiedMsg{ID: "someone-else"}))
	assert.False(t, f.item.CopiedFeedback())
}

func TestItem_DisposeCancelsPendingFeedback(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))
	expiry := drain(f.item.Update(drain(f.item.Copy())[0]))
	require.Len(t, expiry, 1)

	f.item.Dispose()
	assert.True(t, f.item.Disposed())
	assert.False(t, f.item.CopiedFeedback())

	f.item.Update(expiry[0])
	assert.False(t, f.item.CopiedFeedback())
	assert.Nil(t, f.item.Copy())
}

// =============================================================================
// SOUND
// =============================================================================

func TestItem_SoundOncePerContentChange(t *testing.T) {
	f := newFixture(t, 0, model.NewAssistantMessage("a"))

	drain(f.item.Init())
	assert.Equal(t, 1, f.sound.plays, "mount plays once")

	drain(f.item.SetMessage(model.NewAssistantMessage("a")))
	assert.Equal(t, 1, f.sound.plays, "same content is silent")

	drain(f.item.SetMessage(model.NewAssistantMessage("ab")))
	assert.Equal(t, 2, f.sound.plays)

	drain(f.item.SetMessage(model.NewAssistantMessage("abc")))
	assert.Equal(t, 3, f.sound.plays)
}

func TestItem_NoSounderIsSilent(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("a"))
	f.item.sounder = nil
	assert.Nil(t, f.item.Init())
}

// =============================================================================
// PULSE
// =============================================================================

func TestItem_NewestAssistantPulses(t *testing.T) {
	f := newFixture(t, 0, model.NewAssistantMessage("a"))
	f.item.sounder = nil

	cmd := f.item.SetLast(true)
	assert.True(t, f.item.Pulsing())

	ticks := drain(cmd)
	require.Len(t, ticks, 1)
	tick, ok := ticks[0].(PulseTickMsg)
	require.True(t, ok)
	assert.Equal(t, f.item.ID(), tick.ID)

	// Each frame schedules the next.
	next := drain(f.item.Update(tick))
	require.Len(t, next, 1)

	f.item.SetLast(false)
	assert.False(t, f.item.Pulsing())
	assert.Nil(t, f.item.Update(next[0]), "stale tick after stop")
}

func TestItem_PulseColorCycles(t *testing.T) {
	f := newFixture(t, 0, model.NewAssistantMessage("a"))
	bg := f.item.theme.Background()
	static := styles.AssistantPulse.Static(bg)

	assert.Equal(t, static, f.item.pulse.Color(bg))

	ticks := drain(f.item.SetLast(true))
	for i := 0; i < 5; i++ {
		ticks = drain(f.item.Update(ticks[0]))
	}
	// 5 frames at 10fps is half a period: the translucent phase.
	assert.NotEqual(t, static, f.item.pulse.Color(bg))
	assert.Equal(t, styles.AssistantPulse.Sample(0.5, bg), f.item.pulse.Color(bg))
}

func TestItem_PulseEasing(t *testing.T) {
	f := newFixture(t, 0, model.NewAssistantMessage("a"))
	it := NewItem(0, model.NewAssistantMessage("a"), ItemOptions{
		Theme:       f.item.theme,
		Schedule:    f.sched.schedule,
		PulseFPS:    10,
		PulseEasing: styles.EaseOutCubic,
	})
	bg := it.theme.Background()

	ticks := drain(it.SetLast(true))
	for i := 0; i < 5; i++ {
		ticks = drain(it.Update(ticks[0]))
	}
	eased := styles.AssistantPulse.WithEasing(styles.EaseOutCubic)
	assert.Equal(t, eased.Sample(0.5, bg), it.pulse.Color(bg))
	assert.NotEqual(t, styles.AssistantPulse.Sample(0.5, bg), it.pulse.Color(bg))
}

func TestItem_UserNeverPulses(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("a"))
	assert.Nil(t, f.item.SetLast(true))
	assert.False(t, f.item.Pulsing())
}

func TestItem_DisposeStopsPulse(t *testing.T) {
	f := newFixture(t, 0, model.NewAssistantMessage("a"))
	ticks := drain(f.item.SetLast(true))
	require.Len(t, ticks, 1)

	f.item.Dispose()
	assert.False(t, f.item.Pulsing())
	assert.Nil(t, f.item.Update(ticks[0]))
}

// =============================================================================
// VIEW
// =============================================================================

func TestItem_ViewUser(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("**not markdown**"))
	out := ansi.Strip(f.item.View())
	assert.Contains(t, out, ">")
	assert.Contains(t, out, "**not markdown**")
}

func TestItem_ViewAssistant(t *testing.T) {
	f := newFixture(t, 0, model.NewAssistantMessage("**bold**"))
	out := ansi.Strip(f.item.View())
	assert.Contains(t, out, "*")
	assert.Contains(t, out, "bold")
}

func TestItem_ViewSelectedHints(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("x"))
	f.item.SetSelected(true)
	out := ansi.Strip(f.item.View())
	assert.Contains(t, out, "edit")
	assert.Contains(t, out, "copy")

	a := newFixture(t, 1, model.NewAssistantMessage("y"))
	a.item.SetSelected(true)
	out = ansi.Strip(a.item.View())
	assert.NotContains(t, out, "edit")
	assert.Contains(t, out, "copy")
}

func TestItem_ViewEditing(t *testing.T) {
	f := newFixture(t, 0, model.NewUserMessage("draft"))
	f.item.StartEditing()
	out := ansi.Strip(f.item.View())
	assert.Contains(t, out, "draft")
	assert.Contains(t, out, "Save & Submit")
	assert.Contains(t, out, "Cancel")
}
