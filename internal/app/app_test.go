// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/geminipad/internal/gemini"
	"github.com/jeranaias/geminipad/internal/gemini/geminitest"
	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/storage"
)

const testKey = "AIza-test-key"

func newController(t *testing.T, apiKey string, fake *geminitest.Fake) (*Controller, storage.Backend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	return New(storage.NewRecords(backend, model.DefaultSettings(apiKey)), fake), backend
}

// failingBackend fails every Put once broken is set.
type failingBackend struct {
	storage.Backend
	broken atomic.Bool
}

func (b *failingBackend) Put(key string, data []byte) error {
	if b.broken.Load() {
		return errors.New("disk full")
	}
	return b.Backend.Put(key, data)
}

// countingBackend counts writes per key.
type countingBackend struct {
	storage.Backend
	puts sync.Map // key -> *atomic.Int32
}

func (b *countingBackend) Put(key string, data []byte) error {
	n, _ := b.puts.LoadOrStore(key, new(atomic.Int32))
	n.(*atomic.Int32).Add(1)
	return b.Backend.Put(key, data)
}

func (b *countingBackend) count(key string) int32 {
	n, ok := b.puts.Load(key)
	if !ok {
		return 0
	}
	return n.(*atomic.Int32).Load()
}

// pull runs ex.Next on another goroutine, the way the TUI does.
func pull(ex *Exchange) <-chan string {
	ch := make(chan string, 1)
	go func() {
		frag, ok := ex.Next()
		if !ok {
			close(ch)
			return
		}
		ch <- frag
	}()
	return ch
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNew_EmptyStore(t *testing.T) {
	fake := geminitest.NewFake()
	c, _ := newController(t, "", fake)

	s := c.State()
	assert.Empty(t, s.Conversations)
	assert.NotNil(t, s.Conversations)
	assert.Empty(t, s.Files)
	assert.Equal(t, TabChat, s.ActiveTab)
	assert.Equal(t, model.DefaultSettings(""), s.Settings)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Equal(t, 0, fake.InitCalls(), "no key, no initialize")
}

func TestNew_InitializesWithStoredKey(t *testing.T) {
	fake := geminitest.NewFake()
	newController(t, testKey, fake)

	key, m := fake.Binding()
	assert.Equal(t, testKey, key)
	assert.Equal(t, string(model.DefaultModel), m)
}

func TestNew_PlaceholderKeyNotUsed(t *testing.T) {
	fake := geminitest.NewFake()
	newController(t, model.PlaceholderAPIKey, fake)
	assert.Equal(t, 0, fake.InitCalls())
}

func TestNew_ReloadsPersistedState(t *testing.T) {
	fake := geminitest.NewFake("Hi", " there")
	c, backend := newController(t, testKey, fake)

	c.NewConversation()
	require.NoError(t, c.SendMessage(context.Background(), "hello", nil))
	c.NewFile()
	require.NoError(t, c.SaveFile("package main"))
	require.NoError(t, c.SaveSettings(c.State().Settings))

	reloaded := New(storage.NewRecords(backend, model.DefaultSettings("")), geminitest.NewFake())
	s := reloaded.State()
	require.Len(t, s.Conversations, 1)
	assert.Equal(t, "hello", s.Conversations[0].Title)
	require.Len(t, s.Conversations[0].Messages, 2)
	assert.Equal(t, "Hi there", s.Conversations[0].Messages[1].Content)
	require.Len(t, s.Files, 1)
	assert.Equal(t, "package main", s.Files[0].Content)
	assert.Equal(t, testKey, s.Settings.APIKey, "stored settings win over defaults")

	assert.Empty(t, s.ActiveConversationID, "selection is not persisted")
	assert.Empty(t, s.ActiveFileID)
}

// =============================================================================
// CONVERSATIONS
// =============================================================================

func TestNewConversation_PrependsAndSelects(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())

	first := c.NewConversation()
	second := c.NewConversation()
	third := c.NewConversation()

	s := c.State()
	require.Len(t, s.Conversations, 3)
	assert.Equal(t, third.ID, s.Conversations[0].ID)
	assert.Equal(t, second.ID, s.Conversations[1].ID)
	assert.Equal(t, first.ID, s.Conversations[2].ID)
	assert.Equal(t, third.ID, s.ActiveConversationID)

	assert.Equal(t, "Conversation 1", first.Title)
	assert.Equal(t, "Conversation 3", third.Title)
	assert.Empty(t, third.Messages)
	assert.Empty(t, s.Files, "no side effect on files")
	assert.Equal(t, TabChat, s.ActiveTab)
}

func TestNewConversation_UniqueIDs(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		conv := c.NewConversation()
		require.False(t, seen[conv.ID], "duplicate id %s", conv.ID)
		seen[conv.ID] = true
	}
}

func TestSelectConversation(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())
	a := c.NewConversation()
	c.NewConversation()
	c.SetTab(TabFiles)

	require.NoError(t, c.SelectConversation(a.ID))
	assert.Equal(t, a.ID, c.State().ActiveConversationID)
	assert.Equal(t, TabFiles, c.State().ActiveTab, "selecting does not switch tabs")

	err := c.SelectConversation("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, a.ID, c.State().ActiveConversationID)
}

func TestDeleteConversation(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())
	a := c.NewConversation()
	b := c.NewConversation()

	t.Run("inactive keeps selection", func(t *testing.T) {
		c.DeleteConversation(a.ID)
		s := c.State()
		require.Len(t, s.Conversations, 1)
		assert.Equal(t, b.ID, s.ActiveConversationID)
	})

	t.Run("active clears selection", func(t *testing.T) {
		c.DeleteConversation(b.ID)
		s := c.State()
		assert.Empty(t, s.Conversations)
		assert.Empty(t, s.ActiveConversationID)
		_, ok := s.ActiveConversation()
		assert.False(t, ok)
	})

	t.Run("unknown is ignored", func(t *testing.T) {
		c.DeleteConversation("missing")
		assert.Empty(t, c.State().Error)
	})
}

func TestState_SnapshotsAreStable(t *testing.T) {
	c, _ := newController(t, testKey, geminitest.NewFake("reply"))
	c.NewConversation()
	before := c.State()

	require.NoError(t, c.SendMessage(context.Background(), "question", nil))

	assert.Empty(t, before.Conversations[0].Messages, "earlier snapshot unchanged")
	assert.Len(t, c.State().Conversations[0].Messages, 2)
}

// =============================================================================
// SENDING
// =============================================================================

func TestBeginSend_Validation(t *testing.T) {
	t.Run("no active conversation", func(t *testing.T) {
		c, _ := newController(t, testKey, geminitest.NewFake())
		_, err := c.BeginSend(context.Background(), "hi")
		assert.ErrorIs(t, err, ErrNoActiveConversation)
	})

	t.Run("blank prompt", func(t *testing.T) {
		c, _ := newController(t, testKey, geminitest.NewFake())
		c.NewConversation()
		_, err := c.BeginSend(context.Background(), "  \n\t")
		assert.ErrorIs(t, err, ErrEmptyPrompt)
		conv, _ := c.State().ActiveConversation()
		assert.Empty(t, conv.Messages)
	})

	t.Run("busy", func(t *testing.T) {
		fake := geminitest.NewFake("x")
		fake.Gate = make(chan struct{})
		c, _ := newController(t, testKey, fake)
		c.NewConversation()

		ex, err := c.BeginSend(context.Background(), "one")
		require.NoError(t, err)
		_, err = c.BeginSend(context.Background(), "two")
		assert.ErrorIs(t, err, ErrBusy)
		_, err = c.BeginSend(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyPrompt, "a blank prompt is rejected before the busy check")

		c.CancelSend()
		_, ok := ex.Next()
		assert.False(t, ok)
		c.FinishSend(ex, ex.Err())
	})
}

func TestBeginSend_MissingKey(t *testing.T) {
	for _, key := range []string{"", "   ", model.PlaceholderAPIKey} {
		t.Run("key="+key, func(t *testing.T) {
			fake := geminitest.NewFake("never")
			c, _ := newController(t, key, fake)
			conv := c.NewConversation()

			_, err := c.BeginSend(context.Background(), "hello")
			assert.ErrorIs(t, err, ErrMissingAPIKey)

			s := c.State()
			assert.Equal(t, MsgMissingAPIKey, s.Error)
			assert.Equal(t, TabSettings, s.ActiveTab)
			assert.False(t, s.Loading)
			active, _ := s.ActiveConversation()
			assert.Equal(t, conv.Messages, active.Messages)
			assert.Empty(t, fake.Prompts())
		})
	}
}

func TestSendMessage_AssistantIsConcatenation(t *testing.T) {
	fragments := []string{"Recursion ", "is when ", "a function ", "calls itself."}
	fake := geminitest.NewFake(fragments...)
	c, _ := newController(t, testKey, fake)
	c.NewConversation()

	var seen []string
	err := c.SendMessage(context.Background(), "what is recursion", func(f string) {
		seen = append(seen, f)
	})
	require.NoError(t, err)
	assert.Equal(t, fragments, seen)

	conv, _ := c.State().ActiveConversation()
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, model.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, "what is recursion", conv.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, strings.Join(fragments, ""), conv.Messages[1].Content)
	assert.NotEqual(t, conv.Messages[0].ID, conv.Messages[1].ID)
	assert.Equal(t, []string{"what is recursion"}, fake.Prompts())
	assert.False(t, c.State().Loading)
	assert.Nil(t, c.Inflight())
}

func TestSendMessage_NoFragmentsNoAssistantMessage(t *testing.T) {
	c, _ := newController(t, testKey, geminitest.NewFake())
	c.NewConversation()

	require.NoError(t, c.SendMessage(context.Background(), "hello there", nil))

	conv, _ := c.State().ActiveConversation()
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "Conversation 1", c.State().Conversations[0].Title, "title needs a full exchange")
}

func TestSendMessage_Title(t *testing.T) {
	c, _ := newController(t, testKey, geminitest.NewFake("ok"))
	c.NewConversation()

	require.NoError(t, c.SendMessage(context.Background(), "explain recursion in simple terms please", nil))
	conv, _ := c.State().ActiveConversation()
	assert.Equal(t, "explain recursion in simple terms...", conv.Title)

	require.NoError(t, c.SendMessage(context.Background(), "and now iteration", nil))
	conv, _ = c.State().ActiveConversation()
	assert.Equal(t, "explain recursion in simple terms...", conv.Title, "derived once")
	assert.Len(t, conv.Messages, 4)
}

func TestSendMessage_ShortPromptTitle(t *testing.T) {
	c, _ := newController(t, testKey, geminitest.NewFake("ok"))
	c.NewConversation()

	require.NoError(t, c.SendMessage(context.Background(), "  hi   gemini  ", nil))
	conv, _ := c.State().ActiveConversation()
	assert.Equal(t, "hi gemini", conv.Title)
}

func TestSendMessage_Failure(t *testing.T) {
	fake := geminitest.NewFake("partial ")
	fake.Err = errors.New("connection reset")
	c, _ := newController(t, testKey, fake)
	c.NewConversation()

	err := c.SendMessage(context.Background(), "tell me a story", nil)
	require.Error(t, err)

	s := c.State()
	assert.Equal(t, MsgGenerationFailed, s.Error)
	assert.False(t, s.Loading)
	conv, _ := s.ActiveConversation()
	require.Len(t, conv.Messages, 2, "partial reply kept")
	assert.Equal(t, "partial ", conv.Messages[1].Content)
	assert.Equal(t, "Conversation 1", conv.Title, "no title after a failed exchange")
}

func TestSendMessage_AuthFailure(t *testing.T) {
	fake := geminitest.NewFake()
	fake.Err = &gemini.APIError{StatusCode: 401, Message: "API key not valid"}
	c, _ := newController(t, testKey, fake)
	c.NewConversation()

	err := c.SendMessage(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, gemini.ErrAuthFailed)
	assert.Equal(t, MsgGenerationFailed, c.State().Error)
}

func TestSendMessage_ClearsPreviousError(t *testing.T) {
	fake := geminitest.NewFake("ok")
	c, _ := newController(t, testKey, fake)
	c.NewConversation()

	fake.Err = errors.New("boom")
	require.Error(t, c.SendMessage(context.Background(), "first", nil))
	require.Equal(t, MsgGenerationFailed, c.State().Error)

	fake.Err = nil
	require.NoError(t, c.SendMessage(context.Background(), "second", nil))
	assert.Empty(t, c.State().Error)
}

func TestStepwiseSend_ObservesProgress(t *testing.T) {
	fake := geminitest.NewFake("one ", "two ", "three")
	fake.Gate = make(chan struct{})
	c, _ := newController(t, testKey, fake)
	conv := c.NewConversation()

	ex, err := c.BeginSend(context.Background(), "count")
	require.NoError(t, err)

	s := c.State()
	assert.True(t, s.Loading)
	active, _ := s.ActiveConversation()
	require.Len(t, active.Messages, 1, "user message is visible before any reply")
	assert.Equal(t, ex.UserMessageID, active.Messages[0].ID)
	assert.Empty(t, ex.AssistantMessageID())

	var want strings.Builder
	for _, expected := range []string{"one ", "two ", "three"} {
		ch := pull(ex)
		fake.Gate <- struct{}{}
		frag, ok := <-ch
		require.True(t, ok)
		require.Equal(t, expected, frag)

		c.ApplyFragment(ex, frag)
		want.WriteString(frag)

		active, _ := c.State().ActiveConversation()
		require.Len(t, active.Messages, 2, "one assistant message, replaced in place")
		assert.Equal(t, ex.AssistantMessageID(), active.Messages[1].ID)
		assert.Equal(t, want.String(), active.Messages[1].Content)
		assert.True(t, c.State().Loading)
	}

	_, ok := <-pull(ex)
	assert.False(t, ok)
	c.FinishSend(ex, ex.Err())

	s = c.State()
	assert.False(t, s.Loading)
	assert.Equal(t, "count", s.Conversations[0].Title)
	assert.Equal(t, conv.ID, s.Conversations[0].ID)
}

func TestApplyFragment_PersistsEveryFragment(t *testing.T) {
	fake := geminitest.NewFake("alpha ", "beta ", "gamma")
	fake.Gate = make(chan struct{})
	backend := &countingBackend{Backend: storage.NewMemoryBackend()}
	c := New(storage.NewRecords(backend, model.DefaultSettings(testKey)), fake)
	conv := c.NewConversation()

	ex, err := c.BeginSend(context.Background(), "greek")
	require.NoError(t, err)
	before := backend.count(storage.KeyConversations)

	stored := storage.NewRecords(backend, model.DefaultSettings(""))
	var want strings.Builder
	for i, expected := range []string{"alpha ", "beta ", "gamma"} {
		ch := pull(ex)
		fake.Gate <- struct{}{}
		frag, ok := <-ch
		require.True(t, ok)
		require.Equal(t, expected, frag)

		c.ApplyFragment(ex, frag)
		want.WriteString(frag)

		assert.Equal(t, before+int32(i+1), backend.count(storage.KeyConversations), "one write per fragment")

		convs := stored.Conversations.Read()
		require.Len(t, convs, 1)
		assert.Equal(t, conv.ID, convs[0].ID)
		require.Len(t, convs[0].Messages, 2)
		assert.Equal(t, model.RoleAssistant, convs[0].Messages[1].Role)
		assert.Equal(t, want.String(), convs[0].Messages[1].Content, "stored reply is the text so far")
	}

	_, ok := <-pull(ex)
	assert.False(t, ok)
	c.FinishSend(ex, ex.Err())
}

func TestStepwiseSend_WritesToOriginatingConversation(t *testing.T) {
	fake := geminitest.NewFake("reply")
	fake.Gate = make(chan struct{}, 1)
	c, _ := newController(t, testKey, fake)
	origin := c.NewConversation()

	ex, err := c.BeginSend(context.Background(), "hello")
	require.NoError(t, err)

	other := c.NewConversation()
	assert.Equal(t, other.ID, c.State().ActiveConversationID)

	fake.Gate <- struct{}{}
	frag, ok := ex.Next()
	require.True(t, ok)
	c.ApplyFragment(ex, frag)
	_, ok = ex.Next()
	require.False(t, ok)
	c.FinishSend(ex, ex.Err())

	s := c.State()
	for _, conv := range s.Conversations {
		switch conv.ID {
		case origin.ID:
			assert.Len(t, conv.Messages, 2)
		case other.ID:
			assert.Empty(t, conv.Messages)
		}
	}
}

func TestCancelSend(t *testing.T) {
	fake := geminitest.NewFake("first ", "second")
	fake.Gate = make(chan struct{}, 1)
	c, _ := newController(t, testKey, fake)
	c.NewConversation()

	ex, err := c.BeginSend(context.Background(), "explain recursion in simple terms please")
	require.NoError(t, err)

	fake.Gate <- struct{}{}
	frag, ok := ex.Next()
	require.True(t, ok)
	c.ApplyFragment(ex, frag)

	c.CancelSend()
	_, ok = ex.Next()
	require.False(t, ok)
	assert.ErrorIs(t, ex.Err(), context.Canceled)
	assert.True(t, ex.Canceled())
	c.FinishSend(ex, ex.Err())

	s := c.State()
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error, "cancel is not an error")
	conv, _ := s.ActiveConversation()
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "first ", conv.Messages[1].Content)
	assert.Equal(t, "Conversation 1", conv.Title)
}

func TestDeleteConversation_WhileStreaming(t *testing.T) {
	fake := geminitest.NewFake("a", "b")
	fake.Gate = make(chan struct{})
	c, _ := newController(t, testKey, fake)
	conv := c.NewConversation()

	ex, err := c.BeginSend(context.Background(), "hello")
	require.NoError(t, err)

	c.DeleteConversation(conv.ID)
	assert.True(t, ex.Canceled())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, ok := ex.Next()
		assert.False(t, ok)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream not cancelled")
	}

	c.ApplyFragment(ex, "late")
	c.FinishSend(ex, ex.Err())

	s := c.State()
	assert.Empty(t, s.Conversations)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Nil(t, c.Inflight())
}

func TestFinishSend_Idempotent(t *testing.T) {
	fake := geminitest.NewFake("x")
	c, _ := newController(t, testKey, fake)
	c.NewConversation()

	ex, err := c.BeginSend(context.Background(), "hi")
	require.NoError(t, err)
	c.FinishSend(ex, errors.New("first"))
	require.Equal(t, MsgGenerationFailed, c.State().Error)

	c.DismissError()
	c.FinishSend(ex, errors.New("second"))
	c.ApplyFragment(ex, "ignored")
	assert.Empty(t, c.State().Error)
	conv, _ := c.State().ActiveConversation()
	assert.Len(t, conv.Messages, 1)
}

// =============================================================================
// FILES
// =============================================================================

func TestNewFile(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())

	a := c.NewFile()
	b := c.NewFile()

	s := c.State()
	assert.Equal(t, TabFiles, s.ActiveTab)
	require.Len(t, s.Files, 2)
	assert.Equal(t, b.ID, s.Files[0].ID)
	assert.Equal(t, b.ID, s.ActiveFileID)
	assert.Equal(t, "file-1.txt", a.Name)
	assert.Equal(t, "file-2.txt", b.Name)
	assert.Equal(t, model.LangText, a.Language)
	assert.Empty(t, a.Content)
	assert.Empty(t, s.Conversations)
}

func TestSaveFile(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())

	assert.ErrorIs(t, c.SaveFile("x"), ErrNoActiveFile)

	f := c.NewFile()
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, c.SaveFile("console.log(1)"))

	got, ok := c.State().ActiveFile()
	require.True(t, ok)
	assert.Equal(t, "console.log(1)", got.Content)
	assert.True(t, got.UpdatedAt.After(f.UpdatedAt))
	assert.Equal(t, f.CreatedAt, got.CreatedAt)
}

func TestUpdateFileName(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())
	assert.ErrorIs(t, c.UpdateFileName("a.js"), ErrNoActiveFile)

	f := c.NewFile()
	require.NoError(t, c.UpdateFileName("  main.py "))
	got, _ := c.State().ActiveFile()
	assert.Equal(t, "main.py", got.Name)
	assert.Equal(t, f.UpdatedAt, got.UpdatedAt, "renaming is not a content save")

	assert.ErrorIs(t, c.UpdateFileName("   "), ErrEmptyName)
	got, _ = c.State().ActiveFile()
	assert.Equal(t, "main.py", got.Name)
}

func TestUpdateFileLanguage(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())
	c.NewFile()

	require.NoError(t, c.UpdateFileLanguage(model.LangPython))
	got, _ := c.State().ActiveFile()
	assert.Equal(t, model.LangPython, got.Language)

	assert.ErrorIs(t, c.UpdateFileLanguage("cobol"), ErrInvalidLanguage)
	got, _ = c.State().ActiveFile()
	assert.Equal(t, model.LangPython, got.Language)
}

func TestSelectAndDeleteFile(t *testing.T) {
	c, _ := newController(t, "", geminitest.NewFake())
	a := c.NewFile()
	b := c.NewFile()
	c.SetTab(TabChat)

	require.NoError(t, c.SelectFile(a.ID))
	assert.Equal(t, a.ID, c.State().ActiveFileID)
	assert.Equal(t, TabChat, c.State().ActiveTab)
	assert.ErrorIs(t, c.SelectFile("missing"), ErrNotFound)

	c.DeleteFile(b.ID)
	assert.Equal(t, a.ID, c.State().ActiveFileID)
	c.DeleteFile(a.ID)
	assert.Empty(t, c.State().ActiveFileID)
	assert.Empty(t, c.State().Files)
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestSaveSettings(t *testing.T) {
	fake := geminitest.NewFake("hi")
	c, backend := newController(t, "", fake)
	c.NewConversation()
	_, err := c.BeginSend(context.Background(), "hello")
	require.ErrorIs(t, err, ErrMissingAPIKey)

	s := c.State().Settings
	s.APIKey = testKey
	s.Theme = model.ThemeDark
	s.FontSize = 99
	s.Model = model.ModelGeminiProVision
	require.NoError(t, c.SaveSettings(s))

	state := c.State()
	assert.Empty(t, state.Error, "saving clears the banner")
	assert.Equal(t, model.MaxFontSize, state.Settings.FontSize)
	key, m := fake.Binding()
	assert.Equal(t, testKey, key)
	assert.Equal(t, "gemini-pro-vision", m)

	require.NoError(t, c.SendMessage(context.Background(), "hello", nil))

	reloaded := New(storage.NewRecords(backend, model.DefaultSettings("")), geminitest.NewFake())
	assert.Equal(t, model.ThemeDark, reloaded.State().Settings.Theme)
	assert.Equal(t, testKey, reloaded.State().Settings.APIKey)
}

func TestSaveSettings_PlaceholderSkipsInitialize(t *testing.T) {
	fake := geminitest.NewFake()
	c, _ := newController(t, "", fake)

	s := c.State().Settings
	s.APIKey = model.PlaceholderAPIKey
	require.NoError(t, c.SaveSettings(s))
	assert.Equal(t, 0, fake.InitCalls())
}

func TestSaveSettings_InitializeError(t *testing.T) {
	fake := geminitest.NewFake()
	fake.InitErr = errors.New("bad key")
	c, _ := newController(t, "", fake)

	s := c.State().Settings
	s.APIKey = testKey
	assert.Error(t, c.SaveSettings(s))
	assert.Equal(t, testKey, c.State().Settings.APIKey, "settings saved regardless")
}

// =============================================================================
// PERSISTENCE FAILURES
// =============================================================================

func TestPersistFailureSetsBanner(t *testing.T) {
	backend := &failingBackend{Backend: storage.NewMemoryBackend()}
	c := New(storage.NewRecords(backend, model.DefaultSettings(testKey)), geminitest.NewFake("ok"))

	c.NewConversation()
	require.Empty(t, c.State().Error)

	backend.broken.Store(true)
	conv := c.NewConversation()

	s := c.State()
	assert.Equal(t, MsgSaveFailed, s.Error)
	assert.Equal(t, conv.ID, s.ActiveConversationID, "in-memory state still updated")
	assert.Len(t, s.Conversations, 2)
}

// =============================================================================
// TABS
// =============================================================================

func TestTabCycle(t *testing.T) {
	tab := TabChat
	for range Tabs() {
		tab = tab.Next()
	}
	assert.Equal(t, TabChat, tab)
	assert.Equal(t, TabSettings, TabChat.Prev())
	assert.Equal(t, TabFiles, TabSettings.Prev())
	assert.Equal(t, "Settings", TabSettings.Label())
}
