// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// =============================================================================
// ID TESTS
// =============================================================================

func TestNewID_UniqueAndOrdered(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %q after %d ids", id, i)
		}
		seen[id] = true
		if prev != "" && id < prev {
			t.Errorf("id %q sorts before previous %q", id, prev)
		}
		prev = id
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"explain recursion in simple terms please", "explain recursion in simple terms..."},
		{"explain recursion in simple terms", "explain recursion in simple terms"},
		{"hi", "hi"},
		{"  what   is\na monad  ", "what is a monad"},
	}
	for _, tt := range tests {
		if got := DeriveTitle(tt.prompt); got != tt.want {
			t.Errorf("DeriveTitle(%q) = %q, want %q", tt.prompt, got, tt.want)
		}
	}
}

func TestDefaultNames(t *testing.T) {
	if got := DefaultConversationTitle(3); got != "Conversation 3" {
		t.Errorf("DefaultConversationTitle(3) = %q", got)
	}
	if got := DefaultFileName(2); got != "file-2.txt" {
		t.Errorf("DefaultFileName(2) = %q", got)
	}
}

func TestConversation_AppendAndLookup(t *testing.T) {
	conv := NewConversation("Conversation 1")
	if len(conv.Messages) != 0 {
		t.Fatalf("new conversation has %d messages", len(conv.Messages))
	}
	if _, ok := conv.LastMessage(); ok {
		t.Error("LastMessage on empty conversation should report false")
	}

	user := NewMessage(RoleUser, "hello")
	reply := NewMessage(RoleAssistant, "hi there")
	conv.Append(user)
	conv.Append(reply)

	if got := conv.MessageIndex(reply.ID); got != 1 {
		t.Errorf("MessageIndex(reply) = %d, want 1", got)
	}
	if got := conv.MessageIndex("missing"); got != -1 {
		t.Errorf("MessageIndex(missing) = %d, want -1", got)
	}
	last, _ := conv.LastMessage()
	if last.ID != reply.ID {
		t.Errorf("LastMessage = %q, want reply", last.Content)
	}
	if conv.UpdatedAt.Before(conv.CreatedAt) {
		t.Error("UpdatedAt should not be before CreatedAt")
	}
}

func TestConversation_CloneIsDeep(t *testing.T) {
	conv := NewConversation("c")
	conv.Append(NewMessage(RoleUser, "original"))

	clone := conv.Clone()
	clone.Messages[0].Content = "changed"
	clone.Append(NewMessage(RoleAssistant, "extra"))

	if conv.Messages[0].Content != "original" {
		t.Error("editing the clone changed the original message")
	}
	if len(conv.Messages) != 1 {
		t.Errorf("original has %d messages, want 1", len(conv.Messages))
	}
}

func TestConversation_JSONFieldNames(t *testing.T) {
	conv := NewConversation("c")
	conv.Append(NewMessage(RoleUser, "x"))

	data, err := json.Marshal(conv)
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"id"`, `"title"`, `"messages"`, `"createdAt"`, `"updatedAt"`, `"role":"user"`, `"timestamp"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("JSON %s missing %s", data, field)
		}
	}
}

func TestRole_DisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("RoleUser.DisplayName() = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Gemini" {
		t.Errorf("RoleAssistant.DisplayName() = %q", RoleAssistant.DisplayName())
	}
}

// =============================================================================
// FILE TESTS
// =============================================================================

func TestNewFileItem_Defaults(t *testing.T) {
	f := NewFileItem(DefaultFileName(1))
	if f.Language != LangText {
		t.Errorf("Language = %q, want text", f.Language)
	}
	if f.Content != "" {
		t.Errorf("Content = %q, want empty", f.Content)
	}
	if f.ID == "" {
		t.Error("ID should be set")
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"python", LangPython, false},
		{" Markdown ", LangMarkdown, false},
		{"JSON", LangJSON, false},
		{"cobol", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLanguage(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLanguage_NextCyclesAll(t *testing.T) {
	all := Languages()
	l := all[0]
	for i := 1; i < len(all); i++ {
		l = l.Next()
		if l != all[i] {
			t.Fatalf("step %d: Next = %q, want %q", i, l, all[i])
		}
	}
	if l.Next() != all[0] {
		t.Errorf("Next should wrap to %q", all[0])
	}
	if Language("bogus").Next() != all[0] {
		t.Error("unknown language should restart the cycle")
	}
}

func TestLanguage_Labels(t *testing.T) {
	for _, l := range Languages() {
		if l.Label() == "" {
			t.Errorf("%q has empty label", l)
		}
	}
	if LangHTML.Label() != "HTML" {
		t.Errorf("LangHTML.Label() = %q", LangHTML.Label())
	}
	if Language("cobol").Label() != "cobol" {
		t.Error("unknown language should label as itself")
	}
}

// =============================================================================
// SETTINGS TESTS
// =============================================================================

func TestHasUsableAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{PlaceholderAPIKey, false},
		{" " + PlaceholderAPIKey + " ", false},
		{"AIzaSyExample", true},
	}
	for _, tt := range tests {
		if got := HasUsableAPIKey(tt.key); got != tt.want {
			t.Errorf("HasUsableAPIKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestClampFontSize(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultFontSize},
		{5, MinFontSize},
		{12, 12},
		{18, 18},
		{24, 24},
		{40, MaxFontSize},
	}
	for _, tt := range tests {
		if got := ClampFontSize(tt.in); got != tt.want {
			t.Errorf("ClampFontSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSettings_Normalize(t *testing.T) {
	s := EditorSettings{Theme: "neon", FontSize: 99, Model: "gpt", APIKey: "k"}.Normalize()
	if s.Theme != ThemeLight || s.FontSize != MaxFontSize || s.Model != DefaultModel {
		t.Errorf("Normalize() = %+v", s)
	}
	if s.APIKey != "k" {
		t.Error("Normalize must not touch the API key")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("")
	if s.Theme != ThemeLight || s.FontSize != 14 || s.Model != ModelGeminiPro {
		t.Errorf("DefaultSettings = %+v", s)
	}
	if s.HasUsableAPIKey() {
		t.Error("empty default key should not be usable")
	}
}
