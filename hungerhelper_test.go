package hungerhelper

import (
	"strings"
	"testing"
)

func TestInitModelSeedsGreeting(t *testing.T) {
	m := newTestModel(t, &scriptedProvider{})
	msgs := m.conversation.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want the greeting only", len(msgs))
	}
	if msgs[0].Role != RoleModel || msgs[0].Text != greetingText {
		t.Errorf("first message = %+v", msgs[0])
	}
	if msgs[0].IsThinking {
		t.Error("greeting must not be a thinking message")
	}
}

func TestInitModelWiresDefaults(t *testing.T) {
	m := newTestModel(t, &scriptedProvider{})

	if m.client.ProviderList == "" {
		t.Error("provider list not loaded")
	}
	if !strings.Contains(m.client.ProviderList, "Phone Number") {
		t.Error("provider list missing expected schema")
	}
	if m.settingsPanel.CurrentModel == "" || m.settingsPanel.CurrentVoice == "" {
		t.Errorf("settings panel defaults not filled: %+v", m.settingsPanel)
	}
	if m.player == nil {
		t.Fatal("no player constructed")
	}
}

func TestMessageIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newUserMessage("x").ID
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
