package capability

import (
	"testing"

	"github.com/NeuroForge1/genia-mcp-server-twilio/pkg/api"
)

func TestInvocationDefaults(t *testing.T) {
	inv := InvocationFromMessage(&api.Message{Role: api.RoleUser, Content: &api.TextContent{}})
	if inv.Capability != "" {
		t.Errorf("expected empty capability, got %q", inv.Capability)
	}
	if inv.Params == nil || len(inv.Params) != 0 {
		t.Errorf("expected empty params, got %v", inv.Params)
	}
	if inv.UserID != unknownUser {
		t.Errorf("expected default user ID, got %q", inv.UserID)
	}
}

func TestInvocationFromMetadata(t *testing.T) {
	inv := InvocationFromMessage(requestMessage(map[string]any{
		"capability": SendWhatsAppMessage,
		"params":     map[string]any{"to": "+1555", "body": "hi"},
		"user_id":    "u-42",
	}))
	if inv.Capability != SendWhatsAppMessage {
		t.Errorf("unexpected capability: %q", inv.Capability)
	}
	if inv.UserID != "u-42" {
		t.Errorf("unexpected user ID: %q", inv.UserID)
	}
	if to, ok := inv.stringParam("to"); !ok || to != "+1555" {
		t.Errorf("unexpected to param: %q ok=%v", to, ok)
	}
}

func TestInvocationIgnoresMistypedMetadata(t *testing.T) {
	inv := InvocationFromMessage(requestMessage(map[string]any{
		"capability": 42,
		"params":     "not-a-map",
		"user_id":    []string{"nope"},
	}))
	if inv.Capability != "" {
		t.Errorf("mistyped capability should be empty, got %q", inv.Capability)
	}
	if len(inv.Params) != 0 {
		t.Errorf("mistyped params should be empty, got %v", inv.Params)
	}
	if inv.UserID != unknownUser {
		t.Errorf("mistyped user ID should default, got %q", inv.UserID)
	}
}

func TestStringParamRejectsNonStrings(t *testing.T) {
	inv := Invocation{Params: map[string]any{"to": 1555, "body": ""}}
	if _, ok := inv.stringParam("to"); ok {
		t.Error("numeric param must not pass as string")
	}
	if _, ok := inv.stringParam("body"); ok {
		t.Error("empty string must report absent")
	}
	if _, ok := inv.stringParam("missing"); ok {
		t.Error("missing param must report absent")
	}
}
