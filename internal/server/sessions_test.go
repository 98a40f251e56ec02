package server

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kondate/internal/classify"
	"github.com/hyperjump/kondate/internal/engine"
	"github.com/hyperjump/kondate/internal/provider"
)

func newTestRegistry(ttl time.Duration) *SessionRegistry {
	factory := func() *engine.Engine {
		return engine.NewEngine(provider.NewMockClient(), nil, classify.NewClassifier(nil), nil, zap.NewNop())
	}
	return NewSessionRegistry(ttl, factory, nil)
}

func TestSessionRegistry_GetOrCreate(t *testing.T) {
	r := newTestRegistry(time.Minute)

	id, eng := r.GetOrCreate("")
	if id == "" || eng == nil {
		t.Fatalf("GetOrCreate(\"\") = %q, %v", id, eng)
	}

	id2, eng2 := r.GetOrCreate(id)
	if id2 != id {
		t.Errorf("existing session id changed: %q -> %q", id, id2)
	}
	if eng2 != eng {
		t.Error("existing session should keep its engine")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestSessionRegistry_AdoptsProvidedID(t *testing.T) {
	r := newTestRegistry(time.Minute)

	// A client retrying with an id the server no longer knows keeps its handle.
	id, eng := r.GetOrCreate("client-chosen")
	if id != "client-chosen" || eng == nil {
		t.Fatalf("GetOrCreate(client-chosen) = %q, %v", id, eng)
	}
	if got, ok := r.Get("client-chosen"); !ok || got != eng {
		t.Error("adopted session should be retrievable")
	}
}

func TestSessionRegistry_Get(t *testing.T) {
	r := newTestRegistry(time.Minute)
	if _, ok := r.Get("nope"); ok {
		t.Error("Get of unknown id should miss")
	}
	id, eng := r.GetOrCreate("")
	got, ok := r.Get(id)
	if !ok || got != eng {
		t.Errorf("Get(%q) = %v, %v", id, got, ok)
	}
}

func TestSessionRegistry_Expiry(t *testing.T) {
	r := newTestRegistry(50 * time.Millisecond)
	id, _ := r.GetOrCreate("")

	time.Sleep(80 * time.Millisecond)
	if _, ok := r.Get(id); ok {
		t.Error("expired session should be gone")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after expiry", r.Len())
	}

	// Asking again with the stale id yields a fresh session under the same id.
	id2, eng2 := r.GetOrCreate(id)
	if id2 != id || eng2 == nil {
		t.Errorf("GetOrCreate(stale id) = %q, %v", id2, eng2)
	}
}

func TestSessionRegistry_AccessExtendsTTL(t *testing.T) {
	r := newTestRegistry(200 * time.Millisecond)
	id, _ := r.GetOrCreate("")

	time.Sleep(120 * time.Millisecond)
	if _, ok := r.Get(id); !ok {
		t.Fatal("session expired too early")
	}
	time.Sleep(120 * time.Millisecond)
	// 240ms since creation but only 120ms since the last touch.
	if _, ok := r.Get(id); !ok {
		t.Error("access should reset the idle clock")
	}
}

func TestSessionRegistry_Remove(t *testing.T) {
	r := newTestRegistry(time.Minute)
	id, _ := r.GetOrCreate("")
	r.Remove(id)
	if _, ok := r.Get(id); ok {
		t.Error("removed session should be gone")
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
