package common

import "testing"

func TestDefaultKeyMap_HasCriticalBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ToggleHints.Keys()) == 0 || km.ToggleHints.Keys()[0] != "?" {
		t.Fatalf("expected ? key binding for hints")
	}
	if len(km.ForceQuit.Keys()) == 0 || km.ForceQuit.Keys()[0] != "ctrl+c" {
		t.Fatalf("expected ctrl+c force quit binding")
	}
	if km.LoadNew.Keys()[0] != "n" || km.ToggleMode.Keys()[0] != "m" || km.Like.Keys()[0] != "l" {
		t.Fatalf("unexpected feed bindings")
	}
	if km.NextTab.Keys()[0] != "tab" || km.PrevTab.Keys()[0] != "shift+tab" {
		t.Fatalf("unexpected tab bindings")
	}
}

func TestDefaultKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]string{}
	for name, b := range map[string][]string{
		"quit": km.Quit.Keys(), "force": km.ForceQuit.Keys(), "refresh": km.Refresh.Keys(),
		"like": km.Like.Keys(), "loadnew": km.LoadNew.Keys(), "next": km.NextTab.Keys(),
		"prev": km.PrevTab.Keys(), "mode": km.ToggleMode.Keys(), "verified": km.Verified.Keys(),
		"query": km.Query.Keys(), "market": km.Market.Keys(), "sentiment": km.Sentiment.Keys(),
		"price": km.Price.Keys(), "period": km.Period.Keys(), "clear": km.Clear.Keys(),
		"open": km.Open.Keys(), "up": km.Up.Keys(), "down": km.Down.Keys(),
		"home": km.Home.Keys(), "hints": km.ToggleHints.Keys(),
	} {
		for _, k := range b {
			if other, dup := seen[k]; dup {
				t.Fatalf("key %q bound to both %s and %s", k, other, name)
			}
			seen[k] = name
		}
	}
}
