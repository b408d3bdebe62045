package domain

import "testing"

func TestThemeFor_FallsBackToDefault(t *testing.T) {
	if got := ThemeFor("ocean"); got.Name != "Ocean" {
		t.Errorf("expected Ocean, got %s", got.Name)
	}

	fallback := ThemeFor("does-not-exist")
	if fallback.Name != Themes[DefaultTheme].Name {
		t.Errorf("unknown selector must fall back to %s, got %s", DefaultTheme, fallback.Name)
	}
}

func TestReservedUsernames(t *testing.T) {
	if !IsReservedUsername("dashboard", false) {
		t.Error("dashboard must be reserved")
	}
	if IsReservedUsername("admin", false) {
		t.Error("admin is routable as a profile, only registration rejects it")
	}
	if !IsReservedUsername("admin", true) {
		t.Error("admin must be rejected at registration")
	}
	if IsReservedUsername("alice", true) {
		t.Error("ordinary names are not reserved")
	}
}
