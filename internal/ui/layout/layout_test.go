package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader_Stats(t *testing.T) {
	h := RenderHeader("Home", &Stats{XP: 130, Streak: 1}, 80)
	if !strings.Contains(h, "130 XP") {
		t.Errorf("header %q missing XP", h)
	}
	if !strings.Contains(h, "Rani") {
		t.Errorf("header %q missing app name", h)
	}
}

func TestRenderHeader_NoStatsBeforeLogin(t *testing.T) {
	h := RenderHeader("Login", nil, 80)
	if strings.Contains(h, "XP") {
		t.Errorf("header %q should not show XP without a profile", h)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{MinWidth, MinHeight, false},
		{MinWidth - 1, 40, true},
		{100, MinHeight - 1, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	header := RenderHeader("x", nil, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	if got := ContentHeight(header, footer, 24); got != 18 {
		t.Errorf("ContentHeight = %d, want 18", got)
	}
	if got := ContentHeight(header, footer, 2); got != 0 {
		t.Errorf("ContentHeight = %d, want 0", got)
	}
}
