package styles

import "testing"

func TestPaletteFor(t *testing.T) {
	tests := []struct {
		theme       string
		wantPrimary string
	}{
		{"default", "#A78BFA"},
		{"nord", "#88C0D0"},
		{"dracula", "#BD93F9"},
		{"unknown", "#A78BFA"}, // falls back to default
		{"", "#A78BFA"},
	}

	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			got := PaletteFor(tt.theme)
			if string(got.Primary) != tt.wantPrimary {
				t.Errorf("PaletteFor(%q).Primary = %q, want %q", tt.theme, got.Primary, tt.wantPrimary)
			}
		})
	}
}
