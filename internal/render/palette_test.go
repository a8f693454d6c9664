package render

import "testing"

func TestPalettes(t *testing.T) {
	for _, name := range PaletteNames() {
		p, ok := PaletteByName(name)
		if !ok {
			t.Fatalf("PaletteByName(%q) not found", name)
		}
		if p.Description == "" || p.Primary == "" || p.Error == "" || p.Text == "" || p.Border == "" {
			t.Errorf("palette %s has empty fields: %+v", name, p)
		}
		if !IsBuiltinStyle(p.MarkdownStyle) {
			t.Errorf("palette %s pairs with unknown style %q", name, p.MarkdownStyle)
		}
	}
}

func TestResolvePalette(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"dracula", "dracula"},
		{"paper", "paper"},
		{"", DefaultPalette},
		{"nonexistent", DefaultPalette},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePalette(tt.name).Name; got != tt.want {
				t.Errorf("ResolvePalette(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}
