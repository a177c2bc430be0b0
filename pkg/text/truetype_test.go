package text

import (
	"path/filepath"
	"testing"
)

func TestTrueType_GoFonts(t *testing.T) {
	tt, err := NewTrueType(FontConfig{})
	if err != nil {
		t.Fatalf("NewTrueType: %v", err)
	}

	regular := tt.Font(FontKey{Size: 16, Weight: "normal", Style: "normal"})
	bold := tt.Font(FontKey{Size: 16, Weight: "bold", Style: "normal"})
	large := tt.Font(FontKey{Size: 32, Weight: "normal", Style: "normal"})

	w := regular.Measure("hello")
	if w <= 0 {
		t.Fatalf("expected positive width, got %v", w)
	}
	if bold.Measure("hello") == w {
		t.Error("bold and regular should measure differently")
	}
	if large.Measure("hello") <= w {
		t.Error("larger size should be wider")
	}
	if regular.Measure("") != 0 {
		t.Error("empty string should have zero width")
	}

	m := regular.Metrics()
	if m.Ascent <= 0 || m.Descent <= 0 || m.Linespace < m.Ascent {
		t.Errorf("implausible metrics %+v", m)
	}
}

func TestTrueType_FontFaceIsShared(t *testing.T) {
	tt, err := NewTrueType(FontConfig{})
	if err != nil {
		t.Fatalf("NewTrueType: %v", err)
	}
	key := FontKey{Size: 14, Weight: "normal", Style: "italic"}
	if tt.FontFace(key) != tt.FontFace(key) {
		t.Error("expected FontFace to reuse faces")
	}
}

func TestTrueType_MissingFile(t *testing.T) {
	_, err := NewTrueType(FontConfig{Regular: filepath.Join(t.TempDir(), "missing.ttf")})
	if err == nil {
		t.Fatal("expected an error for a missing font file")
	}
}
