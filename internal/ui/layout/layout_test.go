package layout

import (
	"strings"
	"testing"
)

func TestWindow(t *testing.T) {
	content := "1\n2\n3\n4\n5"

	tests := []struct {
		name       string
		offset     int
		height     int
		want       string
		wantOffset int
	}{
		{"top", 0, 2, "1\n2", 0},
		{"middle", 2, 2, "3\n4", 2},
		{"clamped to last page", 10, 2, "4\n5", 3},
		{"negative offset", -3, 2, "1\n2", 0},
		{"taller than content", 1, 10, "1\n2\n3\n4\n5", 0},
		{"zero height", 1, 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, off := Window(content, tt.offset, tt.height)
			if got != tt.want || off != tt.wantOffset {
				t.Errorf("Window(%d, %d) = (%q, %d), want (%q, %d)",
					tt.offset, tt.height, got, off, tt.want, tt.wantOffset)
			}
		})
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("학습", "claude-3-opus-20240229", 100)
	for _, want := range []string{AppName, "학습", "claude-3-opus-20240229"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("expected narrow terminal to be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("expected minimum size to fit")
	}
}
