package watcher

import "testing"

func TestIsDeckFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"decks/talk.pptx", true},
		{"decks/TALK.PPTX", true},
		{"decks/~$talk.pptx", false},
		{"decks/.hidden.pptx", false},
		{"decks/talk.ppt", false},
		{"decks/notes.txt", false},
		{"decks/video.mp4", false},
	}

	for _, tt := range tests {
		if got := isDeckFile(tt.path); got != tt.want {
			t.Errorf("isDeckFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
