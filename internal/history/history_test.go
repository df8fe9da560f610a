package history

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer repo.Close()

	runs := []Run{
		{DeckPath: "a.pptx", OutputPath: "a.mp4", Segments: 3, Duration: 12.5, Status: "ok"},
		{DeckPath: "b.pptx", OutputPath: "b.mp4", Segments: 0, Duration: 0, Status: "failed", Error: "speech synthesis failed"},
	}
	for _, run := range runs {
		if err := repo.Record(ctx, run); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, want 2", len(got))
	}

	// Newest first
	if got[0].DeckPath != "b.pptx" || got[0].Status != "failed" {
		t.Errorf("first run = %+v, want b.pptx/failed", got[0])
	}
	if got[1].DeckPath != "a.pptx" || got[1].Segments != 3 {
		t.Errorf("second run = %+v, want a.pptx with 3 segments", got[1])
	}
	if got[0].CreatedAt == "" {
		t.Error("CreatedAt not populated")
	}
}

func TestListLimit(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()

	for i := 0; i < 5; i++ {
		if err := repo.Record(ctx, Run{DeckPath: "d.pptx", OutputPath: "o.mp4", Status: "ok"}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d runs, want 2", len(got))
	}
}
