package history

import "context"

// Run is one recorded conversion run.
type Run struct {
	ID         int64
	DeckPath   string
	OutputPath string
	Segments   int
	Duration   float64 // final program duration, seconds
	Status     string  // "ok" or "failed"
	Error      string
	CreatedAt  string
}

// Recorder persists conversion runs.
type Recorder interface {
	Record(ctx context.Context, run Run) error
}
