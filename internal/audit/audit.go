package audit

import (
	"context"
	"time"

	"github.com/pdro-dev/wheelscreener/internal/market"
)

// ScreeningRun is one completed screening pass, recorded for audit
type ScreeningRun struct {
	ID        string
	Filters   market.ScreeningFilters
	Scanned   int
	Matched   int
	Elapsed   time.Duration
	StartedAt time.Time
}

// Recorder persists screening runs. Implementations must tolerate a
// canceled context and should never block the request path for long.
type Recorder interface {
	RecordScreening(ctx context.Context, run ScreeningRun) error
	Close()
}

// Nop discards all records. Used when no database is configured
// and in tests.
type Nop struct{}

func NewNop() *Nop { return &Nop{} }

func (*Nop) RecordScreening(context.Context, ScreeningRun) error { return nil }

func (*Nop) Close() {}
