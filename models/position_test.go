package models

import (
	"testing"
	"time"
)

func TestEffectiveStatusInvestorMaturity(t *testing.T) {
	maturity := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	pos := &Position{Mode: ModeInvestor, Status: StatusActive, MaturityAt: &maturity}

	if got := pos.EffectiveStatus(maturity.Add(-time.Minute)); got != StatusActive {
		t.Fatalf("before maturity = %s, want active", got)
	}
	// At the boundary instant the position already reads as matured.
	if got := pos.EffectiveStatus(maturity); got != StatusMatured {
		t.Fatalf("at maturity = %s, want matured", got)
	}
	if got := pos.EffectiveStatus(maturity.Add(time.Hour)); got != StatusMatured {
		t.Fatalf("past maturity = %s, want matured", got)
	}
}

func TestEffectiveStatusPassThrough(t *testing.T) {
	maturity := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	past := maturity.Add(time.Hour)

	closed := &Position{Mode: ModeInvestor, Status: StatusClosed, MaturityAt: &maturity}
	if got := closed.EffectiveStatus(past); got != StatusClosed {
		t.Fatalf("closed investor = %s, want closed", got)
	}
	worker := &Position{Mode: ModeWorker, Status: StatusActive}
	if got := worker.EffectiveStatus(past); got != StatusActive {
		t.Fatalf("worker = %s, want active", got)
	}
	paused := &Position{Mode: ModeWorker, Status: StatusPaused}
	if got := paused.EffectiveStatus(past); got != StatusPaused {
		t.Fatalf("paused worker = %s, want paused", got)
	}
	noMaturity := &Position{Mode: ModeInvestor, Status: StatusActive}
	if got := noMaturity.EffectiveStatus(past); got != StatusActive {
		t.Fatalf("investor without maturity date = %s, want active", got)
	}
}
