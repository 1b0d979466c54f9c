package notify

import (
	"testing"
	"time"

	"github.com/CiobanuAlexandruAndrei/GestionePromtec/internal/model"
)

func TestShowAndAutoHide(t *testing.T) {
	c := NewCenter()
	c.Show("Salvato", "Slot aggiornato", model.SeveritySuccess, 30*time.Millisecond)

	got := c.Current()
	if !got.Visible || got.Title != "Salvato" || got.Severity != model.SeveritySuccess {
		t.Fatalf("unexpected notification: %+v", got)
	}

	time.Sleep(120 * time.Millisecond)
	if c.Current().Visible {
		t.Fatalf("expected notification to auto-hide")
	}
}

func TestSecondShowCancelsFirstTimer(t *testing.T) {
	c := NewCenter()
	c.Show("Prima", "", model.SeverityInfo, 30*time.Millisecond)
	c.Show("Seconda", "", model.SeverityInfo, 500*time.Millisecond)

	// Well past the first duration, only the second governs dismissal.
	time.Sleep(150 * time.Millisecond)
	got := c.Current()
	if !got.Visible {
		t.Fatalf("first timer must not dismiss the second notification")
	}
	if got.Title != "Seconda" {
		t.Fatalf("expected latest notification, got %q", got.Title)
	}
}

func TestZeroDurationNeverAutoHides(t *testing.T) {
	c := NewCenter()
	c.Show("Errore", "Dettagli", model.SeverityError, 0)

	time.Sleep(80 * time.Millisecond)
	if !c.Current().Visible {
		t.Fatalf("duration 0 must not auto-hide")
	}

	c.Hide()
	if c.Current().Visible {
		t.Fatalf("explicit Hide must dismiss")
	}
}

func TestHideIsIdempotent(t *testing.T) {
	c := NewCenter()
	c.Hide()
	c.Hide()
	if c.Current().Visible {
		t.Fatalf("hidden center must stay hidden")
	}
}
