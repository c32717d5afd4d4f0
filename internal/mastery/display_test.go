package mastery

import (
	"testing"

	"github.com/Stohl/tsp-skolan-sub000/internal/progress"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		rec  progress.Record
		want string
	}{
		{progress.Default(), "unmarked"},
		{progress.Record{Level: progress.Learning, Points: 3}, "learning 3/5"},
		{progress.Record{Level: progress.Learned, Points: 5}, "learned"},
		{progress.Record{Level: progress.Level(9)}, "level(9)"},
	}
	for _, tt := range tests {
		if got := Label(tt.rec); got != tt.want {
			t.Errorf("Label(%+v) = %q, want %q", tt.rec, got, tt.want)
		}
	}
}

func TestAccuracy(t *testing.T) {
	if got := Accuracy(progress.Stats{}); got != 0 {
		t.Errorf("Accuracy(no attempts) = %v, want 0", got)
	}
	if got := Accuracy(progress.Stats{Correct: 3, Incorrect: 1}); got != 0.75 {
		t.Errorf("Accuracy(3/4) = %v, want 0.75", got)
	}
}
