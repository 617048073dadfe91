package worker

import (
	"strings"
	"testing"
)

func TestEstimateEnergy_RejectsNonAudio(t *testing.T) {
	if _, err := estimateEnergy(strings.NewReader("definitely not an mp3 stream")); err == nil {
		t.Fatal("expected a decode error for non-audio input")
	}
}
