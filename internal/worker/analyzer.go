package worker

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

const (
	fetchTimeout = 15 * time.Second
	// chunkSize is the read granularity for decoded PCM; an even size keeps
	// 16-bit samples from straddling reads.
	chunkSize = 8192

	fullScale = 32768.0
)

var previewClient = &http.Client{Timeout: fetchTimeout}

// AnalyzePreviewFunc estimates a track's energy from its preview audio.
// It is a variable so tests can substitute the network-and-decode path.
var AnalyzePreviewFunc = analyzePreview

func analyzePreview(url string) (float64, error) {
	resp, err := previewClient.Get(url)
	if err != nil {
		return 0, fmt.Errorf("worker: fetch preview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("worker: fetch preview: status %d", resp.StatusCode)
	}

	return estimateEnergy(resp.Body)
}

// estimateEnergy decodes an MP3 stream and reduces it to a single energy
// value in [0,1]: the RMS amplitude of the 16-bit PCM samples relative to
// full scale. Loud, dense audio lands near 1; quiet ambient material near 0.
func estimateEnergy(r io.Reader) (float64, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return 0, fmt.Errorf("worker: decode preview: %w", err)
	}

	var sumSquares float64
	var samples int64

	chunk := make([]byte, chunkSize)
	for {
		n, readErr := decoder.Read(chunk)
		for i := 0; i+1 < n; i += 2 {
			s := float64(int16(binary.LittleEndian.Uint16(chunk[i:])))
			sumSquares += s * s
			samples++
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return 0, fmt.Errorf("worker: read preview samples: %w", readErr)
		}
	}

	if samples == 0 {
		return 0, fmt.Errorf("worker: preview contains no samples")
	}

	energy := math.Sqrt(sumSquares/float64(samples)) / fullScale
	if energy > 1 {
		energy = 1
	}
	return energy, nil
}
