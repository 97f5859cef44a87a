// Command filter-wav runs a WAV file through a freshly designed
// anti-aliasing lowpass, consuming the coefficient table the same way the
// real-time engine does: one sample per step through a ring-buffer delay
// line.
//
// Usage:
//
//	filter-wav input.wav output.wav
//	filter-wav -taps 127 -pass 0.3 -stop 0.4 input.wav output.wav
//	filter-wav -linear-phase input.wav output.wav
//
// Band edges are given as fractions of the file's sample rate, 0.5 being
// Nyquist.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	firdesign "github.com/tphakala/go-fir-designer"
	"github.com/tphakala/go-fir-designer/delay"
)

const (
	// Filter design defaults
	defaultTaps     = 63
	defaultPassFrac = 0.35
	defaultStopFrac = 0.45
	passWeight      = 1.0
	stopWeight      = 100.0
	designMaxIter   = 2000

	// PCM full-scale values per bit depth
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// Required positional arguments: input and output paths
	requiredArgs = 2

	// WAV audio format tag for PCM
	wavFormatPCM = 1
)

// firLine convolves a sample stream with a coefficient table through a
// ring-buffer delay line.
type firLine struct {
	line    *delay.RingBuffer
	taps    []float64
	history []float64
}

func newFIRLine(taps []float64) *firLine {
	return &firLine{
		line:    delay.NewRingBuffer(len(taps) - 1),
		taps:    taps,
		history: make([]float64, len(taps)),
	}
}

// process pushes one input sample and returns one filtered output sample.
func (f *firLine) process(x float64) float64 {
	f.line.Push(x)
	for d := range f.history {
		f.history[d] = f.line.Tap(d)
	}
	return f64.DotProductUnsafe(f.history, f.taps)
}

func main() {
	var (
		numTaps     = flag.Int("taps", defaultTaps, "Filter length in taps")
		passFrac    = flag.Float64("pass", defaultPassFrac, "Passband edge as a fraction of the sample rate")
		stopFrac    = flag.Float64("stop", defaultStopFrac, "Stopband edge as a fraction of the sample rate")
		linearPhase = flag.Bool("linear-phase", false, "Use the symmetric linear-phase filter instead of minimum phase")
	)
	flag.Parse()

	if flag.NArg() != requiredArgs {
		log.Fatalf("usage: filter-wav [flags] input.wav output.wav")
	}
	inPath, outPath := flag.Arg(0), flag.Arg(1)

	inFile, err := os.Open(inPath)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer inFile.Close()

	decoder := wav.NewDecoder(inFile)
	if !decoder.IsValidFile() {
		log.Fatalf("invalid WAV file: %s", inPath)
	}
	pcm, err := decoder.FullPCMBuffer()
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	sampleRate := pcm.Format.SampleRate
	channels := pcm.Format.NumChannels
	bitDepth := int(decoder.BitDepth)
	fullScale, err := fullScaleFor(bitDepth)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stderr, "%s: %d Hz, %d channels, %d-bit, %d frames\n",
		inPath, sampleRate, channels, bitDepth, len(pcm.Data)/channels)

	table, err := designFilter(*numTaps, *passFrac, *stopFrac, float64(sampleRate), *linearPhase)
	if err != nil {
		log.Fatalf("design filter: %v", err)
	}
	fmt.Fprintf(os.Stderr, "filter: %d taps, pass %g..%g, stop %g..%g (normalized)\n",
		table.Len(), table.PassBand[0], table.PassBand[1], table.StopBand[0], table.StopBand[1])

	// One independent delay line per channel; lines are single-owner.
	lines := make([]*firLine, channels)
	for ch := range lines {
		lines[ch] = newFIRLine(table.Coefficients)
	}

	out := &audio.IntBuffer{
		Format:         pcm.Format,
		Data:           make([]int, len(pcm.Data)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range pcm.Data {
		x := float64(v) / fullScale
		y := lines[i%channels].process(x)
		out.Data[i] = clampPCM(y*fullScale, fullScale)
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer outFile.Close()

	encoder := wav.NewEncoder(outFile, sampleRate, bitDepth, channels, wavFormatPCM)
	if err := encoder.Write(out); err != nil {
		log.Fatalf("write output: %v", err)
	}
	if err := encoder.Close(); err != nil {
		log.Fatalf("finalize output: %v", err)
	}
}

func designFilter(numTaps int, passFrac, stopFrac, sampleRate float64, linearPhase bool) (*firdesign.CoefficientTable, error) {
	spec := firdesign.Specification{
		NumTaps:     numTaps,
		BandEdges:   [4]float64{0, passFrac * sampleRate, stopFrac * sampleRate, sampleRate / 2},
		BandGains:   [2]float64{1, 0},
		BandWeights: [2]float64{passWeight, stopWeight},
		SampleRate:  sampleRate,
	}
	opts := firdesign.Options{MaxIterations: designMaxIter}

	if linearPhase {
		return firdesign.DesignLinearPhase(spec, opts)
	}
	return firdesign.Design(spec, opts)
}

func fullScaleFor(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16:
		return maxInt16, nil
	case 24:
		return maxInt24, nil
	case 32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// clampPCM rounds and saturates a sample to the integer PCM range.
func clampPCM(v, fullScale float64) int {
	if v > fullScale {
		v = fullScale
	}
	if v < -fullScale-1 {
		v = -fullScale - 1
	}
	if v >= 0 {
		return int(v + 0.5)
	}
	return int(v - 0.5)
}
