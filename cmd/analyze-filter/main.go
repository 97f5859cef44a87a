// Command analyze-filter designs a lowpass from command-line parameters and
// prints its gain response in dB, for eyeballing ripple and attenuation
// before committing a generated table.
package main

import (
	"flag"
	"fmt"
	"log"

	firdesign "github.com/tphakala/go-fir-designer"
)

const (
	// Design defaults matching the 4x-to-2x bank entry
	defaultTaps     = 63
	defaultPassFrac = 0.125
	defaultStopFrac = 0.25
	defaultPassW    = 0.01
	defaultStopW    = 1000.0
	designMaxIter   = 2000

	// Response resolution and table rows printed
	responsePoints = 1024
	printedRows    = 33
)

func main() {
	var (
		numTaps     = flag.Int("taps", defaultTaps, "Filter length in taps")
		passFrac    = flag.Float64("pass", defaultPassFrac, "Passband edge, fraction of sample rate")
		stopFrac    = flag.Float64("stop", defaultStopFrac, "Stopband edge, fraction of sample rate")
		passWeight  = flag.Float64("pass-weight", defaultPassW, "Passband error weight")
		stopWeight  = flag.Float64("stop-weight", defaultStopW, "Stopband error weight")
		linearPhase = flag.Bool("linear-phase", false, "Analyze the linear-phase filter instead of minimum phase")
	)
	flag.Parse()

	spec := firdesign.Specification{
		NumTaps:     *numTaps,
		BandEdges:   [4]float64{0, *passFrac, *stopFrac, 0.5},
		BandGains:   [2]float64{1, 0},
		BandWeights: [2]float64{*passWeight, *stopWeight},
		SampleRate:  1,
	}
	opts := firdesign.Options{MaxIterations: designMaxIter}

	var table *firdesign.CoefficientTable
	var err error
	if *linearPhase {
		table, err = firdesign.DesignLinearPhase(spec, opts)
	} else {
		table, err = firdesign.Design(spec, opts)
	}
	if err != nil {
		log.Fatalf("design: %v", err)
	}

	resp := firdesign.ComputeFrequencyResponse(table.Coefficients, responsePoints)

	fmt.Printf("%d taps, pass 0..%g, stop %g..0.5, DC gain %.6f\n\n",
		table.Len(), *passFrac, *stopFrac, table.DCGain())
	fmt.Printf("%12s  %10s\n", "freq", "gain dB")
	step := (len(resp.Frequencies) - 1) / (printedRows - 1)
	for i := 0; i < len(resp.Frequencies); i += step {
		fmt.Printf("%12.5f  %10.2f\n", resp.Frequencies[i], firdesign.MagnitudeDB(resp.Magnitude[i]))
	}

	printBandSummary(table, resp)
}

// printBandSummary reports worst-case deviation per band.
func printBandSummary(table *firdesign.CoefficientTable, resp firdesign.Response) {
	passWorst := 0.0
	stopWorst := -300.0
	for i, f := range resp.Frequencies {
		switch {
		case f >= table.PassBand[0] && f <= table.PassBand[1]:
			dev := resp.Magnitude[i] - 1
			if dev < 0 {
				dev = -dev
			}
			if dev > passWorst {
				passWorst = dev
			}
		case f >= table.StopBand[0] && f <= table.StopBand[1]:
			if db := firdesign.MagnitudeDB(resp.Magnitude[i]); db > stopWorst {
				stopWorst = db
			}
		}
	}

	fmt.Printf("\npassband ripple:      %.6f\n", passWorst)
	fmt.Printf("stopband attenuation: %.2f dB\n", stopWorst)
}
