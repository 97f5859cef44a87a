package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	firdesign "github.com/tphakala/go-fir-designer"
)

// filterEntry is one filter in a bank file.
type filterEntry struct {
	Name          string    `yaml:"name"`
	NumTaps       int       `yaml:"num_taps"`
	SampleRate    float64   `yaml:"sample_rate"`
	BandEdges     []float64 `yaml:"band_edges"`
	BandGains     []float64 `yaml:"band_gains"`
	BandWeights   []float64 `yaml:"band_weights"`
	MaxIterations int       `yaml:"max_iterations"`
	NFFT          int       `yaml:"n_fft"`
	LinearPhase   bool      `yaml:"linear_phase"`
}

// bankFile is the YAML bank document: a list of filters to generate.
type bankFile struct {
	Filters []filterEntry `yaml:"filters"`
}

// loadBank reads and structurally checks a YAML bank file. Response
// invariants (edge ordering, weight positivity) are left to the design
// pipeline's own validation.
func loadBank(path string) ([]filterEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bank bankFile
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	for i, entry := range bank.Filters {
		if entry.Name == "" {
			return nil, fmt.Errorf("filter %d: missing name", i)
		}
		if len(entry.BandEdges) != 4 {
			return nil, fmt.Errorf("filter %q: need 4 band edges, got %d", entry.Name, len(entry.BandEdges))
		}
		if len(entry.BandGains) != 2 || len(entry.BandWeights) != 2 {
			return nil, fmt.Errorf("filter %q: need 2 band gains and 2 band weights", entry.Name)
		}
	}
	return bank.Filters, nil
}

// toSpec converts a bank entry into the design pipeline's inputs.
func (e filterEntry) toSpec() (firdesign.Specification, firdesign.Options) {
	spec := firdesign.Specification{
		NumTaps:     e.NumTaps,
		BandEdges:   [4]float64{e.BandEdges[0], e.BandEdges[1], e.BandEdges[2], e.BandEdges[3]},
		BandGains:   [2]float64{e.BandGains[0], e.BandGains[1]},
		BandWeights: [2]float64{e.BandWeights[0], e.BandWeights[1]},
		SampleRate:  e.SampleRate,
	}
	opts := firdesign.Options{
		MaxIterations: e.MaxIterations,
		NFFT:          e.NFFT,
	}
	return spec, opts
}

// defaultBank returns the built-in filter bank.
func defaultBank() []filterEntry {
	return []filterEntry{
		{
			Name:          "LPFir2xTo1xMinimum",
			NumTaps:       lp2xTo1xTaps,
			SampleRate:    lp2xTo1xSampleRate,
			BandEdges:     []float64{bankLowestEdge, lp2xTo1xPassHigh, lp2xTo1xStopLow, lp2xTo1xSampleRate / 2},
			BandGains:     []float64{passbandGain, stopbandGain},
			BandWeights:   []float64{passbandWeight, stopbandWeight},
			MaxIterations: bankMaxIter,
			NFFT:          bankNFFT,
		},
		{
			Name:          "LPFir4xTo2xMinimum",
			NumTaps:       lp4xTo2xTaps,
			SampleRate:    lp4xTo2xSampleRate,
			BandEdges:     []float64{bankLowestEdge, lp4xTo2xPassHigh, lp4xTo2xStopLow, lp4xTo2xSampleRate / 2},
			BandGains:     []float64{passbandGain, stopbandGain},
			BandWeights:   []float64{passbandWeight, stopbandWeight},
			MaxIterations: bankMaxIter,
			NFFT:          bankNFFT,
		},
	}
}
