// Package codegen emits designed coefficient tables as Go source text.
//
// The output is the contract between the offline design tool and the
// real-time engine that compiles the tables in: a comment documenting the
// normalized pass and stop bands, a length constant, and a fixed-size array
// holding the taps. Identical inputs always produce byte-identical text so
// regenerated artifacts diff cleanly under version control.
package codegen

import (
	"fmt"
	"io"
	"strconv"
)

// Float formatting: shortest representation that round-trips to the exact
// float64 value.
const (
	floatFormat    = 'g'
	floatPrecision = -1
	floatBits      = 64
)

// Bands holds the normalized band annotation written above each table,
// in cycles-per-sample units (band edges divided by the sample rate).
type Bands struct {
	PassLow  float64
	PassHigh float64
	StopLow  float64
	StopHigh float64
}

// WriteFileHeader writes the generated-file marker and package clause.
func WriteFileHeader(w io.Writer, tool, pkg string) error {
	_, err := fmt.Fprintf(w, "// Code generated by %s. DO NOT EDIT.\n\npackage %s\n", tool, pkg)
	return err
}

// WriteTable writes one coefficient table declaration: the band comment, a
// <name>Len constant, and a [<name>Len]float64 array with the taps in order.
func WriteTable(w io.Writer, name string, coeffs []float64, bands Bands) error {
	if name == "" {
		return fmt.Errorf("codegen: empty table name")
	}
	if len(coeffs) == 0 {
		return fmt.Errorf("codegen: table %s has no coefficients", name)
	}

	_, err := fmt.Fprintf(w, "\n// pass-band: %s..%s\n// stop-band: %s..%s\nconst %sLen = %d\n\nvar %s = [%sLen]float64{\n",
		formatFloat(bands.PassLow), formatFloat(bands.PassHigh),
		formatFloat(bands.StopLow), formatFloat(bands.StopHigh),
		name, len(coeffs), name, name)
	if err != nil {
		return fmt.Errorf("codegen: table %s: %w", name, err)
	}

	for _, c := range coeffs {
		if _, err := fmt.Fprintf(w, "\t%s,\n", formatFloat(c)); err != nil {
			return fmt.Errorf("codegen: table %s: %w", name, err)
		}
	}
	if _, err := io.WriteString(w, "}\n"); err != nil {
		return fmt.Errorf("codegen: table %s: %w", name, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, floatFormat, floatPrecision, floatBits)
}
