// Command generate-filters synthesizes minimum-phase anti-aliasing FIR
// coefficient tables and writes them to stdout as Go source.
//
// Usage:
//
//	generate-filters > coefficients.go
//	generate-filters -bank filters.yaml -package coeffs > coefficients.go
//	generate-filters -linear-phase > coefficients.go
//
// Without -bank the built-in filter bank is generated: the 2x-to-1x and
// 4x-to-2x decimation lowpasses of the oversampled processing chain. All
// filters in the bank are designed before a single byte is emitted, so a
// failed design leaves the redirected artifact untouched.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	firdesign "github.com/tphakala/go-fir-designer"
	"github.com/tphakala/go-fir-designer/internal/codegen"
)

func main() {
	var (
		bankPath    = flag.String("bank", "", "YAML filter bank file (default: built-in bank)")
		pkgName     = flag.String("package", defaultPackageName, "Package name for the generated source")
		linearPhase = flag.Bool("linear-phase", false, "Skip minimum-phase conversion, emit the symmetric filters")
	)
	flag.Parse()

	entries := defaultBank()
	if *bankPath != "" {
		var err error
		entries, err = loadBank(*bankPath)
		if err != nil {
			log.Fatalf("bank %s: %v", *bankPath, err)
		}
	}
	if len(entries) == 0 {
		log.Fatalf("bank is empty, nothing to generate")
	}

	var buf bytes.Buffer
	if err := codegen.WriteFileHeader(&buf, toolName, *pkgName); err != nil {
		log.Fatalf("emit header: %v", err)
	}

	for _, entry := range entries {
		table, err := design(entry, *linearPhase)
		if err != nil {
			log.Fatalf("filter %q: %v", entry.Name, err)
		}
		fmt.Fprintf(os.Stderr, "%s: %d taps\n", entry.Name, table.Len())

		err = codegen.WriteTable(&buf, entry.Name, table.Coefficients, codegen.Bands{
			PassLow:  table.PassBand[0],
			PassHigh: table.PassBand[1],
			StopLow:  table.StopBand[0],
			StopHigh: table.StopBand[1],
		})
		if err != nil {
			log.Fatalf("filter %q: %v", entry.Name, err)
		}
	}

	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		log.Fatalf("write output: %v", err)
	}
}

func design(entry filterEntry, linearPhase bool) (*firdesign.CoefficientTable, error) {
	spec, opts := entry.toSpec()
	if linearPhase || entry.LinearPhase {
		return firdesign.DesignLinearPhase(spec, opts)
	}
	return firdesign.Design(spec, opts)
}
