package ui

import (
	"fmt"
	"time"

	"github.com/KIRKR101/Streamline/internal/dispatch"

	"github.com/dustin/go-humanize"
)

// ShowSendSummary prints the per-file results of a send run.
func ShowSendSummary(results []dispatch.Result) {
	var sent, failed int
	fmt.Printf("=============================================\n")
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("x %s: %v\n", r.Path, r.Err)
			continue
		}
		sent++
		fmt.Printf("+ %s: %s in %s (%s/s)\n",
			r.Outcome.FileName,
			humanize.Bytes(r.Outcome.Bytes),
			r.Outcome.Elapsed.Round(time.Millisecond),
			humanize.Bytes(uint64(r.Outcome.Throughput)),
		)
	}
	fmt.Printf("%d sent, %d failed\n", sent, failed)
	fmt.Printf("=============================================\n")
}
