package main

import (
	"fmt"
	"io"
	"sync"

	"sigview/internal/dataset"
	"sigview/internal/logging"
)

// newProgressPrinter returns an assembly progress callback that redraws a
// single status line on interactive terminals. It returns nil otherwise so
// piped output stays clean.
func newProgressPrinter(w io.Writer) func(dataset.Progress) {
	if !shouldColorize(w) {
		return nil
	}
	sampler := logging.NewProgressSampler(5)
	var mu sync.Mutex
	return func(p dataset.Progress) {
		if p.Total <= 0 {
			return
		}
		percent := float64(p.Processed) * 100 / float64(p.Total)
		if p.Processed < p.Total && !sampler.ShouldLog(percent, "assemble") {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "\r%s", progressLine(p))
		if p.Processed >= p.Total {
			fmt.Fprintln(w)
		}
	}
}

func progressLine(p dataset.Progress) string {
	percent := 0.0
	if p.Total > 0 {
		percent = float64(p.Processed) * 100 / float64(p.Total)
	}
	return fmt.Sprintf("Parsing metadata: %d/%d files (%.0f%%, %d failed)", p.Processed, p.Total, percent, p.Failed)
}
