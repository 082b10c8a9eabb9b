package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/owicyfa/Transactions-scanner/scanner"
)

const DefaultTopCallers = 3

// Print writes the ranked scan summary to w. Results are ordered by trace
// count, busiest first; equal counts keep their scan order.
func Print(w io.Writer, rep *scanner.Report, top int) error {
	if top <= 0 {
		top = DefaultTopCallers
	}
	p := &printer{w: w}

	p.printf("\n\nRESULTS:\n\n")
	if len(rep.Results) == 0 {
		p.printf("No activity found\n")
	} else {
		for _, r := range Rank(rep.Results) {
			p.printf("\n%s: %d traces, %d callers\n", r.Address.Hex(), r.TraceCount, r.UniqueCallers)
			for _, c := range scanner.TopCallers(r.Callers, top) {
				p.printf("  %s (%s) - %d calls\n", c.Address.Hex(), c.Kind(), c.Count)
			}
		}
	}
	p.printf("\n\nTotal: %d/%d active addresses\n", rep.Active(), rep.Targets)
	return p.err
}

// Rank returns a copy of results sorted by trace count, descending.
func Rank(results []scanner.ScanResult) []scanner.ScanResult {
	ranked := make([]scanner.ScanResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TraceCount > ranked[j].TraceCount
	})
	return ranked
}

// printer keeps the first write error so Print can report it once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
