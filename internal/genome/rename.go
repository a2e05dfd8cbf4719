package genome

import "fmt"

// Assign gives each accepted genome its systematic name. Ordinals follow the
// arrival order of the accepted genomes (list-file order, post-filter),
// starting at 1 and zero-padded to the width of the batch size, so re-running
// with the same list and thresholds reproduces identical names. The date
// component is omitted when date is empty: "EXAM.1" for a batch of one,
// "EXAM.0417.01" with a date and tens of genomes.
func Assign(accepted []Record, prefix, date string) map[string]string {
	width := 1
	for n := len(accepted); n > 9; n /= 10 {
		width++
	}

	names := make(map[string]string, len(accepted))
	for i, r := range accepted {
		if date == "" {
			names[r.ID] = fmt.Sprintf("%s.%0*d", prefix, width, i+1)
		} else {
			names[r.ID] = fmt.Sprintf("%s.%s.%0*d", prefix, date, width, i+1)
		}
	}

	return names
}
