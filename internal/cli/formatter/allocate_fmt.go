package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/buildplan/internal/allocation"
)

// FormatAllocation renders an allocator run: inputs, outputs and the
// resulting sums.
func FormatAllocation(current []float64, target float64, res allocation.Result) string {
	var b strings.Builder
	b.WriteString(Header("Allocation"))
	b.WriteString("\n")

	rows := make([][]string, 0, len(current))
	for i, q := range current {
		out := ""
		if i < len(res.Quantities) {
			out = Quantity(res.Quantities[i])
			if res.Quantities[i] != q {
				out = StyleBold.Render(out)
			}
		}
		rows = append(rows, []string{strconv.Itoa(i), Quantity(q), out})
	}
	rows = append(rows, []string{Dim("Σ"), Quantity(allocation.Sum(current)), Bold(Quantity(allocation.Sum(res.Quantities)))})
	b.WriteString(Table{
		Headers: []string{"#", "CURRENT", "ALLOCATED"},
		Rows:    rows,
		Align:   []Align{AlignRight, AlignRight, AlignRight},
	}.Render())

	outcome := StyleGreen.Render(string(res.Outcome))
	if !res.Changed() {
		outcome = StyleYellow.Render(string(res.Outcome))
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s", Dim("target"), Quantity(target), Dim("outcome"), outcome))
	return b.String()
}
