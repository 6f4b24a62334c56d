package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// INR formats an amount in whole rupees with Indian digit grouping,
// e.g. 254000 -> "₹2,54,000".
func INR(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "₹" + groupIndian(strconv.FormatInt(n, 10))
}

// groupIndian places a comma before the last three digits and then every
// two digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// Quantity prints whole numbers without decimals and everything else with
// up to two.
func Quantity(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Delta renders a signed change, green when it is a reduction and red when
// it is an increase. Zero renders dim.
func Delta(v float64, format func(float64) string) string {
	switch {
	case v > 0:
		return StyleRed.Render("+" + format(v))
	case v < 0:
		return StyleGreen.Render("-" + format(-v))
	default:
		return StyleDim.Render(format(0))
	}
}

// Area formats square feet with Indian grouping.
func Area(sqft float64) string {
	return fmt.Sprintf("%s sq. ft.", groupIndian(strconv.FormatInt(int64(math.Round(sqft)), 10)))
}

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders a bar like ████░░░░ 41% for a fraction of a whole.
func RenderShare(frac float64, width int) string {
	frac = min(max(frac, 0), 1)
	width = max(width, 2)
	filled := min(int(math.Round(frac*float64(width))), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("%s %3.0f%%", StyleBlue.Render(bar), frac*100)
}
