package domain

import "fmt"

var floorOrdinals = []string{"Ground", "First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth", "Ninth"}

// FloorLabel names a floor index the way budget breakdowns do:
// 0 is "Foundation", 1 is "Ground Floor", 2 is "First Floor" and so on.
func FloorLabel(floor int) string {
	if floor <= 0 {
		return "Foundation"
	}
	if floor-1 < len(floorOrdinals) {
		return floorOrdinals[floor-1] + " Floor"
	}
	return fmt.Sprintf("Floor %d", floor)
}
