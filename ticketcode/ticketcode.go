// Package ticketcode derives the human-readable pass code printed on every
// ticket. The same derivation runs on the booking frontend, so the arithmetic
// is pinned to 32-bit signed wraparound: changing any step breaks code
// matching between already-issued passes and the server.
package ticketcode

import "fmt"

// Generate maps a booking id and a zero-based ticket index to a code of the
// form "ddd dddd ddd". It is total: any string and any index produce a code,
// and identical inputs always produce identical output.
func Generate(bookingID string, ticketIndex int) string {
	var hash int32
	for _, r := range bookingID {
		hash = hash*31 + int32(r)
	}

	combined := hash + int32(ticketIndex)*10000

	part1 := abs32(combined%900) + 100
	part2 := abs32((combined*7)%9000) + 1000
	part3 := abs32((combined*13)%900) + 100

	return fmt.Sprintf("%d %d %d", part1, part2, part3)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
