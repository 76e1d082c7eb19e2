package market

import "fmt"

// Timeline returns the minute stamps of one trading session: every minute
// from 09:01 through 15:20, plus the 15:30 closing auction slot. Stamps use
// the compact "HHMM" form that the minute archives are keyed by.
func Timeline() []string {
	stamps := make([]string, 0, 381)
	for h := 9; h <= 15; h++ {
		for m := 0; m < 60; m++ {
			if h == 9 && m == 0 {
				continue
			}
			if h == 15 && m > 20 {
				break
			}
			stamps = append(stamps, fmt.Sprintf("%02d%02d", h, m))
		}
	}
	stamps = append(stamps, "1530")
	return stamps
}
