package humanize

import "fmt"

// Size formats a byte count using binary units.
func Size(i int64) string {
	switch {
	case i < 1024:
		return fmt.Sprintf("%dB", i)
	case i < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(i)/1024)
	case i < 1024*1024*1024:
		return fmt.Sprintf("%.1fMB", float64(i)/(1024*1024))
	default:
		return fmt.Sprintf("%.1fGB", float64(i)/(1024*1024*1024))
	}
}
