package util

import "fmt"

// Human formats a byte count using binary units.
func Human(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.2f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
	case n < 0:
		return "0 B"
	default:
		return fmt.Sprintf("%d B", n)
	}
}
