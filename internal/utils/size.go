package utils

import (
	"fmt"
	"strings"
)

var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// FormatByteSize converts a byte count into a short binary-unit string such as "19.5 KiB".
func FormatByteSize(bytes int64) string {
	if bytes < 1024 {
		if bytes < 0 {
			bytes = 0
		}
		return fmt.Sprintf("%d B", bytes)
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(byteUnits)-1 {
		value /= 1024
		unitIndex++
	}
	formatted := strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0")
	return formatted + " " + byteUnits[unitIndex]
}
