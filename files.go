/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
)

// humanReadableSize formats a byte count with decimal (SI) prefixes.
func humanReadableSize(bytes int64) string {
	const unit = 1000

	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	value := float64(bytes)
	prefix := -1
	for value >= unit && prefix < len("kMGTPE")-1 {
		value /= unit
		prefix++
	}

	return fmt.Sprintf("%.1f %cB", value, "kMGTPE"[prefix])
}
