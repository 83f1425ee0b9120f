package service

import (
	"fmt"
	"strings"
)

// formatCurrency renders a float amount with two decimals and a comma
// decimal separator, e.g. 15.9 -> "15,90"
func formatCurrency(v float64) string {
	return strings.Replace(fmt.Sprintf("%.2f", v), ".", ",", 1)
}
