package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatFare renders a fare as "Rs 1,250.00".
func FormatFare(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(math.Floor(amount))
	paise := int64(math.Round((amount - float64(whole)) * 100))
	if paise == 100 {
		whole++
		paise = 0
	}
	return fmt.Sprintf("%sRs %s.%02d", sign, formatThousand(whole), paise)
}

// ParseAmount parses "1,250.50" or "Rs 1250" into a float.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "rs")
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	return strconv.ParseFloat(s, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
