package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/showatlas/showatlas/internal/model"
)

var feeAmountRe = regexp.MustCompile(`[$]?\s*(\d+(?:\.\d{1,2})?)`)

// freeWords are entry-fee spellings that mean no charge.
var freeWords = map[string]bool{
	"free": true,
	"none": true,
	"n/a":  true,
}

// ParseEntryFee converts a free-text entry fee to an amount. "free"/"none"/
// "n/a" (any case) mean zero; otherwise the first numeric token, optionally
// preceded by a currency symbol, is the amount. Text with no number keeps
// the original wording as the description with a nil amount.
func ParseEntryFee(raw string) model.EntryFee {
	var fee model.EntryFee

	s := strings.TrimSpace(raw)
	if s == "" {
		return fee
	}

	if freeWords[strings.ToLower(s)] {
		zero := 0.0
		fee.Amount = &zero
		return fee
	}

	if m := feeAmountRe.FindStringSubmatch(s); m != nil {
		if amount, err := strconv.ParseFloat(m[1], 64); err == nil {
			fee.Amount = &amount
			return fee
		}
	}

	fee.Description = s
	return fee
}
