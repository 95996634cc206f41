package entities

import (
	"fmt"
	"time"
)

// UnknownDate is rendered whenever an optional date was never recorded.
// Distinct from a fetch failure, which surfaces as an error page instead.
const UnknownDate = "unknown"

// FormatDate renders a date as "<year>年<month>月<day>日", matching the
// localized display the catalog pages use. Nil dates render as UnknownDate.
func FormatDate(t *time.Time) string {
	if t == nil {
		return UnknownDate
	}
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}
