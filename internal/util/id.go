package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record id prefixes.
const (
	PrefixRegularSale = "WNS-R"
	PrefixManualSale  = "WNS-M"
	PrefixExpense     = "EXP"
	PrefixMenuItem    = "item"
	PrefixCartLine    = "line"
)

// Clock supplies the current instant. Reports never read it, they always
// take an explicit reference date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now in a fixed location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// NewID builds "<prefix>-<unix millis>-<5 random chars>". Only uniqueness
// is promised; the timestamp is there for people reading the ledger.
func NewID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), strings.ToUpper(suffix))
}
