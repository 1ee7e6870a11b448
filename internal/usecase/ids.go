package usecase

import (
	"strconv"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const idSuffixLen = 9

// newItemID joins the creation time in milliseconds with a short random suffix.
func newItemID(now time.Time) string {
	suffix := shortuuid.New()
	if len(suffix) > idSuffixLen {
		suffix = suffix[:idSuffixLen]
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + suffix
}
