package models

import "strings"

// ProgressType says what unit a goal's effort is measured in. It is
// advisory only; the accounting never looks at it.
type ProgressType string

const (
	ProgressDuration ProgressType = "dur"
	ProgressCount    ProgressType = "cnt"
)

// NormalizeProgressType lower-cases the incoming value and reports
// whether it is one of the recognized types.
func NormalizeProgressType(value string) (ProgressType, bool) {
	pt := ProgressType(strings.ToLower(strings.TrimSpace(value)))
	switch pt {
	case ProgressDuration, ProgressCount:
		return pt, true
	}
	return "", false
}
