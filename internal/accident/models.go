// Package accident provides accident incident records and their severity
// scale. Record severity (Low/Medium/High/Critical) is a distinct scale
// from alert severity; the two are never compared directly.
package accident

import (
	"time"

	"github.com/zoneguard/zoneguard/internal/zone"
)

// Severity classifies one incident.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// severityRanks orders record severities for comparisons within this scale.
var severityRanks = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the ordering rank of the severity, 0 for unknown values.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// Record is one accident incident. Immutable; the engine only reads it.
type Record struct {
	ID          string
	Zone        zone.ID
	Severity    Severity
	Description string
	Timestamp   time.Time
}
