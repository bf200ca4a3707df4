package models

import "time"

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
	TrendNew       Trend = "new"
)

// Behavior is a named recurring pattern. Membership is not stored here; it is
// derived from entries whose BehaviorID matches.
type Behavior struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Category  Category  `json:"category" yaml:"category"`
	Triggers  []string  `json:"triggers" yaml:"triggers"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type BehaviorPatch struct {
	Name     *string
	Category *Category
	Triggers *[]string
}

func (p BehaviorPatch) Apply(b *Behavior) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Triggers != nil {
		b.Triggers = *p.Triggers
	}
}

// BehaviorStats is derived from the entries linked to a behavior and never
// persisted.
type BehaviorStats struct {
	TotalEntries    int        `json:"totalEntries" yaml:"totalEntries"`
	ResistedCount   int        `json:"resistedCount" yaml:"resistedCount"`
	DidItCount      int        `json:"didItCount" yaml:"didItCount"`
	ReflectionCount int        `json:"reflectionCount" yaml:"reflectionCount"`
	SuccessRate     int        `json:"successRate" yaml:"successRate"`
	LastEntryDate   *time.Time `json:"lastEntryDate" yaml:"lastEntryDate"`
	FirstEntryDate  *time.Time `json:"firstEntryDate" yaml:"firstEntryDate"`
	Trend           Trend      `json:"trend" yaml:"trend"`
}

// BehaviorWithStats pairs a behavior with its current stats.
type BehaviorWithStats struct {
	Behavior Behavior      `json:"behavior" yaml:"behavior"`
	Stats    BehaviorStats `json:"stats" yaml:"stats"`
}
