package models

import "time"

type MemoOutcome string

const (
	OutcomeDidAgain   MemoOutcome = "did-again"
	OutcomeResisted   MemoOutcome = "resisted"
	OutcomeReflecting MemoOutcome = "reflecting"
)

var MemoOutcomes = []MemoOutcome{OutcomeDidAgain, OutcomeResisted, OutcomeReflecting}

// Memo is a follow-up annotation owned by exactly one Entry.
type Memo struct {
	ID        string         `json:"id" yaml:"id"`
	Outcome   MemoOutcome    `json:"outcome" yaml:"outcome"`
	Feeling   PhysicalRating `json:"feeling" yaml:"feeling"`
	Note      string         `json:"note" yaml:"note"`
	CreatedAt time.Time      `json:"createdAt" yaml:"createdAt"`
	IsStarred bool           `json:"isStarred" yaml:"isStarred"`
	IsHidden  bool           `json:"isHidden" yaml:"isHidden"`
}

type NewMemo struct {
	Outcome MemoOutcome
	Feeling PhysicalRating
	Note    string
}

type MemoPatch struct {
	Outcome   *MemoOutcome
	Feeling   *PhysicalRating
	Note      *string
	IsStarred *bool
	IsHidden  *bool
}

func (p MemoPatch) Apply(m *Memo) {
	if p.Outcome != nil {
		m.Outcome = *p.Outcome
	}
	if p.Feeling != nil {
		m.Feeling = *p.Feeling
	}
	if p.Note != nil {
		m.Note = *p.Note
	}
	if p.IsStarred != nil {
		m.IsStarred = *p.IsStarred
	}
	if p.IsHidden != nil {
		m.IsHidden = *p.IsHidden
	}
}
