package models

import "time"

type Category string

const (
	CategoryFood   Category = "food"
	CategorySleep  Category = "sleep"
	CategoryHabit  Category = "habit"
	CategorySocial Category = "social"
	CategoryOther  Category = "other"
)

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeLateNight TimeOfDay = "late-night"
)

type PhysicalRating string

const (
	RatingFine  PhysicalRating = "fine"
	RatingMeh   PhysicalRating = "meh"
	RatingBad   PhysicalRating = "bad"
	RatingAwful PhysicalRating = "awful"
)

type WorthIt string

const (
	WorthItYes WorthIt = "yes"
	WorthItMeh WorthIt = "meh"
	WorthItNo  WorthIt = "no"
)

type EntryType string

const (
	EntryDidIt      EntryType = "did-it"
	EntryResisted   EntryType = "resisted"
	EntryReflection EntryType = "reflection"
)

// Categories, TimesOfDay etc. list the enumerations in display order.
var (
	Categories      = []Category{CategoryFood, CategorySleep, CategoryHabit, CategorySocial, CategoryOther}
	TimesOfDay      = []TimeOfDay{TimeMorning, TimeAfternoon, TimeEvening, TimeLateNight}
	PhysicalRatings = []PhysicalRating{RatingFine, RatingMeh, RatingBad, RatingAwful}
	WorthItOptions  = []WorthIt{WorthItYes, WorthItMeh, WorthItNo}
	EntryTypes      = []EntryType{EntryDidIt, EntryResisted, EntryReflection}
)

// EmotionTags is the suggested vocabulary for Entry.EmotionalTags.
// It is not enforced; entries may carry arbitrary tags.
var EmotionTags = []string{
	"regret", "tired", "anxious", "guilty", "satisfied", "energized", "calm", "stressed",
}

// Entry is one logged experience.
type Entry struct {
	ID             string         `json:"id" yaml:"id"`
	Action         string         `json:"action" yaml:"action"`
	Category       Category       `json:"category" yaml:"category"`
	Context        []TimeOfDay    `json:"context" yaml:"context"`
	PhysicalRating PhysicalRating `json:"physicalRating" yaml:"physicalRating"`
	EmotionalTags  []string       `json:"emotionalTags" yaml:"emotionalTags"`
	WorthIt        WorthIt        `json:"worthIt" yaml:"worthIt"`
	Note           string         `json:"note" yaml:"note"`
	CreatedAt      time.Time      `json:"createdAt" yaml:"createdAt"`
	EntryType      EntryType      `json:"entryType" yaml:"entryType"`
	BehaviorID     string         `json:"behaviorId,omitempty" yaml:"behaviorId,omitempty"`
	Memos          []Memo         `json:"memos" yaml:"memos"`
}

// NewEntry holds the caller-supplied fields of an entry; the store assigns
// the id, timestamp and memo list.
type NewEntry struct {
	Action         string
	Category       Category
	Context        []TimeOfDay
	PhysicalRating PhysicalRating
	EmotionalTags  []string
	WorthIt        WorthIt
	Note           string
	EntryType      EntryType
	BehaviorID     string
}

// EntryPatch is a partial update. Nil fields are left untouched; a
// BehaviorID pointing at "" unlinks the entry.
type EntryPatch struct {
	Action         *string
	Category       *Category
	Context        *[]TimeOfDay
	PhysicalRating *PhysicalRating
	EmotionalTags  *[]string
	WorthIt        *WorthIt
	Note           *string
	EntryType      *EntryType
	BehaviorID     *string
	Memos          *[]Memo
}

// Apply merges the patch into e.
func (p EntryPatch) Apply(e *Entry) {
	if p.Action != nil {
		e.Action = *p.Action
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Context != nil {
		e.Context = *p.Context
	}
	if p.PhysicalRating != nil {
		e.PhysicalRating = *p.PhysicalRating
	}
	if p.EmotionalTags != nil {
		e.EmotionalTags = *p.EmotionalTags
	}
	if p.WorthIt != nil {
		e.WorthIt = *p.WorthIt
	}
	if p.Note != nil {
		e.Note = *p.Note
	}
	if p.EntryType != nil {
		e.EntryType = *p.EntryType
	}
	if p.BehaviorID != nil {
		e.BehaviorID = *p.BehaviorID
	}
	if p.Memos != nil {
		e.Memos = *p.Memos
	}
}

// IsLinked reports whether the entry references a behavior.
func (e Entry) IsLinked() bool {
	return e.BehaviorID != ""
}

// QuickPicks are common actions offered by the interactive log form.
var QuickPicks = []string{
	"ate junk food",
	"stayed up late",
	"skipped workout",
	"had coffee",
	"drank alcohol",
	"scrolled social media",
	"skipped meal",
}
