package entries

import (
	"strings"

	"github.com/julianstephens/worthit/internal/logger"
	"github.com/julianstephens/worthit/internal/models"
)

// AddMemo appends a memo to the entry. ok is false, and nothing is written,
// when the entry does not exist.
func (s *Store) AddMemo(entryID string, in models.NewMemo) (models.Memo, bool, error) {
	i := s.index(entryID)
	if i < 0 {
		logger.Debug("Memo for unknown entry ignored", "entry", entryID)
		return models.Memo{}, false, nil
	}

	memo := models.Memo{
		ID:        s.newID(),
		Outcome:   in.Outcome,
		Feeling:   in.Feeling,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: s.now(),
	}
	if memo.Outcome == "" {
		memo.Outcome = models.OutcomeReflecting
	}
	if memo.Feeling == "" {
		memo.Feeling = models.RatingMeh
	}

	parent := s.entries[i]
	memos := make([]models.Memo, 0, len(parent.Memos)+1)
	memos = append(memos, parent.Memos...)
	memos = append(memos, memo)

	if err := s.Update(entryID, models.EntryPatch{Memos: &memos}); err != nil {
		return models.Memo{}, false, err
	}
	return memo, true, nil
}

func (s *Store) findMemo(entryID, memoID string) (int, int) {
	i := s.index(entryID)
	if i < 0 {
		return -1, -1
	}
	for j, m := range s.entries[i].Memos {
		if m.ID == memoID {
			return i, j
		}
	}
	return i, -1
}

// UpdateMemo merges patch into one memo. Unknown entry or memo ids are ignored.
func (s *Store) UpdateMemo(entryID, memoID string, patch models.MemoPatch) error {
	i, j := s.findMemo(entryID, memoID)
	if i < 0 || j < 0 {
		logger.Debug("Update of unknown memo ignored", "entry", entryID, "memo", memoID)
		return nil
	}

	memos := make([]models.Memo, len(s.entries[i].Memos))
	copy(memos, s.entries[i].Memos)
	patch.Apply(&memos[j])
	return s.Update(entryID, models.EntryPatch{Memos: &memos})
}

func (s *Store) DeleteMemo(entryID, memoID string) error {
	i, j := s.findMemo(entryID, memoID)
	if i < 0 || j < 0 {
		logger.Debug("Delete of unknown memo ignored", "entry", entryID, "memo", memoID)
		return nil
	}

	old := s.entries[i].Memos
	memos := make([]models.Memo, 0, len(old)-1)
	memos = append(memos, old[:j]...)
	memos = append(memos, old[j+1:]...)
	return s.Update(entryID, models.EntryPatch{Memos: &memos})
}

func (s *Store) ToggleMemoStar(entryID, memoID string) error {
	i, j := s.findMemo(entryID, memoID)
	if i < 0 || j < 0 {
		return nil
	}
	starred := !s.entries[i].Memos[j].IsStarred
	return s.UpdateMemo(entryID, memoID, models.MemoPatch{IsStarred: &starred})
}

func (s *Store) ToggleMemoHidden(entryID, memoID string) error {
	i, j := s.findMemo(entryID, memoID)
	if i < 0 || j < 0 {
		return nil
	}
	hidden := !s.entries[i].Memos[j].IsHidden
	return s.UpdateMemo(entryID, memoID, models.MemoPatch{IsHidden: &hidden})
}

// VisibleMemos drops hidden memos unless showHidden is set.
func VisibleMemos(entry models.Entry, showHidden bool) []models.Memo {
	if showHidden {
		return entry.Memos
	}
	out := make([]models.Memo, 0, len(entry.Memos))
	for _, m := range entry.Memos {
		if !m.IsHidden {
			out = append(out, m)
		}
	}
	return out
}
