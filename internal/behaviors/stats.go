package behaviors

import (
	"math"
	"sort"

	"github.com/julianstephens/worthit/internal/constants"
	"github.com/julianstephens/worthit/internal/models"
)

// Stats derives the statistics of one behavior from its linked entries.
// Unknown or removed behavior ids are computed like any other id.
func (e *Engine) Stats(behaviorID string) models.BehaviorStats {
	return ComputeStats(e.EntriesFor(behaviorID))
}

// ComputeStats expects entries sorted newest first.
func ComputeStats(entries []models.Entry) models.BehaviorStats {
	stats := models.BehaviorStats{
		TotalEntries: len(entries),
		Trend:        models.TrendNew,
	}

	for _, entry := range entries {
		switch entry.EntryType {
		case models.EntryResisted:
			stats.ResistedCount++
		case models.EntryReflection:
			stats.ReflectionCount++
		default:
			stats.DidItCount++
		}
	}

	stats.SuccessRate = successRate(stats.ResistedCount, stats.DidItCount)

	if len(entries) > 0 {
		last := entries[0].CreatedAt
		first := entries[len(entries)-1].CreatedAt
		stats.LastEntryDate = &last
		stats.FirstEntryDate = &first
	}

	if stats.TotalEntries >= constants.TrendMinEntries {
		stats.Trend = trend(entries)
	}

	return stats
}

// successRate is the share of resisted entries among resisted and did-it
// entries, as a rounded percentage. Reflections are not counted.
func successRate(resisted, didIt int) int {
	actionable := resisted + didIt
	if actionable == 0 {
		return 0
	}
	return int(math.Round(100 * float64(resisted) / float64(actionable)))
}

// trend compares the resisted rate of the newest window with the one before it.
func trend(entries []models.Entry) models.Trend {
	window := constants.TrendWindowSize
	recentEnd := min(window, len(entries))
	olderEnd := min(2*window, len(entries))

	older := entries[recentEnd:olderEnd]
	if len(older) == 0 {
		return models.TrendNew
	}

	recentRate := float64(countResisted(entries[:recentEnd])) / float64(window)
	olderRate := float64(countResisted(older)) / float64(len(older))
	return classifyTrend(recentRate, olderRate)
}

func classifyTrend(recentRate, olderRate float64) models.Trend {
	switch {
	case recentRate > olderRate+constants.TrendDelta:
		return models.TrendImproving
	case recentRate < olderRate-constants.TrendDelta:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func countResisted(entries []models.Entry) int {
	n := 0
	for _, e := range entries {
		if e.EntryType == models.EntryResisted {
			n++
		}
	}
	return n
}

// WithStats pairs every behavior with its stats, in collection order.
func (e *Engine) WithStats() []models.BehaviorWithStats {
	out := make([]models.BehaviorWithStats, 0, len(e.behaviors))
	for _, b := range e.behaviors {
		out = append(out, models.BehaviorWithStats{Behavior: b, Stats: e.Stats(b.ID)})
	}
	return out
}

// RecentlyActive returns behaviors that have entries, most recent activity first.
func (e *Engine) RecentlyActive() []models.BehaviorWithStats {
	var out []models.BehaviorWithStats
	for _, bs := range e.WithStats() {
		if bs.Stats.TotalEntries > 0 {
			out = append(out, bs)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stats.LastEntryDate.After(*out[j].Stats.LastEntryDate)
	})
	return out
}
