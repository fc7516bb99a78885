// Package analytics derives cross-roadmap statistics from the flat collection
// of quiz attempts belonging to one learner. Every function is a stateless,
// read-only computation over the snapshot passed in and is safe to call from
// concurrent readers.
package analytics

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/pathlight/pathlight-backend/internal/progress"
)

// Attempt is one quiz attempt flattened out of its roadmap/milestone context.
type Attempt struct {
	RoadmapID      uuid.UUID `json:"roadmap_id"`
	Career         string    `json:"career"`
	MilestoneID    uuid.UUID `json:"milestone_id"`
	MilestoneTitle string    `json:"milestone_title"`
	Score          int       `json:"score"`
	Total          int       `json:"total"`
	StrongAreas    []string  `json:"strong_areas"`
	WeakAreas      []string  `json:"weak_areas"`
	TakenAt        time.Time `json:"taken_at"`
}

// Percentage returns the rounded score percentage of the attempt.
func (a *Attempt) Percentage() int {
	return progress.Percent(a.Score, a.Total)
}

// TopicKeyFunc derives the grouping key for an attempt. The aggregation is
// agnostic to how the key is produced; it only requires the function to be
// total and deterministic. An empty key is invalid input.
type TopicKeyFunc func(a *Attempt) string

// DefaultTopicKey groups attempts by trimmed milestone title.
func DefaultTopicKey(a *Attempt) string {
	return strings.TrimSpace(a.MilestoneTitle)
}

// ErrEmptyTopicKey is returned when the key function yields an empty key.
var ErrEmptyTopicKey = errors.New("topic key function returned an empty key")

// Trend classifies how the most recent attempt compares to the topic average.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// trendBand is the +/- percentage margin around the average inside which the
// latest score counts as stable.
const trendBand = 5

// TopicStat summarizes a learner's performance on one topic.
type TopicStat struct {
	Topic        string `json:"topic"`
	AverageScore int    `json:"average_score"`
	Attempts     int    `json:"attempts"`
	LastScore    int    `json:"last_score"`
	Trend        Trend  `json:"trend"`
}

// TopicPerformance groups attempts by topic key and computes per-topic
// average, attempt count, latest score, and a trend classification. A single
// attempt is always "stable" — one data point is no evidence of change.
// Results are sorted by average score descending, ties in first-seen order.
func TopicPerformance(attempts []Attempt, keyOf TopicKeyFunc) ([]TopicStat, error) {
	if keyOf == nil {
		keyOf = DefaultTopicKey
	}

	type group struct {
		order    int
		pctSum   int
		count    int
		last     int
		lastTime time.Time
	}
	groups := make(map[string]*group)
	var keys []string

	for i := range attempts {
		key := keyOf(&attempts[i])
		if key == "" {
			return nil, ErrEmptyTopicKey
		}
		g, ok := groups[key]
		if !ok {
			g = &group{order: len(keys)}
			groups[key] = g
			keys = append(keys, key)
		}
		pct := attempts[i].Percentage()
		g.pctSum += pct
		g.count++
		if g.count == 1 || !attempts[i].TakenAt.Before(g.lastTime) {
			g.last = pct
			g.lastTime = attempts[i].TakenAt
		}
	}

	stats := make([]TopicStat, 0, len(keys))
	for _, key := range keys {
		g := groups[key]
		avg := progress.Percent(g.pctSum, 100*g.count)
		stats = append(stats, TopicStat{
			Topic:        key,
			AverageScore: avg,
			Attempts:     g.count,
			LastScore:    g.last,
			Trend:        classifyTrend(g.count, g.last, avg),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AverageScore > stats[j].AverageScore
	})
	return stats, nil
}

func classifyTrend(attempts, last, avg int) Trend {
	if attempts < 2 {
		return TrendStable
	}
	switch {
	case last > avg+trendBand:
		return TrendUp
	case last < avg-trendBand:
		return TrendDown
	default:
		return TrendStable
	}
}

// AreaCount is one strength/weakness label with its occurrence count.
type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// areaFrequencyLimit caps the strengths/weaknesses lists.
const areaFrequencyLimit = 5

// AreaFrequency tallies strong and weak area labels across all attempts and
// returns the top five of each by descending count, ties in first-seen order.
func AreaFrequency(attempts []Attempt) (strengths, weaknesses []AreaCount) {
	return topAreas(attempts, func(a *Attempt) []string { return a.StrongAreas }),
		topAreas(attempts, func(a *Attempt) []string { return a.WeakAreas })
}

func topAreas(attempts []Attempt, pick func(*Attempt) []string) []AreaCount {
	counts := make(map[string]int)
	var order []string

	for i := range attempts {
		for _, label := range pick(&attempts[i]) {
			if label == "" {
				continue
			}
			if _, seen := counts[label]; !seen {
				order = append(order, label)
			}
			counts[label]++
		}
	}

	areas := make([]AreaCount, 0, len(order))
	for _, label := range order {
		areas = append(areas, AreaCount{Area: label, Count: counts[label]})
	}
	sort.SliceStable(areas, func(i, j int) bool {
		return areas[i].Count > areas[j].Count
	})
	if len(areas) > areaFrequencyLimit {
		areas = areas[:areaFrequencyLimit]
	}
	return areas
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	Career         string    `json:"career"`
	MilestoneTitle string    `json:"milestone_title"`
	Percentage     int       `json:"percentage"`
	TakenAt        time.Time `json:"taken_at"`
}

// recentActivityLimit caps the activity feed length.
const recentActivityLimit = 5

// RecentActivity flattens attempts into feed entries, newest first, capped at
// the five most recent.
func RecentActivity(attempts []Attempt) []ActivityEntry {
	entries := make([]ActivityEntry, 0, len(attempts))
	for i := range attempts {
		entries = append(entries, ActivityEntry{
			Career:         attempts[i].Career,
			MilestoneTitle: attempts[i].MilestoneTitle,
			Percentage:     attempts[i].Percentage(),
			TakenAt:        attempts[i].TakenAt,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TakenAt.After(entries[j].TakenAt)
	})
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}
	return entries
}

// SummaryStats are the roll-up counters across a learner's collection.
// Division-based metrics report 0 when their denominator is 0.
type SummaryStats struct {
	TotalRoadmaps       int `json:"total_roadmaps"`
	TotalMilestones     int `json:"total_milestones"`
	CompletedMilestones int `json:"completed_milestones"`
	CompletionPercent   int `json:"completion_percent"`
	TotalQuizzesTaken   int `json:"total_quizzes_taken"`
	AverageQuizScore    int `json:"average_quiz_score"`
}

// Summarize computes the roll-up counters from loaded roadmaps and the flat
// attempt collection.
func Summarize(roadmaps []model.Roadmap, attempts []Attempt) SummaryStats {
	s := SummaryStats{TotalRoadmaps: len(roadmaps), TotalQuizzesTaken: len(attempts)}

	for i := range roadmaps {
		for j := range roadmaps[i].Milestones {
			s.TotalMilestones++
			if roadmaps[i].Milestones[j].Completed {
				s.CompletedMilestones++
			}
		}
	}
	s.CompletionPercent = progress.Percent(s.CompletedMilestones, s.TotalMilestones)

	pctSum := 0
	for i := range attempts {
		pctSum += attempts[i].Percentage()
	}
	s.AverageQuizScore = progress.Percent(pctSum, 100*len(attempts))

	return s
}

// Dashboard bundles every aggregation the analytics views consume.
type Dashboard struct {
	Summary        SummaryStats    `json:"summary"`
	Topics         []TopicStat     `json:"topics"`
	Strengths      []AreaCount     `json:"strengths"`
	Weaknesses     []AreaCount     `json:"weaknesses"`
	RecentActivity []ActivityEntry `json:"recent_activity"`
}

// BuildDashboard runs the full aggregation over an immutable snapshot.
func BuildDashboard(roadmaps []model.Roadmap, attempts []Attempt, keyOf TopicKeyFunc) (*Dashboard, error) {
	topics, err := TopicPerformance(attempts, keyOf)
	if err != nil {
		return nil, err
	}
	strengths, weaknesses := AreaFrequency(attempts)
	return &Dashboard{
		Summary:        Summarize(roadmaps, attempts),
		Topics:         topics,
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		RecentActivity: RecentActivity(attempts),
	}, nil
}

// FlattenAttempts derives the attempt collection from loaded aggregates,
// for aggregation scoped to roadmaps already in memory.
func FlattenAttempts(roadmaps []model.Roadmap) []Attempt {
	var attempts []Attempt
	for i := range roadmaps {
		r := &roadmaps[i]
		for j := range r.Milestones {
			m := &r.Milestones[j]
			for k := range m.QuizReports {
				rep := &m.QuizReports[k]
				attempts = append(attempts, Attempt{
					RoadmapID:      r.ID,
					Career:         r.Career,
					MilestoneID:    m.ID,
					MilestoneTitle: m.Title,
					Score:          rep.Score,
					Total:          rep.Total,
					StrongAreas:    rep.StrongAreas,
					WeakAreas:      rep.WeakAreas,
					TakenAt:        rep.TakenAt,
				})
			}
		}
	}
	return attempts
}
