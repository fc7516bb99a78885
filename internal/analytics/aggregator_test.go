package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pathlight/pathlight-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attempt(topic string, score, total int, takenAt time.Time) Attempt {
	return Attempt{
		RoadmapID:      uuid.New(),
		Career:         "Go Backend Developer",
		MilestoneID:    uuid.New(),
		MilestoneTitle: topic,
		Score:          score,
		Total:          total,
		TakenAt:        takenAt,
	}
}

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestTopicPerformanceTrends(t *testing.T) {
	attempts := []Attempt{
		// Improving: [50, 50, 70] → avg 57, last 70, above the +5 band.
		attempt("Concurrency", 5, 10, t0),
		attempt("Concurrency", 5, 10, t0.Add(time.Hour)),
		attempt("Concurrency", 7, 10, t0.Add(2*time.Hour)),
		// Declining: [80, 40] → avg 60, last 40.
		attempt("HTTP", 8, 10, t0),
		attempt("HTTP", 4, 10, t0.Add(time.Hour)),
		// Single attempt → always stable.
		attempt("Testing", 9, 10, t0),
	}

	stats, err := TopicPerformance(attempts, nil)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	byTopic := make(map[string]TopicStat)
	for _, s := range stats {
		byTopic[s.Topic] = s
	}

	assert.Equal(t, TrendUp, byTopic["Concurrency"].Trend)
	assert.Equal(t, 57, byTopic["Concurrency"].AverageScore)
	assert.Equal(t, 70, byTopic["Concurrency"].LastScore)

	assert.Equal(t, TrendDown, byTopic["HTTP"].Trend)
	assert.Equal(t, 60, byTopic["HTTP"].AverageScore)

	assert.Equal(t, TrendStable, byTopic["Testing"].Trend)
	assert.Equal(t, 1, byTopic["Testing"].Attempts)
}

func TestTopicPerformanceStableBand(t *testing.T) {
	// avg 50, last 55: exactly on the +5 edge, still stable.
	attempts := []Attempt{
		attempt("Slices", 45, 100, t0),
		attempt("Slices", 55, 100, t0.Add(time.Hour)),
	}
	stats, err := TopicPerformance(attempts, nil)
	require.NoError(t, err)
	assert.Equal(t, TrendStable, stats[0].Trend)
}

func TestTopicPerformanceSortsByAverage(t *testing.T) {
	attempts := []Attempt{
		attempt("Low", 2, 10, t0),
		attempt("High", 9, 10, t0),
		attempt("Mid", 5, 10, t0),
	}
	stats, err := TopicPerformance(attempts, nil)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	assert.Equal(t, "High", stats[0].Topic)
	assert.Equal(t, "Mid", stats[1].Topic)
	assert.Equal(t, "Low", stats[2].Topic)
}

func TestTopicPerformanceTiesKeepFirstSeenOrder(t *testing.T) {
	attempts := []Attempt{
		attempt("Beta", 5, 10, t0),
		attempt("Alpha", 5, 10, t0),
	}
	stats, err := TopicPerformance(attempts, nil)
	require.NoError(t, err)
	assert.Equal(t, "Beta", stats[0].Topic, "equal averages keep first-seen order")
}

func TestTopicPerformanceLatestByTakenAtNotPosition(t *testing.T) {
	// The newer attempt appears first in the slice; LastScore must still be it.
	attempts := []Attempt{
		attempt("Maps", 9, 10, t0.Add(time.Hour)),
		attempt("Maps", 3, 10, t0),
	}
	stats, err := TopicPerformance(attempts, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, stats[0].LastScore)
}

func TestTopicPerformanceEmptyKey(t *testing.T) {
	attempts := []Attempt{attempt("   ", 5, 10, t0)}
	_, err := TopicPerformance(attempts, nil)
	assert.ErrorIs(t, err, ErrEmptyTopicKey)
}

func TestTopicPerformanceCustomKey(t *testing.T) {
	attempts := []Attempt{
		attempt("Week 1", 5, 10, t0),
		attempt("Week 2", 7, 10, t0.Add(time.Hour)),
	}
	career := func(a *Attempt) string { return a.Career }
	stats, err := TopicPerformance(attempts, career)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Attempts)
}

func TestAreaFrequencyTopFive(t *testing.T) {
	attempts := []Attempt{
		{MilestoneTitle: "a", Total: 1, StrongAreas: []string{"s1", "s2", "s3"}, WeakAreas: []string{"w1"}, TakenAt: t0},
		{MilestoneTitle: "a", Total: 1, StrongAreas: []string{"s2", "s3", "s4"}, WeakAreas: []string{"w1", "w2"}, TakenAt: t0},
		{MilestoneTitle: "a", Total: 1, StrongAreas: []string{"s3", "s5", "s6", ""}, TakenAt: t0},
	}

	strengths, weaknesses := AreaFrequency(attempts)

	require.Len(t, strengths, 5, "capped at five")
	assert.Equal(t, AreaCount{Area: "s3", Count: 3}, strengths[0])
	assert.Equal(t, AreaCount{Area: "s2", Count: 2}, strengths[1])
	// s1, s4, s5 all have count 1; first-seen order breaks the tie.
	assert.Equal(t, "s1", strengths[2].Area)
	assert.Equal(t, "s4", strengths[3].Area)
	assert.Equal(t, "s5", strengths[4].Area)

	require.Len(t, weaknesses, 2)
	assert.Equal(t, AreaCount{Area: "w1", Count: 2}, weaknesses[0])
}

func TestRecentActivity(t *testing.T) {
	var attempts []Attempt
	for i := 0; i < 7; i++ {
		a := attempt("Topic", 5, 10, t0.Add(time.Duration(i)*time.Hour))
		attempts = append(attempts, a)
	}

	entries := RecentActivity(attempts)
	require.Len(t, entries, 5)
	assert.Equal(t, t0.Add(6*time.Hour), entries[0].TakenAt, "newest first")
	assert.Equal(t, t0.Add(2*time.Hour), entries[4].TakenAt)
}

func TestSummarize(t *testing.T) {
	roadmaps := []model.Roadmap{
		{Milestones: []model.Milestone{{Completed: true}, {Completed: false}}},
		{Milestones: []model.Milestone{{Completed: true}}},
	}
	attempts := []Attempt{
		attempt("a", 8, 10, t0),
		attempt("b", 5, 10, t0),
	}

	s := Summarize(roadmaps, attempts)
	assert.Equal(t, 2, s.TotalRoadmaps)
	assert.Equal(t, 3, s.TotalMilestones)
	assert.Equal(t, 2, s.CompletedMilestones)
	assert.Equal(t, 67, s.CompletionPercent)
	assert.Equal(t, 2, s.TotalQuizzesTaken)
	assert.Equal(t, 65, s.AverageQuizScore)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Equal(t, SummaryStats{}, s, "every zero-denominator metric reports 0")
}

func TestBuildDashboardEmpty(t *testing.T) {
	dash, err := BuildDashboard(nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, dash.Topics)
	assert.Empty(t, dash.Strengths)
	assert.Empty(t, dash.Weaknesses)
	assert.Empty(t, dash.RecentActivity)
	assert.Equal(t, SummaryStats{}, dash.Summary)
}

func TestFlattenAttempts(t *testing.T) {
	mID := uuid.New()
	roadmaps := []model.Roadmap{{
		ID:     uuid.New(),
		Career: "Data Engineer",
		Milestones: []model.Milestone{{
			ID:    mID,
			Title: "SQL Basics",
			QuizReports: []model.QuizReport{
				{MilestoneID: mID, Score: 7, Total: 10, StrongAreas: []string{"joins"}, TakenAt: t0},
			},
		}},
	}}

	attempts := FlattenAttempts(roadmaps)
	require.Len(t, attempts, 1)
	assert.Equal(t, "SQL Basics", attempts[0].MilestoneTitle)
	assert.Equal(t, "Data Engineer", attempts[0].Career)
	assert.Equal(t, 70, attempts[0].Percentage())
	assert.Equal(t, []string{"joins"}, attempts[0].StrongAreas)
}
