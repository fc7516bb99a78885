package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// LearnerSessionKey returns the cache key for a learner's issued-token jti
func (r *CacheKeyStruct) LearnerSessionKey(learnerID int) string {
	return fmt.Sprintf("login:%d", learnerID)
}

// LearnerDashboardKey returns the cache key for a learner's analytics snapshot
func (r *CacheKeyStruct) LearnerDashboardKey(learnerID int) string {
	return fmt.Sprintf("learner:%d:dashboard", learnerID)
}

// RoadmapDirtyKey marks a roadmap as having queued, not-yet-persisted state
func (r *CacheKeyStruct) RoadmapDirtyKey(roadmapID string) string {
	return fmt.Sprintf("roadmap:%s:dirty", roadmapID)
}

// SyncEventsChannel returns the Pub/Sub channel carrying persistence outcomes
// for one learner's roadmaps
func (r *CacheKeyStruct) SyncEventsChannel(learnerID int) string {
	return fmt.Sprintf("learner:%d:sync_events", learnerID)
}

var CacheKey = NewCacheKeyStruct()
