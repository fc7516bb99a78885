package websocket

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	// EventRoadmapPersisted fires when the background worker has durably
	// stored a queued snapshot.
	EventRoadmapPersisted Event = "roadmap_persisted"
	// EventSyncFailed fires when a persist attempt failed and the snapshot
	// was requeued.
	EventSyncFailed Event = "sync_failed"
	// EventQuizGraded fires when a quiz report was recorded and gating ran.
	EventQuizGraded Event = "quiz_graded"
	EventPong       Event = "pong"
)

// SyncEvent is pushed to every connected device of a learner whenever roadmap
// state changes server-side, so open sessions converge without polling.
type SyncEvent struct {
	Type          Event  `json:"type"`
	RoadmapID     string `json:"roadmap_id,omitempty"`
	MilestoneID   string `json:"milestone_id,omitempty"`
	TotalProgress int    `json:"total_progress,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

type PongResponse struct {
	Type Event `json:"type"`
}
