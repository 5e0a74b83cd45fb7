package models

import "time"

// QueueStatus is the lifecycle state of one queued job URL.
type QueueStatus string

const (
	QueuePending    QueueStatus = "pending"
	QueueProcessing QueueStatus = "processing"
	QueueCompleted  QueueStatus = "completed"
	QueueFailed     QueueStatus = "failed"
)

// QueueItem is one unit of durable, resumable batch work. Status only moves
// forward, with one exception: reloading a persisted queue resets processing
// items back to pending because interrupted work must restart from scratch.
type QueueItem struct {
	ID      string            `json:"id"`
	URL     string            `json:"url"`
	Status  QueueStatus       `json:"status"`
	Error   string            `json:"error,omitempty"`
	Result  *SubmissionResult `json:"result,omitempty"`
	AddedAt time.Time         `json:"added_at"`
}
