package services

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobpilot/models"
)

// ApplicationQueue is a durable FIFO of job URLs. Every status mutation
// persists synchronously; persistence failures are swallowed (the queue
// keeps working in memory). Reloading after a crash resets any item caught
// mid-processing back to pending so interrupted work restarts from scratch.
type ApplicationQueue struct {
	path       string
	mu         sync.Mutex
	items      map[string]*models.QueueItem
	order      []string // insertion order, drives FIFO
	processing bool
}

// queueItemPair serializes one [id, item] entry of the persisted file.
type queueItemPair [2]json.RawMessage

type queueFile struct {
	Items      []queueItemPair `json:"items"`
	Processing bool            `json:"processing"`
	SavedAt    time.Time       `json:"savedAt"`
}

func NewApplicationQueue(path string) *ApplicationQueue {
	return &ApplicationQueue{
		path:  path,
		items: make(map[string]*models.QueueItem),
	}
}

// Add enqueues a URL as a new pending item and persists.
func (q *ApplicationQueue) Add(url string) *models.QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := &models.QueueItem{
		ID:      uuid.NewString(),
		URL:     url,
		Status:  models.QueuePending,
		AddedAt: time.Now(),
	}
	q.items[item.ID] = item
	q.order = append(q.order, item.ID)
	q.persist()
	return item
}

// Load restores the queue from its persisted file. Items found processing
// are reset to pending: the only allowed backward transition, meaning the
// previous run was interrupted mid-item. Returns false when no usable file
// exists.
func (q *ApplicationQueue) Load() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	data, err := os.ReadFile(q.path)
	if err != nil {
		return false
	}
	var file queueFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Printf("Queue file at %s is unreadable: %v", q.path, err)
		return false
	}

	q.items = make(map[string]*models.QueueItem)
	q.order = nil
	for _, pair := range file.Items {
		var id string
		var item models.QueueItem
		if err := json.Unmarshal(pair[0], &id); err != nil {
			continue
		}
		if err := json.Unmarshal(pair[1], &item); err != nil {
			continue
		}
		if item.Status == models.QueueProcessing {
			item.Status = models.QueuePending
		}
		q.items[id] = &item
		q.order = append(q.order, id)
	}
	q.processing = false
	return true
}

// GetNext returns the earliest-added pending item, or nil when none remain.
func (q *ApplicationQueue) GetNext() *models.QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, id := range q.order {
		if item, ok := q.items[id]; ok && item.Status == models.QueuePending {
			return item
		}
	}
	return nil
}

// UpdateStatus transitions an item and persists.
func (q *ApplicationQueue) UpdateStatus(id string, status models.QueueStatus, errorMessage string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item, ok := q.items[id]
	if !ok {
		return
	}
	item.Status = status
	item.Error = errorMessage
	q.persist()
}

// SetResult attaches a submission result to an item and persists.
func (q *ApplicationQueue) SetResult(id string, result *models.SubmissionResult) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item, ok := q.items[id]
	if !ok {
		return
	}
	item.Result = result
	q.persist()
}

// SetProcessing flags whether a batch run is actively draining the queue.
func (q *ApplicationQueue) SetProcessing(processing bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.processing = processing
	q.persist()
}

// Items returns the queue contents in insertion order.
func (q *ApplicationQueue) Items() []models.QueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]models.QueueItem, 0, len(q.order))
	for _, id := range q.order {
		if item, ok := q.items[id]; ok {
			items = append(items, *item)
		}
	}
	return items
}

// PendingCount reports how many items still await processing.
func (q *ApplicationQueue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	count := 0
	for _, item := range q.items {
		if item.Status == models.QueuePending {
			count++
		}
	}
	return count
}

// Clear empties the queue and deletes the persisted file.
func (q *ApplicationQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = make(map[string]*models.QueueItem)
	q.order = nil
	q.processing = false
	if err := os.Remove(q.path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove queue file: %v", err)
	}
}

// persist writes the queue to disk. Best-effort by design: callers never see
// a persistence failure. Caller must hold the lock.
func (q *ApplicationQueue) persist() {
	file := queueFile{
		Processing: q.processing,
		SavedAt:    time.Now(),
	}
	for _, id := range q.order {
		item, ok := q.items[id]
		if !ok {
			continue
		}
		idJSON, err := json.Marshal(id)
		if err != nil {
			continue
		}
		itemJSON, err := json.Marshal(item)
		if err != nil {
			continue
		}
		file.Items = append(file.Items, queueItemPair{idJSON, itemJSON})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return
	}
	if dir := filepath.Dir(q.path); dir != "" {
		os.MkdirAll(dir, 0o755)
	}
	if err := os.WriteFile(q.path, data, 0o644); err != nil {
		log.Printf("Failed to persist queue: %v", err)
	}
}
