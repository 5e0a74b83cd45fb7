package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobpilot/models"
)

func TestQueueAddAndGetNextIsFIFO(t *testing.T) {
	q := NewApplicationQueue(filepath.Join(t.TempDir(), "queue.json"))

	first := q.Add("https://boards.greenhouse.io/acme/jobs/1")
	second := q.Add("https://jobs.lever.co/acme/2")

	next := q.GetNext()
	assert.Equal(t, first.ID, next.ID)

	q.UpdateStatus(first.ID, models.QueueCompleted, "")
	next = q.GetNext()
	assert.Equal(t, second.ID, next.ID)

	q.UpdateStatus(second.ID, models.QueueFailed, "boom")
	assert.Nil(t, q.GetNext())
	assert.Equal(t, 0, q.PendingCount())
}

func TestQueuePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")

	q := NewApplicationQueue(path)
	a := q.Add("https://boards.greenhouse.io/acme/jobs/1")
	b := q.Add("https://jobs.lever.co/acme/2")
	q.UpdateStatus(a.ID, models.QueueCompleted, "")
	q.SetResult(a.ID, &models.SubmissionResult{Success: true, Message: "application submitted"})

	reloaded := NewApplicationQueue(path)
	assert.True(t, reloaded.Load())

	items := reloaded.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID, "insertion order survives the round trip")
	assert.Equal(t, models.QueueCompleted, items[0].Status)
	assert.NotNil(t, items[0].Result)
	assert.True(t, items[0].Result.Success)
	assert.Equal(t, b.URL, items[1].URL)
	assert.Equal(t, 1, reloaded.PendingCount())
}

func TestQueueLoadResetsInterruptedItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")

	q := NewApplicationQueue(path)
	item := q.Add("https://boards.greenhouse.io/acme/jobs/1")
	q.UpdateStatus(item.ID, models.QueueProcessing, "")
	q.SetProcessing(true)

	// Simulates a crash mid-item: the reloaded queue retries it.
	reloaded := NewApplicationQueue(path)
	assert.True(t, reloaded.Load())

	next := reloaded.GetNext()
	assert.NotNil(t, next)
	assert.Equal(t, item.ID, next.ID)
	assert.Equal(t, models.QueuePending, next.Status)
}

func TestQueueLoadMissingOrCorruptFile(t *testing.T) {
	dir := t.TempDir()

	q := NewApplicationQueue(filepath.Join(dir, "missing.json"))
	assert.False(t, q.Load())

	corrupt := filepath.Join(dir, "corrupt.json")
	assert.NoError(t, os.WriteFile(corrupt, []byte("{not json"), 0o644))
	q = NewApplicationQueue(corrupt)
	assert.False(t, q.Load())
}

func TestQueueClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")

	q := NewApplicationQueue(path)
	q.Add("https://boards.greenhouse.io/acme/jobs/1")
	_, err := os.Stat(path)
	assert.NoError(t, err)

	q.Clear()
	assert.Empty(t, q.Items())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
