package services

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

var answerKeyCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeAnswerKey reduces a field label to a stable cache key: lowercase,
// punctuation collapsed to single underscores.
func NormalizeAnswerKey(label string) string {
	key := answerKeyCleaner.ReplaceAllString(strings.ToLower(label), "_")
	return strings.Trim(key, "_")
}

// AnswerCache persists operator-provided answers keyed by normalized label
// so a question answered once is reused across applications. Persistence is
// best-effort: a write failure is logged, never raised.
type AnswerCache struct {
	path    string
	mu      sync.Mutex
	answers map[string]string
}

func NewAnswerCache(path string) *AnswerCache {
	c := &AnswerCache{
		path:    path,
		answers: make(map[string]string),
	}
	c.load()
	return c
}

func (c *AnswerCache) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	var answers map[string]string
	if err := json.Unmarshal(data, &answers); err != nil {
		log.Printf("Answer cache at %s is unreadable, starting empty: %v", c.path, err)
		return
	}
	c.answers = answers
}

// Get returns a previously cached answer for the label.
func (c *AnswerCache) Get(label string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.answers[NormalizeAnswerKey(label)]
	return value, ok
}

// Set stores an answer and persists the cache.
func (c *AnswerCache) Set(label, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.answers[NormalizeAnswerKey(label)] = value
	c.persist()
}

func (c *AnswerCache) persist() {
	data, err := json.MarshalIndent(c.answers, "", "  ")
	if err != nil {
		return
	}
	if dir := filepath.Dir(c.path); dir != "" {
		os.MkdirAll(dir, 0o755)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		log.Printf("Failed to persist answer cache: %v", err)
	}
}
