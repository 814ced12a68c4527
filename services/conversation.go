package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"barnearbeid/models"

	"github.com/redis/go-redis/v9"
)

// ConversationMerger combines the two message directions of a conversation
// (sent and received) into one view ordered by creation time. Each side is
// replaced wholesale by its latest snapshot; the merged view is the union
// of both snapshots, deduplicated on message id, sorted ascending by
// createdAt. The id is only a uniqueness key, never an ordering key.
// Until a side has delivered its first snapshot the view covers only the
// other side.
type ConversationMerger struct {
	mu       sync.Mutex
	sent     []models.Message
	received []models.Message
}

// UpdateSent replaces the sent-by-me snapshot and returns the merged view.
func (m *ConversationMerger) UpdateSent(snapshot []models.Message) []models.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = snapshot
	return m.merged()
}

// UpdateReceived replaces the sent-to-me snapshot and returns the merged view.
func (m *ConversationMerger) UpdateReceived(snapshot []models.Message) []models.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = snapshot
	return m.merged()
}

// Messages returns the current merged view without updating either side.
func (m *ConversationMerger) Messages() []models.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.merged()
}

func (m *ConversationMerger) merged() []models.Message {
	seen := make(map[uint]bool, len(m.sent)+len(m.received))
	merged := make([]models.Message, 0, len(m.sent)+len(m.received))
	for _, msg := range m.sent {
		if !seen[msg.ID] {
			seen[msg.ID] = true
			merged = append(merged, msg)
		}
	}
	for _, msg := range m.received {
		if !seen[msg.ID] {
			seen[msg.ID] = true
			merged = append(merged, msg)
		}
	}

	// Stable, so equal timestamps keep their relative order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})
	return merged
}

// ConversationChannel is the Redis pub/sub channel for one message direction.
func ConversationChannel(fromUserID, toUserID uint) string {
	return fmt.Sprintf("messages:%d:%d", fromUserID, toUserID)
}

// PublishMessage announces a stored message on its direction channel so
// open conversation streams pick it up.
func PublishMessage(ctx context.Context, rdb *redis.Client, msg models.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, ConversationChannel(msg.FromUserID, msg.ToUserID), payload).Err()
}
