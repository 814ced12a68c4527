package services

import (
	"testing"
	"time"

	"barnearbeid/models"
)

func msg(id uint, from, to uint, at time.Time) models.Message {
	return models.Message{ID: id, FromUserID: from, ToUserID: to, CreatedAt: at}
}

func ids(messages []models.Message) []uint {
	out := make([]uint, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.ID)
	}
	return out
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestConversationMergerOrdersByCreatedAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	merger := &ConversationMerger{}
	merger.UpdateSent([]models.Message{
		msg(10, 1, 2, base.Add(2*time.Minute)),
		msg(11, 1, 2, base.Add(5*time.Minute)),
	})
	merged := merger.UpdateReceived([]models.Message{
		msg(3, 2, 1, base.Add(1*time.Minute)),
		msg(20, 2, 1, base.Add(4*time.Minute)),
	})

	// A received message with a lower id but a later timestamp must not
	// jump ahead; only createdAt decides the order.
	want := []uint{3, 10, 20, 11}
	if !equalIDs(ids(merged), want) {
		t.Fatalf("merged order = %v, want %v", ids(merged), want)
	}
}

func TestConversationMergerDedupesOnID(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	merger := &ConversationMerger{}
	merger.UpdateSent([]models.Message{
		msg(1, 1, 2, base),
		msg(2, 1, 2, base.Add(time.Minute)),
	})
	merged := merger.UpdateReceived([]models.Message{
		msg(2, 1, 2, base.Add(time.Minute)),
		msg(3, 2, 1, base.Add(2*time.Minute)),
	})

	want := []uint{1, 2, 3}
	if !equalIDs(ids(merged), want) {
		t.Fatalf("merged = %v, want %v", ids(merged), want)
	}
}

func TestConversationMergerSnapshotReplacesSide(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	merger := &ConversationMerger{}
	merger.UpdateSent([]models.Message{msg(1, 1, 2, base)})
	merger.UpdateReceived([]models.Message{msg(2, 2, 1, base.Add(time.Minute))})

	// A new sent snapshot replaces the old one wholesale.
	merged := merger.UpdateSent([]models.Message{
		msg(1, 1, 2, base),
		msg(5, 1, 2, base.Add(2*time.Minute)),
	})

	want := []uint{1, 2, 5}
	if !equalIDs(ids(merged), want) {
		t.Fatalf("merged = %v, want %v", ids(merged), want)
	}
}

func TestConversationMergerOneSidedView(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	merger := &ConversationMerger{}
	merged := merger.UpdateReceived([]models.Message{
		msg(7, 2, 1, base),
		msg(8, 2, 1, base.Add(time.Minute)),
	})

	want := []uint{7, 8}
	if !equalIDs(ids(merged), want) {
		t.Fatalf("merged = %v, want %v", ids(merged), want)
	}
}

func TestConversationMergerIdempotentSnapshots(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := []models.Message{msg(1, 1, 2, base), msg(2, 1, 2, base.Add(time.Minute))}

	merger := &ConversationMerger{}
	merger.UpdateSent(snapshot)
	first := merger.Messages()
	merger.UpdateSent(snapshot)
	second := merger.Messages()

	if !equalIDs(ids(first), ids(second)) {
		t.Fatalf("repeated snapshot changed the view: %v vs %v", ids(first), ids(second))
	}
}

func TestConversationChannel(t *testing.T) {
	if got := ConversationChannel(4, 9); got != "messages:4:9" {
		t.Fatalf("ConversationChannel(4, 9) = %q", got)
	}
	if ConversationChannel(4, 9) == ConversationChannel(9, 4) {
		t.Fatal("directions must have distinct channels")
	}
}
