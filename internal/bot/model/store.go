package model

import "context"

// ContextStore is the bounded per-conversation FIFO history. Both backings
// implement the same contract:
//
//   - Append adds an entry at the tail and evicts the oldest entries so the
//     conversation never holds more than the configured maximum.
//   - Read returns up to the maximum newest entries in chronological order
//     (oldest first).
//   - PopLast removes the most recently appended entry; no-op when empty.
//
// Append and remove-newest are the only legal mutations.
type ContextStore interface {
	Append(ctx context.Context, conversationID int64, entry HistoryEntry) error
	Read(ctx context.Context, conversationID int64) ([]HistoryEntry, error)
	PopLast(ctx context.Context, conversationID int64) error
}
