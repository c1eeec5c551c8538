package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wisata/internal/shared/constants"
)

var ErrDraftNotFound = errors.New("booking draft not found")

// DraftStore keeps the in-progress booking for a browser session in Redis.
// Every key carries a TTL so abandoned drafts expire on their own.
type DraftStore interface {
	Put(ctx context.Context, sessionID string, draft *BookingDraft) error
	Get(ctx context.Context, sessionID string) (*BookingDraft, error)
	// Consume atomically reads and deletes the draft so that of any number
	// of concurrent confirmations exactly one observes it.
	Consume(ctx context.Context, sessionID string) (*BookingDraft, error)
	// Restore puts a consumed draft back after a failed confirmation.
	Restore(ctx context.Context, sessionID string, draft *BookingDraft) error
	Delete(ctx context.Context, sessionID string) error
}

type draftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) DraftStore {
	return &draftStore{client: client, ttl: ttl}
}

func (s *draftStore) Put(ctx context.Context, sessionID string, draft *BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}
	key := constants.BookingDraftKey(sessionID)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store draft: %w", err)
	}
	return nil
}

func (s *draftStore) Get(ctx context.Context, sessionID string) (*BookingDraft, error) {
	key := constants.BookingDraftKey(sessionID)
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	return decodeDraft(data)
}

func (s *draftStore) Consume(ctx context.Context, sessionID string) (*BookingDraft, error) {
	key := constants.BookingDraftKey(sessionID)
	data, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to consume draft: %w", err)
	}
	return decodeDraft(data)
}

func (s *draftStore) Restore(ctx context.Context, sessionID string, draft *BookingDraft) error {
	return s.Put(ctx, sessionID, draft)
}

func (s *draftStore) Delete(ctx context.Context, sessionID string) error {
	key := constants.BookingDraftKey(sessionID)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

func decodeDraft(data string) (*BookingDraft, error) {
	var draft BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}
