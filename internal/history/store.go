package history

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/zjrosen/tsconv/internal/log"
	"github.com/zjrosen/tsconv/internal/pubsub"
)

// DefaultLimit is the maximum number of records kept.
const DefaultLimit = 50

// Store appends, lists and clears conversion records.
//
// Writes are read-modify-write against Storage. Within one Store they are
// serialised; two processes sharing a database still race and the last
// write wins.
type Store struct {
	storage Storage
	limit   int
	mu      sync.Mutex
	broker  *pubsub.Broker[[]Record]
}

// Option configures a Store.
type Option func(*Store)

// WithLimit lowers the cap below DefaultLimit. Values below 1 are ignored
// and values above DefaultLimit are clamped to it.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = min(n, DefaultLimit)
		}
	}
}

// NewStore returns a Store over storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		limit:   DefaultLimit,
		broker:  pubsub.NewBroker[[]Record](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limit returns the maximum list length.
func (s *Store) Limit() int {
	return s.limit
}

// Append adds r at the end, evicting the oldest records past the limit.
func (s *Store) Append(ctx context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}

	records = append(records, r)
	if over := len(records) - s.limit; over > 0 {
		records = records[over:]
	}

	if err := s.save(ctx, records); err != nil {
		return err
	}

	log.Debug(log.CatHistory, "Appended record", "value", r.OriginalValue, "size", len(records))
	s.broker.Publish(pubsub.CreatedEvent, slices.Clone(records))
	return nil
}

// GetAll returns every record, oldest first.
func (s *Store) GetAll(ctx context.Context) ([]Record, error) {
	return s.load(ctx)
}

// Recent returns up to n records, most recently recorded first. The result
// is sorted by RecordedAt rather than trusting storage order.
func (s *Store) Recent(ctx context.Context, n int) ([]Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return MostRecent(records, n), nil
}

// Clear empties the list.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(ctx, []Record{}); err != nil {
		return err
	}

	log.Info(log.CatHistory, "Cleared history")
	s.broker.Publish(pubsub.DeletedEvent, []Record{})
	return nil
}

// Subscribe returns a channel carrying the full list after every
// successful Append or Clear made through this Store.
func (s *Store) Subscribe(ctx context.Context) <-chan pubsub.Event[[]Record] {
	return s.broker.Subscribe(ctx)
}

// Close releases subscribers.
func (s *Store) Close() {
	s.broker.Close()
}

func (s *Store) load(ctx context.Context) ([]Record, error) {
	data, ok, err := s.storage.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if !ok || len(data) == 0 {
		return []Record{}, nil
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Store) save(ctx context.Context, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := s.storage.Set(ctx, Key, data); err != nil {
		log.ErrorErr(log.CatHistory, "Failed to write history", err)
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// MostRecent sorts a copy of records newest first and keeps n of them.
// Records with equal RecordedAt keep their reverse storage order.
func MostRecent(records []Record, n int) []Record {
	out := slices.Clone(records)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b Record) int {
		switch {
		case a.RecordedAt > b.RecordedAt:
			return -1
		case a.RecordedAt < b.RecordedAt:
			return 1
		}
		return 0
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
