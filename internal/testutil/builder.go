package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tsconv/internal/history"
)

// Builder accumulates records and appends them to a store in order.
type Builder struct {
	t       *testing.T
	store   *history.Store
	records []recordData
}

// NewBuilder creates a builder for store.
func NewBuilder(t *testing.T, store *history.Store) *Builder {
	t.Helper()
	return &Builder{t: t, store: store}
}

// WithRecord adds a record. Without At, records are stamped one minute
// apart starting at BaseTime, in the order they were added.
func (b *Builder) WithRecord(value int64, opts ...RecordOption) *Builder {
	r := defaultRecord(value, len(b.records))
	for _, opt := range opts {
		opt(&r)
	}
	b.records = append(b.records, r)
	return b
}

// WithRecords adds one default record per value.
func (b *Builder) WithRecords(values ...int64) *Builder {
	for _, v := range values {
		b.WithRecord(v)
	}
	return b
}

// Build appends every accumulated record and returns them as stored.
func (b *Builder) Build() []history.Record {
	b.t.Helper()
	out := make([]history.Record, 0, len(b.records))
	for _, r := range b.records {
		rec := history.NewRecord(r.at, r.value, r.converted)
		require.NoError(b.t, b.store.Append(context.Background(), rec))
		out = append(out, rec)
	}
	return out
}
