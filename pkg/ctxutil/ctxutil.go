package ctxutil

import (
	"context"
	"sync"
)

type ctxKey string

const (
	requestIDKey ctxKey = "request_id"
	holderKey    ctxKey = "dataset_holder"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// DatasetHolder lets an outer middleware observe the dataset selected by an
// inner handler.
type DatasetHolder struct {
	mu   sync.Mutex
	name string
}

// Get returns the recorded dataset name.
func (h *DatasetHolder) Get() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.name
}

func (h *DatasetHolder) set(name string) {
	h.mu.Lock()
	h.name = name
	h.mu.Unlock()
}

// WithDatasetHolder attaches an empty holder to the context.
func WithDatasetHolder(ctx context.Context) (context.Context, *DatasetHolder) {
	h := &DatasetHolder{}
	return context.WithValue(ctx, holderKey, h), h
}

// RecordDataset records the selected dataset name in the holder attached to
// ctx. It is a no-op when no holder is attached.
func RecordDataset(ctx context.Context, name string) {
	if h, ok := ctx.Value(holderKey).(*DatasetHolder); ok {
		h.set(name)
	}
}
