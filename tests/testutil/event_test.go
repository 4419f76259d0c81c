package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func newEvent(eventType string) *shared.BaseDomainEvent {
	return &shared.BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		At:        time.Now(),
		Aggregate: shared.AggregateRef{ID: uuid.New(), Type: "StoreOrder"},
		Tenant:    uuid.New(),
	}
}

func TestRecordingHandler(t *testing.T) {
	h := NewRecordingHandler("A", "B")
	assert.Equal(t, []string{"A", "B"}, h.EventTypes())

	ctx := context.Background()
	assert.NoError(t, h.Handle(ctx, newEvent("A")))
	assert.NoError(t, h.Handle(ctx, newEvent("B")))
	assert.NoError(t, h.Handle(ctx, newEvent("A")))

	assert.Equal(t, []string{"A", "B", "A"}, h.Types())
	assert.Equal(t, 2, h.Count("A"))
	assert.Equal(t, 0, h.Count("C"))

	boom := errors.New("boom")
	h.SetError(boom)
	assert.ErrorIs(t, h.Handle(ctx, newEvent("B")), boom)

	h.Reset()
	assert.Empty(t, h.Types())
	assert.NoError(t, h.Handle(ctx, newEvent("A")))
}
