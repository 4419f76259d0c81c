package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Paging(t *testing.T) {
	f := DefaultFilter()
	assert.True(t, f.Paged())
	assert.Equal(t, 0, f.Offset())
	assert.Equal(t, 20, f.Limit())

	f.Page = 3
	assert.Equal(t, 40, f.Offset())

	f.PageSize = 500
	assert.Equal(t, MaxPageSize, f.Limit())
	assert.Equal(t, 2*MaxPageSize, f.Offset())

	f.Page = 0
	assert.False(t, f.Paged())
	assert.Equal(t, 0, f.Offset())
}

func TestFilter_WithFilterCopies(t *testing.T) {
	base := DefaultFilter().WithFilter("grade", "P3")
	derived := base.WithFilter("is_active", true)

	assert.Len(t, base.Filters, 1)
	assert.Len(t, derived.Filters, 2)
	assert.Equal(t, "P3", derived.Filters["grade"])
}

func TestAggregate_PullDomainEvents(t *testing.T) {
	root := NewTenantAggregateRoot(uuid.New())
	assert.Equal(t, 1, root.GetVersion())

	ev := NewBaseDomainEvent("StoreOrderCreated", "StoreOrder", root.ID, root.TenantID)
	root.AddDomainEvent(&ev)

	events := root.PullDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "StoreOrderCreated", events[0].EventType())
	assert.Equal(t, root.ID, events[0].AggregateID())
	assert.Equal(t, root.TenantID, events[0].TenantID())
	assert.Empty(t, root.GetDomainEvents())
}

func TestAggregate_SetCreatedByIgnoresNil(t *testing.T) {
	root := NewTenantAggregateRoot(uuid.New())
	root.SetCreatedBy(uuid.Nil)
	assert.Nil(t, root.CreatedBy)

	user := uuid.New()
	root.SetCreatedBy(user)
	require.NotNil(t, root.CreatedBy)
	assert.Equal(t, user, *root.CreatedBy)
}

func TestDomainError_IsMatchesCode(t *testing.T) {
	wrapped := fmt.Errorf("settle: %w", NewDomainError(ErrAlreadySettled.Code, "Order was paid yesterday"))
	assert.True(t, errors.Is(wrapped, ErrAlreadySettled))
	assert.False(t, errors.Is(wrapped, ErrNotPaid))
}
