package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, tenantID uuid.UUID, name string, price int64, tax int64) *CatalogItem {
	t.Helper()
	item, err := NewCatalogItem(tenantID, name, ItemTypeBook, "", decimal.NewFromInt(price), decimal.NewFromInt(tax))
	require.NoError(t, err)
	return item
}

func TestNewPackage(t *testing.T) {
	tenantID := uuid.New()
	yearID := uuid.New()
	book := newTestItem(t, tenantID, "Reader", 100, 10)
	pen := newTestItem(t, tenantID, "Pen", 5, 0)
	items := map[uuid.UUID]*CatalogItem{book.ID: book, pen.ID: pen}

	t.Run("computes total price from current item prices", func(t *testing.T) {
		pkg, err := NewPackage(tenantID, "Grade 4 Kit", yearID, []ComponentSpec{
			{ItemID: book.ID, Quantity: 2},
			{ItemID: pen.ID, Quantity: 4},
		}, items)
		require.NoError(t, err)

		assert.True(t, pkg.TotalPrice.Equal(decimal.NewFromInt(220)))
		assert.True(t, pkg.EffectivePrice().Equal(decimal.NewFromInt(220)))
		assert.True(t, pkg.DiscountAmount().IsZero())
		require.Len(t, pkg.Components, 2)
		assert.Equal(t, pkg.ID, pkg.Components[0].PackageID)
		assert.True(t, pkg.Components[0].TaxPercentage.Equal(decimal.NewFromInt(10)))
		assert.Len(t, pkg.GetDomainEvents(), 1)
	})

	t.Run("fails when an item does not resolve", func(t *testing.T) {
		_, err := NewPackage(tenantID, "Kit", yearID, []ComponentSpec{{ItemID: uuid.New(), Quantity: 1}}, items)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrItemNotFound))
	})

	t.Run("fails without components or year", func(t *testing.T) {
		_, err := NewPackage(tenantID, "Kit", yearID, nil, items)
		require.Error(t, err)
		_, err = NewPackage(tenantID, "Kit", uuid.Nil, []ComponentSpec{{ItemID: book.ID, Quantity: 1}}, items)
		require.Error(t, err)
	})

	t.Run("price snapshot ignores later item price changes", func(t *testing.T) {
		pkg, err := NewPackage(tenantID, "Kit", yearID, []ComponentSpec{{ItemID: pen.ID, Quantity: 2}}, items)
		require.NoError(t, err)

		require.NoError(t, pen.ChangePrice(decimal.NewFromInt(50)))
		assert.True(t, pkg.TotalPrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, pkg.Components[0].UnitPrice.Equal(decimal.NewFromInt(5)))
	})
}

func TestPackage_Updates(t *testing.T) {
	tenantID := uuid.New()
	book := newTestItem(t, tenantID, "Reader", 100, 0)
	pkg, err := NewPackage(tenantID, "Kit", uuid.New(), []ComponentSpec{{ItemID: book.ID, Quantity: 1}, {ItemID: book.ID, Quantity: 1}},
		map[uuid.UUID]*CatalogItem{book.ID: book})
	require.NoError(t, err)
	assert.Len(t, pkg.ComponentItemIDs(), 1)

	discounted := decimal.NewFromInt(180)
	require.NoError(t, pkg.SetDiscountedPrice(&discounted))
	assert.True(t, pkg.EffectivePrice().Equal(discounted))
	assert.True(t, pkg.DiscountAmount().Equal(decimal.NewFromInt(20)))
	assert.True(t, pkg.TotalPrice.Equal(decimal.NewFromInt(200)))

	tooHigh := decimal.NewFromInt(500)
	assert.Error(t, pkg.SetDiscountedPrice(&tooHigh))

	require.NoError(t, pkg.SetDiscountedPrice(nil))
	assert.True(t, pkg.EffectivePrice().Equal(decimal.NewFromInt(200)))

	grade := "5"
	pkg.SetScope(&grade, nil)
	require.NotNil(t, pkg.Grade)
	assert.Error(t, pkg.Rename("", ""))
	pkg.SetActive(false)
	assert.False(t, pkg.IsActive)
}
