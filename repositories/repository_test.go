package repositories

import (
	"context"
	"fmt"
	"math"
	"testing"

	"maroon_shop/database"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, cache ProductCache) *Manager {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.CreateSchema(context.Background(), db))
	return NewManager(db, cache)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createAddress(t *testing.T, m *Manager, postCode string) *tables.Address {
	t.Helper()
	a, err := m.Addresses.Create(context.Background(), &structs.CreateAddressRequest{
		NameOfRecipient: "Ada Lovelace",
		Line1:           "1 Analytical Row",
		Town:            "London",
		PostCode:        postCode,
		Country:         "UK",
	})
	require.NoError(t, err)
	return a
}

func createCustomer(t *testing.T, m *Manager) *tables.Customer {
	t.Helper()
	address := createAddress(t, m, "N1 9GU")
	c, err := m.Customers.Create(context.Background(), &structs.CreateCustomerRequest{
		FirstName:                "Ada",
		LastName:                 "Lovelace",
		EmailAddress:             "ada@example.com",
		BillingAddressID:         address.AddressID,
		DefaultShippingAddressID: address.AddressID,
	})
	require.NoError(t, err)
	return c
}

func createProduct(t *testing.T, m *Manager, slug, price string) *tables.Product {
	t.Helper()
	p, err := m.Products.Create(context.Background(), &structs.CreateProductRequest{
		Name:            "Product " + slug,
		UrlFriendlyName: slug,
		Description:     "A cake.",
		ImageUrl:        "/images/" + slug + ".jpg",
		Price:           money(price),
	})
	require.NoError(t, err)
	return p
}

func TestGetByIDNotFound(t *testing.T) {
	m := newTestManager(t, nil)

	_, err := m.Addresses.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, lib.ErrNotFound)

	created := createAddress(t, m, "AB1 2CD")
	got, err := m.Addresses.GetByID(context.Background(), created.AddressID)
	require.NoError(t, err)
	assert.Equal(t, "AB1 2CD", got.PostCode)
	assert.Equal(t, "1 Analytical Row", got.Line1)
}

func TestListPageCoversEveryRowOnce(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()

	var want []int64
	for i := 0; i < 25; i++ {
		want = append(want, createAddress(t, m, fmt.Sprintf("PC%02d", i)).AddressID)
	}

	var got []int64
	for page := 1; page <= 3; page++ {
		rows, total, err := m.Addresses.ListPage(ctx, page, 10)
		require.NoError(t, err)
		assert.Equal(t, 25, total)
		for _, row := range rows {
			got = append(got, row.AddressID)
		}
	}
	assert.Equal(t, want, got)

	rows, total, err := m.Addresses.ListPage(ctx, 4, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Empty(t, rows)

	_, _, err = m.Addresses.ListPage(ctx, 1, 0)
	assert.ErrorIs(t, err, lib.ErrInvalidPageSize)
}

func TestListByPostCodeIsCaseSensitivePrefix(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()

	createAddress(t, m, "AB1 2CD")
	createAddress(t, m, "ab3 4EF")
	createAddress(t, m, "AB9 9ZZ")
	createAddress(t, m, "XAB 1AA")

	rows, total, err := m.Addresses.ListByPostCode(ctx, "AB", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, rows, 2)
	assert.Equal(t, "AB1 2CD", rows[0].PostCode)
	assert.Equal(t, "AB9 9ZZ", rows[1].PostCode)
}

func TestListByPostCodeMatchesMultibytePrefix(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()

	createAddress(t, m, "ÖX1 2AB")
	createAddress(t, m, "öx1 2AB")
	createAddress(t, m, "OX1 2AB")

	for _, prefix := range []string{"Ö", "ÖX", "ÖX1 2AB"} {
		rows, total, err := m.Addresses.ListByPostCode(ctx, prefix, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, total, prefix)
		require.Len(t, rows, 1, prefix)
		assert.Equal(t, "ÖX1 2AB", rows[0].PostCode)
	}
}

func TestListPageRejectsOutOfRangePage(t *testing.T) {
	m := newTestManager(t, nil)

	_, _, err := m.Addresses.ListPage(context.Background(), math.MaxInt, 10)
	assert.ErrorIs(t, err, lib.ErrInvalidPageNumber)
}

func TestCreateRejectsMissingReferences(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()

	_, err := m.Customers.Create(ctx, &structs.CreateCustomerRequest{
		FirstName: "No", LastName: "Address", EmailAddress: "x@example.com",
		BillingAddressID: 41, DefaultShippingAddressID: 42,
	})
	var re *lib.ReferenceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "billingAddressId", re.Field)

	_, err = m.Baskets.Create(ctx, &structs.CreateBasketRequest{CustomerID: 7})
	assert.ErrorIs(t, err, lib.ErrReferentialIntegrity)

	_, err = m.Orders.Create(ctx, &structs.CreateOrderRequest{CustomerID: 7, BillingAddressID: 1, ShippingAddressID: 1})
	assert.ErrorIs(t, err, lib.ErrReferentialIntegrity)

	_, err = m.BasketItems.Create(ctx, &structs.CreateBasketItemRequest{BasketID: 3, ProductID: 4, Quantity: 1, UnitPrice: money("1")})
	assert.ErrorIs(t, err, lib.ErrReferentialIntegrity)

	_, err = m.OrderItems.Create(ctx, &structs.CreateOrderItemRequest{OrderID: 3, ProductID: 4, Quantity: 1, UnitPrice: money("1")})
	assert.ErrorIs(t, err, lib.ErrReferentialIntegrity)

	for name, count := range map[string]func() (int, error){
		"customers":    func() (int, error) { _, n, err := m.Customers.ListPage(ctx, 1, 10); return n, err },
		"baskets":      func() (int, error) { _, n, err := m.Baskets.ListPage(ctx, 1, 10); return n, err },
		"orders":       func() (int, error) { _, n, err := m.Orders.ListPage(ctx, 1, 10); return n, err },
		"basket items": func() (int, error) { _, n, err := m.BasketItems.ListPage(ctx, 1, 10); return n, err },
		"order items":  func() (int, error) { _, n, err := m.OrderItems.ListPage(ctx, 1, 10); return n, err },
	} {
		n, err := count()
		require.NoError(t, err)
		assert.Zero(t, n, name)
	}
}

func TestUpdateOutcomes(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	address := createAddress(t, m, "AB1 2CD")

	req := &structs.UpdateAddressRequest{AddressID: address.AddressID + 1, Line1: "Changed", PostCode: "ZZ1"}
	assert.ErrorIs(t, m.Addresses.Update(ctx, address.AddressID, req), lib.ErrIDMismatch)

	unchanged, err := m.Addresses.GetByID(ctx, address.AddressID)
	require.NoError(t, err)
	assert.Equal(t, "1 Analytical Row", unchanged.Line1)

	missing := &structs.UpdateAddressRequest{AddressID: 500, Line1: "Changed", PostCode: "ZZ1"}
	assert.ErrorIs(t, m.Addresses.Update(ctx, 500, missing), lib.ErrNotFound)

	req.AddressID = address.AddressID
	require.NoError(t, m.Addresses.Update(ctx, address.AddressID, req))

	changed, err := m.Addresses.GetByID(ctx, address.AddressID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", changed.Line1)
	assert.Equal(t, "ZZ1", changed.PostCode)
	assert.Empty(t, changed.Town)
}

func TestCustomerUpdateChecksReferences(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	customer := createCustomer(t, m)

	err := m.Customers.Update(ctx, customer.CustomerID, &structs.UpdateCustomerRequest{
		CustomerID: customer.CustomerID, FirstName: "Ada", LastName: "King", EmailAddress: "ada@example.com",
		BillingAddressID: customer.BillingAddressID, DefaultShippingAddressID: 999,
	})
	var re *lib.ReferenceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "defaultShippingAddressId", re.Field)
}

func TestProductSlugLookup(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	cake := createProduct(t, m, "chocolate-cake", "12.50")

	got, err := m.Products.GetByUrlFriendlyName(ctx, "chocolate-cake")
	require.NoError(t, err)
	assert.Equal(t, cake.ProductID, got.ProductID)
	assert.True(t, got.Price.Equal(money("12.50")))

	_, err = m.Products.GetByUrlFriendlyName(ctx, "Chocolate-Cake")
	assert.ErrorIs(t, err, lib.ErrNotFound)

	_, err = m.Products.GetByUrlFriendlyName(ctx, fmt.Sprint(cake.ProductID))
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestProductSlugMustBeUnique(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	createProduct(t, m, "lemon-tart", "4.00")
	other := createProduct(t, m, "apple-pie", "5.00")

	_, err := m.Products.Create(ctx, &structs.CreateProductRequest{
		Name: "Dup", UrlFriendlyName: "lemon-tart", Description: "d", ImageUrl: "/i.jpg", Price: money("1"),
	})
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Url Friendly Name is already in use.", ve.FieldMessages()["urlFriendlyName"])

	err = m.Products.Update(ctx, other.ProductID, &structs.UpdateProductRequest{
		ProductID: other.ProductID, Name: "Apple", UrlFriendlyName: "lemon-tart", Description: "d", ImageUrl: "/i.jpg", Price: money("1"),
	})
	require.ErrorAs(t, err, &ve)

	err = m.Products.Update(ctx, other.ProductID, &structs.UpdateProductRequest{
		ProductID: other.ProductID, Name: "Apple", UrlFriendlyName: "apple-pie", Description: "d", ImageUrl: "/i.jpg", Price: money("6.25"),
	})
	require.NoError(t, err)
}

type fakeProductCache struct {
	entries     map[string]*tables.Product
	hits        int
	invalidated []string
}

func (c *fakeProductCache) GetProduct(_ context.Context, slug string) (*tables.Product, bool) {
	p, ok := c.entries[slug]
	if ok {
		c.hits++
	}
	return p, ok
}

func (c *fakeProductCache) SetProduct(_ context.Context, p *tables.Product) {
	c.entries[p.UrlFriendlyName] = p
}

func (c *fakeProductCache) InvalidateProduct(_ context.Context, slug string) {
	delete(c.entries, slug)
	c.invalidated = append(c.invalidated, slug)
}

func TestProductCacheIsReadThroughAndInvalidated(t *testing.T) {
	cache := &fakeProductCache{entries: map[string]*tables.Product{}}
	m := newTestManager(t, cache)
	ctx := context.Background()
	p := createProduct(t, m, "scone", "2.00")

	_, err := m.Products.GetByUrlFriendlyName(ctx, "scone")
	require.NoError(t, err)
	_, err = m.Products.GetByUrlFriendlyName(ctx, "scone")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	require.NoError(t, m.Products.Update(ctx, p.ProductID, &structs.UpdateProductRequest{
		ProductID: p.ProductID, Name: "Scone", UrlFriendlyName: "fruit-scone", Description: "d", ImageUrl: "/i.jpg", Price: money("2.10"),
	}))
	assert.Equal(t, []string{"scone", "fruit-scone"}, cache.invalidated)
	assert.NotContains(t, cache.entries, "scone")
}

func TestBasketItemTotals(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	customer := createCustomer(t, m)
	product := createProduct(t, m, "cupcake", "5.00")

	basket, err := m.Baskets.Create(ctx, &structs.CreateBasketRequest{CustomerID: customer.CustomerID})
	require.NoError(t, err)
	assert.True(t, basket.TotalPrice.IsZero())

	item, err := m.BasketItems.Create(ctx, &structs.CreateBasketItemRequest{
		BasketID: basket.BasketID, ProductID: product.ProductID, Quantity: 3, UnitPrice: money("5.00"),
	})
	require.NoError(t, err)
	assert.True(t, item.TotalPrice.Equal(money("15.00")), item.TotalPrice.String())

	reloaded, err := m.Baskets.GetByID(ctx, basket.BasketID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalPrice.Equal(money("15.00")))

	require.NoError(t, m.BasketItems.Update(ctx, item.BasketItemID, &structs.UpdateBasketItemRequest{
		BasketItemID: item.BasketItemID, BasketID: basket.BasketID, ProductID: product.ProductID, Quantity: 5, UnitPrice: money("5.00"),
	}))

	updated, err := m.BasketItems.GetByID(ctx, item.BasketItemID)
	require.NoError(t, err)
	assert.True(t, updated.TotalPrice.Equal(money("25.00")))

	reloaded, err = m.Baskets.GetByID(ctx, basket.BasketID)
	require.NoError(t, err)
	assert.True(t, reloaded.TotalPrice.Equal(money("25.00")))
}

func TestBasketItemMoveRecomputesBothBaskets(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	customer := createCustomer(t, m)
	product := createProduct(t, m, "eclair", "2.50")

	first, err := m.Baskets.Create(ctx, &structs.CreateBasketRequest{CustomerID: customer.CustomerID})
	require.NoError(t, err)
	second, err := m.Baskets.Create(ctx, &structs.CreateBasketRequest{CustomerID: customer.CustomerID})
	require.NoError(t, err)

	item, err := m.BasketItems.Create(ctx, &structs.CreateBasketItemRequest{
		BasketID: first.BasketID, ProductID: product.ProductID, Quantity: 2, UnitPrice: money("2.50"),
	})
	require.NoError(t, err)

	require.NoError(t, m.BasketItems.Update(ctx, item.BasketItemID, &structs.UpdateBasketItemRequest{
		BasketItemID: item.BasketItemID, BasketID: second.BasketID, ProductID: product.ProductID, Quantity: 2, UnitPrice: money("2.50"),
	}))

	a, err := m.Baskets.GetByID(ctx, first.BasketID)
	require.NoError(t, err)
	b, err := m.Baskets.GetByID(ctx, second.BasketID)
	require.NoError(t, err)
	assert.True(t, a.TotalPrice.IsZero())
	assert.True(t, b.TotalPrice.Equal(money("5.00")))
}

func TestOrderUpdateKeepsDerivedFields(t *testing.T) {
	m := newTestManager(t, nil)
	ctx := context.Background()
	customer := createCustomer(t, m)
	product := createProduct(t, m, "brownie", "3.00")

	order, err := m.Orders.Create(ctx, &structs.CreateOrderRequest{
		CustomerID: customer.CustomerID, BillingAddressID: customer.BillingAddressID, ShippingAddressID: customer.DefaultShippingAddressID,
	})
	require.NoError(t, err)

	_, err = m.OrderItems.Create(ctx, &structs.CreateOrderItemRequest{
		OrderID: order.OrderID, ProductID: product.ProductID, Quantity: 4, UnitPrice: money("3.00"),
	})
	require.NoError(t, err)

	shipping := createAddress(t, m, "E1 6AN")
	require.NoError(t, m.Orders.Update(ctx, order.OrderID, &structs.UpdateOrderRequest{
		OrderID: order.OrderID, CustomerID: customer.CustomerID, BillingAddressID: customer.BillingAddressID, ShippingAddressID: shipping.AddressID,
	}))

	got, err := m.Orders.GetByID(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, shipping.AddressID, got.ShippingAddressID)
	assert.True(t, got.TotalPrice.Equal(money("12.00")))
	assert.Equal(t, order.DateCreated.Unix(), got.DateCreated.Unix())

	rows, total, err := m.Orders.ListByCustomerID(ctx, customer.CustomerID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, order.OrderID, rows[0].OrderID)
}
