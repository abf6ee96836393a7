package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maroon_shop/api"
	"maroon_shop/config"
	"maroon_shop/database"
	"maroon_shop/services"
	"maroon_shop/structs"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *services.ServiceManager) {
	t.Helper()
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("EMAIL_API_KEY", "")

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.CreateSchema(context.Background(), db))

	cfg := config.Load()
	sm := services.NewServiceManager(gecho.NewDefaultLogger(), cfg, db)
	server := httptest.NewServer(api.App(cfg, sm))
	t.Cleanup(server.Close)

	return New(server.URL, WithHTTPClient(server.Client())), sm
}

func TestAddressRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.Address().Create(ctx, &structs.CreateAddressRequest{Line1: "1 Low Street", PostCode: "AB1 2CD"})
	require.NoError(t, err)
	id := created.Record.AddressID
	assert.NotZero(t, id)
	assert.Contains(t, created.Location, "/api/Address/")

	got, err := c.Address().Item(id).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AB1 2CD", got.PostCode)

	err = c.Address().Update(ctx, id, &structs.UpdateAddressRequest{AddressID: id, Line1: "2 High Street", PostCode: "ZZ9 9ZZ"})
	require.NoError(t, err)

	got, err = c.Address().Item(id).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2 High Street", got.Line1)

	page, err := c.Address().ByPostCode(ctx, "ZZ", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalRecords)
	assert.Equal(t, structs.DefaultPageSize, page.PageSize)

	page, err = c.Address().ByPostCode(ctx, "AB", 1, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestListPaging(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := c.Address().Create(ctx, &structs.CreateAddressRequest{Line1: "1 Low Street", PostCode: "AB1"})
		require.NoError(t, err)
	}

	page, err := c.Address().List(ctx, 2, 5)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.TotalPages)
	assert.Empty(t, page.NextPageURL)
	assert.NotEmpty(t, page.PreviousPageURL)

	_, err = c.Address().List(ctx, 1, structs.MaxPageSize+1)
	apiErr, ok := IsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, apiErr.Errors)
}

func TestErrors(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.Customer().Item(404).Get(ctx)
	assert.True(t, IsNotFound(err))

	_, err = c.Product().ItemString("abc").Get(ctx)
	_, ok := IsValidation(err)
	assert.True(t, ok)

	_, err = c.Product().Create(ctx, &structs.CreateProductRequest{
		Name:            "Maroon tie",
		UrlFriendlyName: "maroon-tie",
		Description:     "A tie.",
		ImageUrl:        "/tie.jpg",
		Price:           decimal.Zero,
	})
	apiErr, ok := IsValidation(err)
	require.True(t, ok)
	messages := []string{}
	for _, fe := range apiErr.Errors {
		messages = append(messages, fe.Message)
	}
	assert.Contains(t, messages, "Price must be greater than zero.")
}

func TestProductBySlug(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	created, err := c.Product().Create(ctx, &structs.CreateProductRequest{
		Name:            "Maroon tie",
		UrlFriendlyName: "maroon-tie",
		Description:     "A tie.",
		ImageUrl:        "/tie.jpg",
		Price:           decimal.RequireFromString("25.99"),
	})
	require.NoError(t, err)

	product, err := c.Product().BySlug(ctx, "maroon-tie")
	require.NoError(t, err)
	assert.Equal(t, created.Record.ProductID, product.ProductID)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("25.99")))

	_, err = c.Product().BySlug(ctx, "maroon-hat")
	assert.True(t, IsNotFound(err))
}

func TestCustomerOrdersFollowsRedirect(t *testing.T) {
	c, sm := newTestClient(t)
	ctx := context.Background()

	catalogue, err := services.ParseCatalogue(nil)
	require.NoError(t, err)
	result, err := sm.SeedService.Seed(ctx, catalogue)
	require.NoError(t, err)
	require.Len(t, result.Orders, 1)

	order, err := c.Order().Item(result.Orders[0]).Get(ctx)
	require.NoError(t, err)

	orders, err := c.Customer().Orders(ctx, order.CustomerID)
	require.NoError(t, err)
	require.Equal(t, 1, orders.TotalRecords)
	assert.Equal(t, order.OrderID, orders.Data[0].OrderID)

	items, err := c.OrderItem().ByOrderID(ctx, order.OrderID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, items.TotalRecords)
}

func TestDecodeErrorWithoutEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	_, err := New(server.URL).Basket().List(context.Background(), 1, 10)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestTimeoutOptionLeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	for _, opts := range [][]Option{
		{WithHTTPClient(shared), WithTimeout(2 * time.Second)},
		{WithTimeout(2 * time.Second), WithHTTPClient(shared)},
	} {
		c := New("http://shop.test", opts...)
		assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
		assert.NotSame(t, shared, c.httpClient)
	}
	assert.Equal(t, time.Minute, shared.Timeout)

	c := New("http://shop.test", WithHTTPClient(nil), WithTimeout(3*time.Second))
	require.NotNil(t, c.httpClient)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)

	assert.Same(t, shared, New("http://shop.test", WithHTTPClient(shared)).httpClient)
	assert.Equal(t, defaultTimeout, New("http://shop.test").httpClient.Timeout)
}

func TestTimeoutOptionWithTestServerClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"pageNumber":1,"pageSize":10,"totalRecords":0,"totalPages":0}`))
	}))
	t.Cleanup(server.Close)

	page, err := New(server.URL, WithHTTPClient(server.Client()), WithTimeout(time.Second)).Basket().List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalRecords)
	assert.Zero(t, server.Client().Timeout)
}
