package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"maroon_shop/config"
	"maroon_shop/database"
	"maroon_shop/services"
	"maroon_shop/structs"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) (http.Handler, *services.ServiceManager) {
	t.Helper()
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("EMAIL_API_KEY", "")

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.CreateSchema(context.Background(), db))

	cfg := config.Load()
	sm := services.NewServiceManager(gecho.NewDefaultLogger(), cfg, db)
	return App(cfg, sm), sm
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createAddress(t *testing.T, h http.Handler, postCode string) structs.AddressResponse {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/Address/Create",
		fmt.Sprintf(`{"nameOfRecipient":"John Doe","line1":"123 Main Street","postCode":%q}`, postCode))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[structs.AddressResponse](t, rec)
}

func createCustomer(t *testing.T, h http.Handler) structs.CustomerResponse {
	t.Helper()
	address := createAddress(t, h, "AB1 2CD")
	rec := do(t, h, http.MethodPost, "/api/Customer/Create", fmt.Sprintf(
		`{"firstName":"John","lastName":"Doe","emailAddress":"john@test.com","billingAddressId":%d,"defaultShippingAddressId":%d}`,
		address.AddressID, address.AddressID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[structs.CustomerResponse](t, rec)
}

func TestCreateReturnsLocationOfGetByID(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/Address/Create", `{"line1":"1 High Street","postCode":"AB1 2CD"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[structs.AddressResponse](t, rec)
	assert.Equal(t, fmt.Sprintf("http://example.com/api/Address/%d", created.AddressID), rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/api/Address/%d", created.AddressID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[structs.AddressResponse](t, rec))
}

func TestLocationHonoursForwardedProto(t *testing.T) {
	h, _ := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/Address/Create", strings.NewReader(`{"line1":"1 High Street","postCode":"AB1"}`))
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "https://example.com/api/Address/"))
}

func TestGetByIDStatuses(t *testing.T) {
	h, _ := newTestAPI(t)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/Customer/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/Customer/abc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/Product/GetById/1", "").Code)
}

func TestListPagingAndLinks(t *testing.T) {
	h, _ := newTestAPI(t)
	for i := 0; i < 12; i++ {
		createAddress(t, h, fmt.Sprintf("AB%d", i))
	}

	rec := do(t, h, http.MethodGet, "/api/Address?pageNumber=1&pageSize=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[structs.PagedResponse[structs.AddressResponse]](t, rec)
	assert.Len(t, first.Data, 5)
	assert.Equal(t, 12, first.TotalRecords)
	assert.Equal(t, 3, first.TotalPages)
	assert.Empty(t, first.PreviousPageURL)
	assert.Equal(t, "http://example.com/api/Address?pageNumber=2&pageSize=5", first.NextPageURL)

	last := decode[structs.PagedResponse[structs.AddressResponse]](t, do(t, h, http.MethodGet, "/api/Address?pageNumber=3&pageSize=5", ""))
	assert.Len(t, last.Data, 2)
	assert.Empty(t, last.NextPageURL)
	assert.NotEmpty(t, last.PreviousPageURL)

	defaults := decode[structs.PagedResponse[structs.AddressResponse]](t, do(t, h, http.MethodGet, "/api/Address", ""))
	assert.Equal(t, 1, defaults.PageNumber)
	assert.Equal(t, 10, defaults.PageSize)

	for _, query := range []string{"pageSize=0", "pageSize=101", "pageNumber=0", "pageNumber=x", "pageNumber=9223372036854775807", "pageNumber=100000000&pageSize=100"} {
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/Address?"+query, "").Code, query)
	}
}

func TestFilteredListingKeepsFilterInLinks(t *testing.T) {
	h, _ := newTestAPI(t)
	createAddress(t, h, "AB1 2CD")
	createAddress(t, h, "AB9 9ZZ")
	createAddress(t, h, "ab1 2cd")
	createAddress(t, h, "CD1 1AA")

	rec := do(t, h, http.MethodGet, "/api/Address/ByPostCode?postCode=AB&pageSize=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[structs.PagedResponse[structs.AddressResponse]](t, rec)
	assert.Equal(t, 2, page.TotalRecords)
	assert.Contains(t, page.NextPageURL, "/api/Address/ByPostCode?")
	assert.Contains(t, page.NextPageURL, "postCode=AB")

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/Address/ByPostCode", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/Basket/ByCustomerId?customerId=x", "").Code)
}

func TestCreateValidation(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/Product/Create",
		`{"name":"`+strings.Repeat("x", 51)+`","urlFriendlyName":"bad slug","description":"d","imageUrl":"/i.jpg","price":"0"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Product Name cannot exceed 50 characters.")
	assert.Contains(t, body, "Url Friendly Name can only contain letters, numbers, hyphens, and underscores.")
	assert.Contains(t, body, "Price must be greater than zero.")

	rec = do(t, h, http.MethodPost, "/api/Address/Create", `{"line1":"x","postCode":"y","surprise":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/Product/Create",
		`{"name":"Penny sweets","urlFriendlyName":"penny-sweets","description":"d","imageUrl":"/i.jpg","price":"0.004"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price cannot have more than two decimal places.")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/Product/penny-sweets", "").Code)
}

func TestCreateWithMissingReferenceWritesNothing(t *testing.T) {
	h, sm := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/BasketItem/Create", `{"basketId":5,"productId":6,"quantity":1,"unitPrice":"1.00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPost, "/api/Basket/Create", `{"customerId":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, total, err := sm.Repositories.Baskets.ListPage(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestUpdateStatuses(t *testing.T) {
	h, _ := newTestAPI(t)
	address := createAddress(t, h, "AB1 2CD")
	path := fmt.Sprintf("/api/Address/Update?id=%d", address.AddressID)

	rec := do(t, h, http.MethodPut, path, fmt.Sprintf(`{"addressId":%d,"line1":"2 High Street","postCode":"ZZ9"}`, address.AddressID+1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/Address/Update?id=99", `{"addressId":99,"line1":"2 High Street","postCode":"ZZ9"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/api/Address/Update?addressId=%d", address.AddressID),
		fmt.Sprintf(`{"addressId":%d,"line1":"2 High Street","postCode":"ZZ9"}`, address.AddressID))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	updated := decode[structs.AddressResponse](t, do(t, h, http.MethodGet, fmt.Sprintf("/api/Address/%d", address.AddressID), ""))
	assert.Equal(t, "2 High Street", updated.Line1)
	assert.Equal(t, "ZZ9", updated.PostCode)
	assert.Empty(t, updated.NameOfRecipient)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/api/Address/Update", `{}`).Code)
}

func TestProductSlugRoute(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/api/Product/Create",
		`{"name":"Maroon tie","urlFriendlyName":"maroon-tie","description":"A tie.","imageUrl":"/tie.jpg","price":"25.99"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[structs.ProductResponse](t, rec)
	assert.Contains(t, rec.Header().Get("Location"), fmt.Sprintf("/api/Product/GetById/%d", created.ProductID))

	rec = do(t, h, http.MethodGet, "/api/Product/maroon-tie", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ProductID, decode[structs.ProductResponse](t, rec).ProductID)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/Product/Maroon-Tie", "").Code)

	rec = do(t, h, http.MethodPost, "/api/Product/Create",
		`{"name":"Other tie","urlFriendlyName":"maroon-tie","description":"A tie.","imageUrl":"/tie.jpg","price":"1.00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Url Friendly Name is already in use.")
}

func TestCustomerOrdersRedirects(t *testing.T) {
	h, _ := newTestAPI(t)
	customer := createCustomer(t, h)

	rec := do(t, h, http.MethodGet, fmt.Sprintf("/api/Customer/%d/Orders", customer.CustomerID), "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("http://example.com/api/Order/ByCustomerId?customerId=%d", customer.CustomerID), rec.Header().Get("Location"))
}

func TestBasketItemWritesKeepTotals(t *testing.T) {
	h, _ := newTestAPI(t)
	customer := createCustomer(t, h)

	rec := do(t, h, http.MethodPost, "/api/Product/Create",
		`{"name":"Maroon tie","urlFriendlyName":"maroon-tie","description":"A tie.","imageUrl":"/tie.jpg","price":"5.00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	product := decode[structs.ProductResponse](t, rec)

	rec = do(t, h, http.MethodPost, "/api/Basket/Create", fmt.Sprintf(`{"customerId":%d}`, customer.CustomerID))
	require.Equal(t, http.StatusCreated, rec.Code)
	basket := decode[structs.BasketResponse](t, rec)
	assert.True(t, basket.TotalPrice.IsZero())

	rec = do(t, h, http.MethodPost, "/api/BasketItem/Create",
		fmt.Sprintf(`{"basketId":%d,"productId":%d,"quantity":3,"unitPrice":"5.00"}`, basket.BasketID, product.ProductID))
	require.Equal(t, http.StatusCreated, rec.Code)
	item := decode[structs.BasketItemResponse](t, rec)
	assert.True(t, item.TotalPrice.Equal(decimal.RequireFromString("15.00")))

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/api/BasketItem/Update?id=%d", item.BasketItemID),
		fmt.Sprintf(`{"basketItemId":%d,"basketId":%d,"productId":%d,"quantity":5,"unitPrice":"5.00"}`, item.BasketItemID, basket.BasketID, product.ProductID))
	require.Equal(t, http.StatusNoContent, rec.Code)

	reloaded := decode[structs.BasketResponse](t, do(t, h, http.MethodGet, fmt.Sprintf("/api/Basket/%d", basket.BasketID), ""))
	assert.True(t, reloaded.TotalPrice.Equal(decimal.RequireFromString("25.00")))

	page := decode[structs.PagedResponse[structs.BasketItemResponse]](t,
		do(t, h, http.MethodGet, fmt.Sprintf("/api/BasketItem/ByBasketId?basketId=%d", basket.BasketID), ""))
	require.Len(t, page.Data, 1)
	assert.Equal(t, 5, page.Data[0].Quantity)
}

func TestHealthAndUnknownRoutes(t *testing.T) {
	h, _ := newTestAPI(t)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/server", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health/database", "").Code)
	rec := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "maroon_shop_checkout_orders_placed_total")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/nope", "").Code)
}
