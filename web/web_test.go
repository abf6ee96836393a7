package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"maroon_shop/api"
	"maroon_shop/client"
	"maroon_shop/config"
	"maroon_shop/database"
	"maroon_shop/services"
	"maroon_shop/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shop struct {
	web  http.Handler
	sm   *services.ServiceManager
	seed *services.SeedResult
}

func newShop(t *testing.T) *shop {
	t.Helper()
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("EMAIL_API_KEY", "")
	t.Setenv("AUTH_SESSION_SECRET", "test-secret")

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Load()
	sm := services.NewServiceManager(gecho.NewDefaultLogger(), cfg, db)

	catalogue, err := services.ParseCatalogue(nil)
	require.NoError(t, err)
	seed, err := sm.SeedService.Seed(context.Background(), catalogue)
	require.NoError(t, err)

	apiServer := httptest.NewServer(api.App(cfg, sm))
	t.Cleanup(apiServer.Close)
	apiClient := client.New(apiServer.URL, client.WithHTTPClient(apiServer.Client()))

	return &shop{
		web:  NewServer(cfg, gecho.NewDefaultLogger(), apiClient, sm).Router(),
		sm:   sm,
		seed: seed,
	}
}

func (s *shop) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.web.ServeHTTP(rec, req)
	return rec
}

func (s *shop) post(t *testing.T, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.web.ServeHTTP(rec, req)
	return rec
}

// login signs in the seeded customer and returns the session cookie.
func (s *shop) login(t *testing.T, customerID int64) *http.Cookie {
	t.Helper()
	rec := s.post(t, "/Account/Login", url.Values{"customerId": {fmt.Sprint(customerID)}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == "maroon_session" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func (s *shop) customerWithBasket(t *testing.T) *tables.Basket {
	t.Helper()
	require.Len(t, s.seed.Baskets, 1)
	basket, err := s.sm.Repositories.Baskets.GetByID(context.Background(), s.seed.Baskets[0])
	require.NoError(t, err)
	return basket
}

func TestProductPages(t *testing.T) {
	s := newShop(t)

	for _, target := range []string{"/", "/Product"} {
		rec := s.get(t, target)
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, 9, strings.Count(body, `class="card"`))
		assert.Contains(t, body, "Maroon blazer")
		assert.Contains(t, body, "£29.99")
		assert.Contains(t, body, "Sign in")
	}

	rec := s.get(t, "/Product/maroon-tie")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maroon tie")
	assert.Contains(t, rec.Body.String(), `name="productId"`)

	rec = s.get(t, "/Product/maroon-hat")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not found")
}

func TestLoginRequired(t *testing.T) {
	s := newShop(t)

	rec := s.get(t, "/Basket")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/Account/Login?returnUrl=%2FBasket", rec.Header().Get("Location"))

	rec = s.post(t, "/Basket/RemoveBasketItem", url.Values{"basketItemId": {"1"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.get(t, "/Basket", &http.Cookie{Name: "maroon_session", Value: "garbage"})
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestLogin(t *testing.T) {
	s := newShop(t)

	rec := s.post(t, "/Account/Login", url.Values{"customerId": {"1"}, "returnUrl": {"/Basket"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/Basket", rec.Header().Get("Location"))

	for _, returnURL := range []string{"https://evil.example/", "//evil.example/", "basket"} {
		rec = s.post(t, "/Account/Login", url.Values{"customerId": {"1"}, "returnUrl": {returnURL}})
		assert.Equal(t, "/Account", rec.Header().Get("Location"), returnURL)
	}

	rec = s.post(t, "/Account/Login", url.Values{"customerId": {"99"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No customer exists with that id.")

	rec = s.post(t, "/Account/Login", url.Values{"customerId": {"one"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Customer Id must be a whole number.")
}

func TestLogout(t *testing.T) {
	s := newShop(t)
	session := s.login(t, 1)

	rec := s.get(t, "/Account/Logout", session)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/Account/Login", rec.Header().Get("Location"))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "maroon_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestBasketPage(t *testing.T) {
	s := newShop(t)
	basket := s.customerWithBasket(t)
	session := s.login(t, basket.CustomerID)

	rec := s.get(t, "/Basket", session)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Maroon shirt, button down collar")
	assert.Contains(t, body, "£53.97")
	assert.Contains(t, body, `<span class="badge">3</span>`)

	// the customer whose basket became an order has none left
	rec = s.get(t, "/Basket", s.login(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your basket is empty.")
}

func TestAddToBasket(t *testing.T) {
	s := newShop(t)
	session := s.login(t, 1)
	ctx := context.Background()

	tie, err := s.sm.Repositories.Products.GetByUrlFriendlyName(ctx, "maroon-tie")
	require.NoError(t, err)

	rec := s.post(t, "/Product/AddToBasket", url.Values{"productId": {fmt.Sprint(tie.ProductID)}}, session)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/Basket", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodPost, "/Product/AddToBasket",
		strings.NewReader(url.Values{"productId": {fmt.Sprint(tie.ProductID)}, "quantity": {"2"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", "http://example.com/Product/maroon-tie")
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	s.web.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/Product/maroon-tie", rec.Header().Get("Location"))

	view, err := s.sm.BasketService.CustomerBasket(ctx, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.True(t, view.Basket.TotalPrice.Equal(decimal.RequireFromString("77.97")))

	rec = s.post(t, "/Product/AddToBasket", url.Values{"productId": {fmt.Sprint(tie.ProductID)}, "quantity": {"0"}}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.post(t, "/Product/AddToBasket", url.Values{"productId": {fmt.Sprint(tie.ProductID)}})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/Account/Login?returnUrl="))
}

type totalsResponse struct {
	Success          bool            `json:"success"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	BasketTotalPrice decimal.Decimal `json:"basketTotalPrice"`
}

func TestBasketQuantityAndRemoval(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	basket := s.customerWithBasket(t)
	session := s.login(t, basket.CustomerID)

	view, err := s.sm.BasketService.CustomerBasket(ctx, basket.CustomerID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	var women, collar tables.BasketItem
	for _, item := range view.Items {
		if item.Product.UrlFriendlyName == "maroon-t-shirt-women" {
			women = item
		} else {
			collar = item
		}
	}

	rec := s.post(t, "/Basket/UpdateBasketItemQuantity",
		url.Values{"basketItemId": {fmt.Sprint(women.BasketItemID)}, "quantity": {"3"}}, session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var totals totalsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.True(t, totals.TotalPrice.Equal(decimal.RequireFromString("35.97")))
	assert.True(t, totals.BasketTotalPrice.Equal(decimal.RequireFromString("77.95")))

	rec = s.post(t, "/Basket/UpdateBasketItemQuantity",
		url.Values{"basketItemId": {fmt.Sprint(women.BasketItemID)}, "quantity": {"0"}}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.post(t, "/Basket/RemoveBasketItem", url.Values{"basketItemId": {fmt.Sprint(collar.BasketItemID)}}, session)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	totals = totalsResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.True(t, totals.Success)
	assert.True(t, totals.BasketTotalPrice.Equal(decimal.RequireFromString("35.97")))

	rec = s.post(t, "/Basket/RemoveBasketItem", url.Values{"basketItemId": {fmt.Sprint(collar.BasketItemID)}}, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// another customer cannot touch the basket
	rec = s.post(t, "/Basket/RemoveBasketItem", url.Values{"basketItemId": {fmt.Sprint(women.BasketItemID)}}, s.login(t, 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccount(t *testing.T) {
	s := newShop(t)
	basket := s.customerWithBasket(t)
	session := s.login(t, basket.CustomerID)

	rec := s.get(t, "/Account", session)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Jane")
	assert.Contains(t, body, "789 Low Street")
	assert.Contains(t, body, "456 High Street")
	assert.Contains(t, body, "No orders yet.")

	rec = s.get(t, "/Account", s.login(t, 1))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf("#%d", s.seed.Orders[0]))
}

func TestEditAddress(t *testing.T) {
	s := newShop(t)
	ctx := context.Background()
	basket := s.customerWithBasket(t)
	session := s.login(t, basket.CustomerID)

	customer, err := s.sm.Repositories.Customers.GetByID(ctx, basket.CustomerID)
	require.NoError(t, err)
	target := fmt.Sprintf("/Account/Address/%d", customer.BillingAddressID)

	rec := s.get(t, target, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="789 Low Street"`)

	rec = s.post(t, target, url.Values{"line1": {""}, "postCode": {"ZZ9 9ZZ"}}, session)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Line 1 is required.")
	assert.Contains(t, rec.Body.String(), `value="ZZ9 9ZZ"`)

	rec = s.post(t, target, url.Values{"line1": {"1 New Street"}, "postCode": {"ZZ9 9ZZ"}, "country": {"UK"}}, session)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/Account", rec.Header().Get("Location"))

	address, err := s.sm.Repositories.Addresses.GetByID(ctx, customer.BillingAddressID)
	require.NoError(t, err)
	assert.Equal(t, "1 New Street", address.Line1)
	assert.Equal(t, "ZZ9 9ZZ", address.PostCode)

	// John's address is not Jane's to edit
	john, err := s.sm.Repositories.Customers.GetByID(ctx, 1)
	require.NoError(t, err)
	rec = s.get(t, fmt.Sprintf("/Account/Address/%d", john.BillingAddressID), session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocalReturnURL(t *testing.T) {
	cases := map[string]string{
		"":                      "/fallback",
		"/Basket":               "/Basket",
		"/Product?page=2":       "/Product?page=2",
		"//evil.example":        "/fallback",
		"/\\evil.example":       "/fallback",
		"https://evil.example/": "/fallback",
		"Basket":                "/fallback",
	}
	for raw, want := range cases {
		assert.Equal(t, want, localReturnURL(raw, "/fallback"), raw)
	}
}
