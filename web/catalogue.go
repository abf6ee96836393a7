package web

import (
	"errors"
	"maroon_shop/api/middleware"
	"maroon_shop/client"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

const productsPageSize = 9

func isNotFound(err error) bool {
	return client.IsNotFound(err) || errors.Is(err, lib.ErrNotFound)
}

type productsPage struct {
	Products []structs.ProductResponse
	Total    int
}

// Products lists the first page of the catalogue.
func (s *Server) Products(w http.ResponseWriter, r *http.Request) {
	page, err := s.api.Product().List(r.Context(), structs.DefaultPageNumber, productsPageSize)
	if err != nil {
		s.fail(w, r, err, "products")
		return
	}

	s.render(w, r, http.StatusOK, "products.html", productsPage{Products: page.Data, Total: page.TotalRecords})
}

type productPage struct {
	Product  *structs.ProductResponse
	SignedIn bool
}

func (s *Server) ProductDetail(w http.ResponseWriter, r *http.Request) {
	product, err := s.api.Product().BySlug(r.Context(), chi.URLParam(r, "urlFriendlyName"))
	if err != nil {
		s.fail(w, r, err, "product")
		return
	}

	s.render(w, r, http.StatusOK, "product.html", productPage{
		Product:  product,
		SignedIn: middleware.CustomerID(r.Context()) != 0,
	})
}

// AddToBasket takes productId and an optional quantity (default 1) and sends the
// customer back to the page they came from.
func (s *Server) AddToBasket(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	productID, err := strconv.ParseInt(r.PostForm.Get("productId"), 10, 64)
	if err != nil || productID < 1 {
		http.Error(w, "Invalid product", http.StatusBadRequest)
		return
	}

	quantity := 1
	if raw := r.PostForm.Get("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil || quantity < 1 {
			http.Error(w, "Quantity must be at least 1.", http.StatusBadRequest)
			return
		}
	}

	customerID := middleware.CustomerID(r.Context())
	if _, err := s.basket.AddToBasket(r.Context(), customerID, productID, quantity); err != nil {
		s.fail(w, r, err, "basket")
		return
	}

	s.logger.Debug("Added to basket",
		gecho.Field("customer_id", customerID),
		gecho.Field("product_id", productID),
		gecho.Field("quantity", quantity),
	)
	http.Redirect(w, r, refererPath(r, "/Basket"), http.StatusSeeOther)
}
