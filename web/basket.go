package web

import (
	"maroon_shop/api/middleware"
	"maroon_shop/handling"
	"maroon_shop/lib"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
)

func (s *Server) Basket(w http.ResponseWriter, r *http.Request) {
	view, err := s.basket.CustomerBasket(r.Context(), middleware.CustomerID(r.Context()))
	if err != nil {
		s.fail(w, r, err, "basket")
		return
	}

	s.render(w, r, http.StatusOK, "basket.html", view)
}

type quantityChanged struct {
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	BasketTotalPrice decimal.Decimal `json:"basketTotalPrice"`
}

type itemRemoved struct {
	Success          bool            `json:"success"`
	BasketTotalPrice decimal.Decimal `json:"basketTotalPrice"`
}

func formInt(r *http.Request, key, label string) (int64, error) {
	value, err := strconv.ParseInt(r.PostFormValue(key), 10, 64)
	if err != nil {
		return 0, lib.NewValidationError(key, label+" must be a whole number.")
	}
	return value, nil
}

// UpdateBasketItemQuantity sets one line's quantity and answers with the new line and basket totals.
func (s *Server) UpdateBasketItemQuantity(w http.ResponseWriter, r *http.Request) {
	basketItemID, err := formInt(r, "basketItemId", "Basket Item Id")
	if err != nil {
		handling.WriteError(w, err, "Basket", s.logger)
		return
	}
	quantity, err := formInt(r, "quantity", "Quantity")
	if err != nil {
		handling.WriteError(w, err, "Basket", s.logger)
		return
	}

	totals, err := s.basket.UpdateItemQuantity(r.Context(), middleware.CustomerID(r.Context()), basketItemID, int(quantity))
	if err != nil {
		handling.WriteError(w, err, "Basket", s.logger)
		return
	}

	handling.WriteJSON(w, http.StatusOK, quantityChanged{
		TotalPrice:       totals.ItemTotalPrice,
		BasketTotalPrice: totals.BasketTotalPrice,
	})
}

func (s *Server) RemoveBasketItem(w http.ResponseWriter, r *http.Request) {
	basketItemID, err := formInt(r, "basketItemId", "Basket Item Id")
	if err != nil {
		handling.WriteError(w, err, "Basket", s.logger)
		return
	}

	total, err := s.basket.RemoveItem(r.Context(), middleware.CustomerID(r.Context()), basketItemID)
	if err != nil {
		handling.WriteError(w, err, "Basket", s.logger)
		return
	}

	handling.WriteJSON(w, http.StatusOK, itemRemoved{Success: true, BasketTotalPrice: total})
}
