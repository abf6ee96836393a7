package web

import (
	"errors"
	"maroon_shop/api/middleware"
	"maroon_shop/client"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"net/http"
	"strconv"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type accountPage struct {
	Customer *structs.CustomerResponse
	Billing  *structs.AddressResponse
	Shipping *structs.AddressResponse
	Orders   []structs.OrderResponse
}

// Account shows the signed-in customer with their addresses and orders.
func (s *Server) Account(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customer, err := s.api.Customer().Item(middleware.CustomerID(ctx)).Get(ctx)
	if err != nil {
		s.fail(w, r, err, "customer")
		return
	}
	billing, err := s.api.Address().Item(customer.BillingAddressID).Get(ctx)
	if err != nil {
		s.fail(w, r, err, "billing address")
		return
	}
	shipping := billing
	if customer.DefaultShippingAddressID != customer.BillingAddressID {
		shipping, err = s.api.Address().Item(customer.DefaultShippingAddressID).Get(ctx)
		if err != nil {
			s.fail(w, r, err, "shipping address")
			return
		}
	}
	orders, err := s.api.Customer().Orders(ctx, customer.CustomerID)
	if err != nil {
		s.fail(w, r, err, "orders")
		return
	}

	s.render(w, r, http.StatusOK, "account.html", accountPage{
		Customer: customer,
		Billing:  billing,
		Shipping: shipping,
		Orders:   orders.Data,
	})
}

type addressPage struct {
	Address *structs.AddressResponse
	Errors  map[string]string
}

// ownAddress loads an address of the signed-in customer. Anyone else's is not found.
func (s *Server) ownAddress(r *http.Request) (*structs.AddressResponse, error) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return nil, lib.ErrNotFound
	}
	customer, err := s.api.Customer().Item(middleware.CustomerID(ctx)).Get(ctx)
	if err != nil {
		return nil, err
	}
	if id != customer.BillingAddressID && id != customer.DefaultShippingAddressID {
		return nil, lib.ErrNotFound
	}
	return s.api.Address().Item(id).Get(ctx)
}

func (s *Server) AddressForm(w http.ResponseWriter, r *http.Request) {
	address, err := s.ownAddress(r)
	if err != nil {
		s.fail(w, r, err, "address")
		return
	}

	s.render(w, r, http.StatusOK, "address.html", addressPage{Address: address})
}

// UpdateAddress saves the form through the API. Rejected fields re-render the form.
func (s *Server) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	address, err := s.ownAddress(r)
	if err != nil {
		s.fail(w, r, err, "address")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := func(key string) string { return strings.TrimSpace(r.PostForm.Get(key)) }
	req := structs.UpdateAddressRequest{
		AddressID:       address.AddressID,
		NameOfRecipient: form("nameOfRecipient"),
		Line1:           form("line1"),
		Line2:           form("line2"),
		Town:            form("town"),
		County:          form("county"),
		PostCode:        form("postCode"),
		Country:         form("country"),
	}

	err = s.api.Address().Update(r.Context(), address.AddressID, &req)
	if apiErr, ok := client.IsValidation(err); ok {
		submitted := &structs.AddressResponse{
			AddressID:       req.AddressID,
			NameOfRecipient: req.NameOfRecipient,
			Line1:           req.Line1,
			Line2:           req.Line2,
			Town:            req.Town,
			County:          req.County,
			PostCode:        req.PostCode,
			Country:         req.Country,
		}
		s.render(w, r, http.StatusBadRequest, "address.html", addressPage{Address: submitted, Errors: apiErr.FieldMessages()})
		return
	}
	if err != nil {
		s.fail(w, r, err, "address")
		return
	}

	http.Redirect(w, r, "/Account", http.StatusSeeOther)
}

type loginPage struct {
	ReturnURL  string
	CustomerID string
	Error      string
}

func (s *Server) LoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", loginPage{
		ReturnURL: localReturnURL(r.URL.Query().Get("returnUrl"), "/Account"),
	})
}

// Login starts a session for the customer id entered. There is no password; the
// session only identifies the customer.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	page := loginPage{
		ReturnURL:  localReturnURL(r.PostForm.Get("returnUrl"), "/Account"),
		CustomerID: strings.TrimSpace(r.PostForm.Get("customerId")),
	}

	customerID, err := strconv.ParseInt(page.CustomerID, 10, 64)
	if err != nil {
		page.Error = "Customer Id must be a whole number."
		s.render(w, r, http.StatusBadRequest, "login.html", page)
		return
	}

	token, claims, err := s.auth.Login(r.Context(), customerID)
	var validation *lib.ValidationError
	if errors.As(err, &validation) {
		page.Error = validation.Errors[0].Message
		s.render(w, r, http.StatusBadRequest, "login.html", page)
		return
	}
	if err != nil {
		s.fail(w, r, err, "session")
		return
	}

	lib.SetCookie(s.cfg.Web.CookieName, token, claims.Exp, w)
	http.Redirect(w, r, page.ReturnURL, http.StatusSeeOther)
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.GetClaimsFromContext(r.Context()); ok {
		if err := s.auth.Logout(r.Context(), claims); err != nil {
			s.logger.Warn("Session not revoked", gecho.Field("customer_id", claims.CustomerID), gecho.Field("error", err))
		}
	}

	lib.ClearCookie(s.cfg.Web.CookieName, w)
	http.Redirect(w, r, "/Account/Login", http.StatusSeeOther)
}
