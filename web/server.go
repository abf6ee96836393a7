// Package web is the server-rendered storefront. Catalogue and account reads go through
// the API client; the basket workflow calls the services directly.
package web

import (
	"maroon_shop/api/middleware"
	"maroon_shop/client"
	"maroon_shop/config"
	"maroon_shop/services"
	"maroon_shop/structs"
	"net/http"
	"net/url"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

const contentSecurityPolicy = "default-src 'self'; img-src 'self' https: data:; frame-ancestors 'none'"

type Server struct {
	cfg    *structs.Config
	logger *gecho.Logger
	api    *client.Client
	basket *services.BasketService
	auth   *services.AuthService
	mw     *middleware.Middleware
	pages  *pages
}

func NewServer(cfg *structs.Config, logger *gecho.Logger, api *client.Client, sm *services.ServiceManager) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		api:    api,
		basket: sm.BasketService,
		auth:   sm.AuthService,
		mw:     middleware.NewMiddleware(cfg, config.NewLogger(false), sm.CacheService, sm.AuthService),
		pages:  mustParsePages(),
	}
}

// Router builds the storefront routes.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)
	r.Use(s.mw.BodyLimit(s.cfg.Server.MaxBodyBytes))
	r.Use(s.mw.SecurityHeaders(contentSecurityPolicy))
	r.Use(middleware.MetricsMiddleware)
	r.Use(s.mw.RequestLogging())
	r.Use(s.mw.SessionMiddleware(s.cfg.Web.CookieName))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFiles()))))

	r.Get("/", s.Products)
	r.Get("/Product", s.Products)
	r.Get("/Product/{urlFriendlyName}", s.ProductDetail)

	r.Get("/Account/Login", s.LoginForm)
	r.Post("/Account/Login", s.Login)
	r.Get("/Account/Logout", s.Logout)

	// pages
	r.Group(func(r chi.Router) {
		r.Use(s.mw.RequireSession(s.redirectToLogin))

		r.Post("/Product/AddToBasket", s.AddToBasket)
		r.Get("/Basket", s.Basket)
		r.Get("/Account", s.Account)
		r.Get("/Account/Address/{id}", s.AddressForm)
		r.Post("/Account/Address/{id}", s.UpdateAddress)
	})

	// basket calls from the page script
	r.Group(func(r chi.Router) {
		r.Use(s.mw.RequireSession(func(w http.ResponseWriter, r *http.Request) {
			gecho.Unauthorized(w, gecho.WithMessage("Sign in to change your basket"), gecho.Send())
		}))

		r.Post("/Basket/UpdateBasketItemQuantity", s.UpdateBasketItemQuantity)
		r.Post("/Basket/RemoveBasketItem", s.RemoveBasketItem)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusNotFound, "notfound.html", nil)
	})

	return r
}

func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	returnURL := r.URL.RequestURI()
	if r.Method != http.MethodGet {
		returnURL = refererPath(r, "/")
	}
	http.Redirect(w, r, "/Account/Login?"+url.Values{"returnUrl": {returnURL}}.Encode(), http.StatusFound)
}

// localReturnURL accepts only same-site paths, so login cannot be used as an open redirect.
func localReturnURL(raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	if u.Scheme != "" || u.Host != "" {
		return fallback
	}
	if len(u.Path) == 0 || u.Path[0] != '/' || (len(u.Path) > 1 && (u.Path[1] == '/' || u.Path[1] == '\\')) {
		return fallback
	}
	return u.RequestURI()
}

// refererPath is the path of the page that sent r, when that page is ours.
func refererPath(r *http.Request, fallback string) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Host != r.Host {
		return fallback
	}
	return localReturnURL(u.RequestURI(), fallback)
}
