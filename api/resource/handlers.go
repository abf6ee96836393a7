package resource

import (
	"context"
	"maroon_shop/handling"
	"maroon_shop/lib"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// Store is what a repository offers the shared handlers. T is the table model,
// C and U the create and update requests.
type Store[T, C, U any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	ListPage(ctx context.Context, pageNumber, pageSize int) ([]T, int, error)
	Create(ctx context.Context, req *C) (*T, error)
	Update(ctx context.Context, id int64, req *U) error
}

// Handlers serves the routes every resource has: List, GetById, Create and Update.
type Handlers[T, C, U, R any] struct {
	Name     string
	logger   *gecho.Logger
	store    Store[T, C, U]
	response func(*T) R
	id       func(*T) int64
	idKey    string
}

// New builds the handler set for resource name. idKey is the body id field, which
// Update also accepts as its query parameter.
func New[T, C, U, R any](name, idKey string, logger *gecho.Logger, store Store[T, C, U], response func(*T) R, id func(*T) int64) *Handlers[T, C, U, R] {
	return &Handlers[T, C, U, R]{
		Name:     name,
		logger:   logger,
		store:    store,
		response: response,
		id:       id,
		idKey:    idKey,
	}
}

func (h *Handlers[T, C, U, R]) route(action string) string {
	return h.Name + "." + action
}

// RegisterRoutes mounts the shared routes.
func (h *Handlers[T, C, U, R]) RegisterRoutes(r chi.Router) {
	handling.Register(r, h.route("List"), h.List)
	handling.Register(r, h.route("GetById"), h.GetByID)
	handling.Register(r, h.route("Create"), h.Create)
	handling.Register(r, h.route("Update"), h.Update)
}

func (h *Handlers[T, C, U, R]) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r, "id")
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	row, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	handling.WriteJSON(w, http.StatusOK, h.response(row))
}

func (h *Handlers[T, C, U, R]) List(w http.ResponseWriter, r *http.Request) {
	h.WritePage(w, r, h.route("List"), nil, h.store.ListPage)
}

// Lister loads one page of a listing.
type Lister[T any] func(ctx context.Context, pageNumber, pageSize int) ([]T, int, error)

// WritePage answers with one page of the named listing; filter is carried into the page links.
func (h *Handlers[T, C, U, R]) WritePage(w http.ResponseWriter, r *http.Request, routeName string, filter url.Values, list Lister[T]) {
	pageNumber, pageSize, err := handling.ParsePage(r)
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	rows, total, err := list(r.Context(), pageNumber, pageSize)
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	page, err := lib.NewPage(lib.MapPage(rows, h.response), pageNumber, pageSize, total, handling.PageLinks(r, routeName, filter))
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	handling.WriteJSON(w, http.StatusOK, page)
}

// ByID serves a listing filtered on a foreign key given in the query as key.
func (h *Handlers[T, C, U, R]) ByID(routeName, key string, list func(ctx context.Context, id int64, pageNumber, pageSize int) ([]T, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := handling.QueryID(r, key)
		if err != nil {
			handling.WriteError(w, err, h.Name, h.logger)
			return
		}

		filter := url.Values{key: {strconv.FormatInt(id, 10)}}
		h.WritePage(w, r, routeName, filter, func(ctx context.Context, pageNumber, pageSize int) ([]T, int, error) {
			return list(ctx, id, pageNumber, pageSize)
		})
	}
}

func (h *Handlers[T, C, U, R]) Create(w http.ResponseWriter, r *http.Request) {
	req, err := lib.ExtractAndValidateBody[C](r)
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	row, err := h.store.Create(r.Context(), req)
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	id := h.id(row)
	h.logger.Debug("Created record", gecho.Field("resource", h.Name), gecho.Field("id", id))

	location := handling.URLFor(r, h.route("GetById"), handling.IDParam(id), nil)
	handling.Created(w, location, h.response(row))
}

func (h *Handlers[T, C, U, R]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handling.QueryID(r, "id", h.idKey)
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	req, err := lib.ExtractAndValidateBody[U](r)
	if err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	if err := h.store.Update(r.Context(), id, req); err != nil {
		handling.WriteError(w, err, h.Name, h.logger)
		return
	}

	handling.NoContent(w)
}
