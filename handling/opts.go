package handling

import (
	"maroon_shop/lib"
	"math"
	"maroon_shop/structs"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ParsePage reads pageNumber and pageSize, defaulting to the first page of ten.
func ParsePage(r *http.Request) (pageNumber, pageSize int, err error) {
	query := r.URL.Query()
	pageNumber, pageSize = structs.DefaultPageNumber, structs.DefaultPageSize

	if raw := query.Get("pageNumber"); raw != "" {
		if pageNumber, err = strconv.Atoi(raw); err != nil || pageNumber < 1 {
			return 0, 0, lib.NewValidationError("pageNumber", "Page Number must be a whole number of at least 1.")
		}
	}

	if raw := query.Get("pageSize"); raw != "" {
		if pageSize, err = strconv.Atoi(raw); err != nil || pageSize < 1 {
			return 0, 0, lib.NewValidationError("pageSize", "Page Size must be a whole number of at least 1.")
		}
		if pageSize > structs.MaxPageSize {
			return 0, 0, lib.NewValidationError("pageSize", "Page Size cannot exceed "+strconv.Itoa(structs.MaxPageSize)+".")
		}
	}

	if pageNumber-1 > math.MaxInt32/pageSize {
		return 0, 0, lib.NewValidationError("pageNumber", "Page Number is too large.")
	}

	return pageNumber, pageSize, nil
}

func parseID(raw, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, lib.NewValidationError(field, lib.ErrInvalidID.Error()+".")
	}
	return id, nil
}

// PathID parses a numeric chi path parameter.
func PathID(r *http.Request, param string) (int64, error) {
	return parseID(chi.URLParam(r, param), param)
}

// QueryID parses the first of keys present in the query string. It is required.
func QueryID(r *http.Request, keys ...string) (int64, error) {
	query := r.URL.Query()
	for _, key := range keys {
		if raw := query.Get(key); raw != "" {
			return parseID(raw, key)
		}
	}
	return 0, lib.NewValidationError(keys[0], keys[0]+" is required.")
}

// QueryString returns a required, non-blank query value.
func QueryString(r *http.Request, key string) (string, error) {
	value := r.URL.Query().Get(key)
	if strings.TrimSpace(value) == "" {
		return "", lib.NewValidationError(key, key+" is required.")
	}
	return value, nil
}
