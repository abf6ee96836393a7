package handling

import (
	"encoding/json"
	"errors"
	"maroon_shop/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleError logs err and answers a bare 500.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.Send())
}

// WriteError answers err with the status its kind maps to. Unknown errors are logged as 500s.
func WriteError(w http.ResponseWriter, err error, msg string, logger *gecho.Logger) {
	var validation *lib.ValidationError
	if errors.As(err, &validation) {
		gecho.BadRequest(w,
			gecho.WithMessage("One or more validation errors occurred."),
			gecho.WithData(validation),
			gecho.Send(),
		)
		return
	}

	var reference *lib.ReferenceError
	if errors.As(err, &reference) {
		gecho.BadRequest(w,
			gecho.WithMessage(reference.Error()),
			gecho.WithData(lib.NewValidationError(reference.Field, reference.Error()+".")),
			gecho.Send(),
		)
		return
	}

	switch {
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage(msg+" not found"), gecho.Send())
	case errors.Is(err, lib.ErrIDMismatch),
		errors.Is(err, lib.ErrInvalidBody),
		errors.Is(err, lib.ErrInvalidID),
		errors.Is(err, lib.ErrInvalidPageSize),
		errors.Is(err, lib.ErrInvalidPageNumber):
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.WithMessage(msg+" conflicts with an existing record"), gecho.Send())
	case errors.Is(err, lib.ErrRateLimited):
		gecho.TooManyRequests(w, gecho.WithMessage(err.Error()), gecho.Send())
	default:
		HandleError(err, msg, logger, w)
	}
}

// WriteJSON writes v as the whole response body.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// Created answers 201 with the new resource's URL in Location.
func Created(w http.ResponseWriter, location string, v any) error {
	w.Header().Set("Location", location)
	return WriteJSON(w, http.StatusCreated, v)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
