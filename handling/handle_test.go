package handling

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"maroon_shop/lib"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorStatuses(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", lib.NewValidationError("line1", "Line 1 is required."), http.StatusBadRequest, "One or more validation errors occurred."},
		{"reference", fmt.Errorf("create basket: %w", &lib.ReferenceError{Field: "customerId"}), http.StatusBadRequest, ""},
		{"not found", fmt.Errorf("load: %w", lib.ErrNotFound), http.StatusNotFound, "Basket not found"},
		{"id mismatch", lib.ErrIDMismatch, http.StatusBadRequest, lib.ErrIDMismatch.Error()},
		{"conflict", lib.ErrConflict, http.StatusConflict, "Basket conflicts with an existing record"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err, "Basket", logger)

			assert.Equal(t, tt.status, rec.Code)
			if tt.message == "" {
				return
			}
			var body struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestWriteErrorCarriesFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, lib.NewValidationError("postCode", "Post Code is required."), "Address", gecho.NewDefaultLogger())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Data lib.ValidationError `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Post Code is required.", body.Data.FieldMessages()["postCode"])
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		number   int
		size     int
		badField string
	}{
		{"defaults", "", 1, 10, ""},
		{"explicit", "?pageNumber=3&pageSize=25", 3, 25, ""},
		{"zero page", "?pageNumber=0", 0, 0, "pageNumber"},
		{"size over max", "?pageSize=101", 0, 0, "pageSize"},
		{"window past int32", "?pageNumber=" + strconv.Itoa(math.MaxInt32) + "&pageSize=100", 0, 0, "pageNumber"},
		{"overflowing page", "?pageNumber=" + strconv.Itoa(math.MaxInt) + "&pageSize=100", 0, 0, "pageNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/Address"+tt.query, nil)
			number, size, err := ParsePage(r)

			if tt.badField != "" {
				var ve *lib.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.FieldMessages(), tt.badField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.number, number)
			assert.Equal(t, tt.size, size)
		})
	}
}
