package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		expected int
		code     string
	}{
		{"not found", serviceerrors.NewNotFoundError("missing"), http.StatusNotFound, "not_found"},
		{"conflict", serviceerrors.NewConflictError("stock changed"), http.StatusConflict, "conflict"},
		{"unprocessable", serviceerrors.NewUnprocessableEntityError("payload mismatch"), http.StatusUnprocessableEntity, "unprocessable_entity"},
		{"invalid request", serviceerrors.NewInvalidRequestError("bad"), http.StatusBadRequest, "invalid_request"},
		{"invalid customer", serviceerrors.NewInvalidCustomerError("no customer"), http.StatusBadRequest, "invalid_customer"},
		{"invalid product", serviceerrors.NewInvalidProductError("no product"), http.StatusBadRequest, "invalid_product"},
		{"insufficient stock", serviceerrors.NewInsufficientStockError("low"), http.StatusUnprocessableEntity, "insufficient_stock"},
		{"wrapped kind", fmt.Errorf("create: %w", serviceerrors.NewConflictError("x")), http.StatusConflict, "conflict"},
		{"plain error", errors.New("db down"), http.StatusInternalServerError, ""},
		{"unknown kind", &serviceerrors.ServiceError{Kind: serviceerrors.ErrorKind(99), Message: "?"}, http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tt.err)

			if rec.Code != tt.expected {
				t.Fatalf("expected status %d, got %d", tt.expected, rec.Code)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body %q: %v", rec.Body.String(), err)
			}
			if body.Code != tt.code {
				t.Fatalf("expected code %q, got %q", tt.code, body.Code)
			}
			if tt.expected == http.StatusInternalServerError && body.Error != "internal server error" {
				t.Fatalf("expected generic message, got %q", body.Error)
			}
		})
	}
}
