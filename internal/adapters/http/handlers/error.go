package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/orders/internal/core/logger"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

// ErrorResponse carries the error kind in Code so clients can tell an
// unknown customer from an unknown product; both are 400.
type ErrorResponse struct {
	Error string `json:"error" example:"product 6650f1c2a4b5c6d7e8f90123 has insufficient stock"`
	Code  string `json:"code,omitempty" example:"insufficient_stock"`
}

var kindStatus = map[serviceerrors.ErrorKind]int{
	serviceerrors.KindNotFound:            http.StatusNotFound,
	serviceerrors.KindConflict:            http.StatusConflict,
	serviceerrors.KindUnprocessableEntity: http.StatusUnprocessableEntity,
	serviceerrors.KindInsufficientStock:   http.StatusUnprocessableEntity,
	serviceerrors.KindInvalidRequest:      http.StatusBadRequest,
	serviceerrors.KindInvalidCustomer:     http.StatusBadRequest,
	serviceerrors.KindInvalidProduct:      http.StatusBadRequest,
}

func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		if status, ok := kindStatus[svcErr.Kind]; ok {
			c.JSON(status, ErrorResponse{Error: svcErr.Message, Code: svcErr.Kind.String()})
			return
		}
	}

	// storage and broker errors never leak to clients
	logger.Error(c.Request.Context(), "unhandled request error", err, map[string]any{
		"http.route": c.FullPath(),
	})
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
