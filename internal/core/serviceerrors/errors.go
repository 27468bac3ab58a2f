package serviceerrors

import "errors"

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindInvalidCustomer
	KindInvalidProduct
	KindInsufficientStock
)

var kindNames = map[ErrorKind]string{
	KindNotFound:            "not_found",
	KindConflict:            "conflict",
	KindUnprocessableEntity: "unprocessable_entity",
	KindInvalidRequest:      "invalid_request",
	KindInvalidCustomer:     "invalid_customer",
	KindInvalidProduct:      "invalid_product",
	KindInsufficientStock:   "insufficient_stock",
}

// String is the stable name exposed to API clients and metrics labels.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

// The three order rejections below are client errors: retrying without
// changing the request yields the same result.

func NewInvalidCustomerError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidCustomer, Message: message}
}

func NewInvalidProductError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidProduct, Message: message}
}

func NewInsufficientStockError(message string) *ServiceError {
	return &ServiceError{Kind: KindInsufficientStock, Message: message}
}
