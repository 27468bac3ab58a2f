package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/orders/internal/adapters/http/handlers"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/service"
	"github.com/rafaelleal24/orders/internal/core/serviceerrors"
)

type CustomerResponse struct {
	ID        string     `json:"id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type CustomerController struct {
	customerService *service.CustomerService
}

func NewCustomerController(customerService *service.CustomerService) *CustomerController {
	return &CustomerController{customerService: customerService}
}

// CreateCustomer godoc
// @Summary     Create a customer
// @Description Creates a new customer and returns its ID
// @Tags        customers
// @Produce     json
// @Success     201 {object} CustomerResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/customers [post]
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	id, err := cc.customerService.Create(c.Request.Context())
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CustomerResponse{ID: string(id)})
}

// GetCustomer godoc
// @Summary     Get customer by ID
// @Tags        customers
// @Produce     json
// @Param       id  path     string true "Customer ID"
// @Success     200 {object} CustomerResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/v1/customers/{id} [get]
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	customerID := c.Param("id")
	if !domain.ValidateID(customerID) {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("Invalid customer ID"))
		return
	}
	customer, err := cc.customerService.FindByID(c.Request.Context(), domain.ID(customerID))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, CustomerResponse{ID: string(customer.ID), CreatedAt: &customer.CreatedAt})
}
