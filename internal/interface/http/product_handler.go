package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/application"
	"github.com/Jaaccob/SagaApp/internal/domain/projection"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
	"github.com/Jaaccob/SagaApp/internal/interface/middleware"
	"github.com/Jaaccob/SagaApp/pkg/response"
	"github.com/Jaaccob/SagaApp/pkg/validation"
)

type ProductCreator interface {
	Execute(ctx context.Context, cmd application.CreateProductCommand) (vo.ProductID, error)
}

type ProductReader interface {
	GetByID(ctx context.Context, id vo.ProductID) (*projection.Product, error)
}

type ProductHandler struct {
	Create ProductCreator
	Query  ProductReader
	Logger *logrus.Logger
}

func NewProductHandler(create ProductCreator, query ProductReader, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Create: create, Query: query, Logger: logger}
}

// Price and quantity are checked by the product itself so that clients get
// the same messages whichever way a product is created.
type createProductRequest struct {
	Code     string           `json:"code" binding:"required,code"`
	Name     string           `json:"name" binding:"required,max=255"`
	Price    *decimal.Decimal `json:"price"`
	Quantity int              `json:"quantity"`
}

type createdResponse struct {
	ID string `json:"id"`
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	ownerID, err := vo.ParseUserID(c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid token subject", nil)
		return
	}

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	id, err := h.Create.Execute(c.Request.Context(), application.CreateProductCommand{
		OwnerID:  ownerID,
		Code:     req.Code,
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, createdResponse{ID: id.String()}, "product created", nil)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := vo.ParseProductID(c.Param("id"))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid product id", nil)
		return
	}

	p, err := h.Query.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}
