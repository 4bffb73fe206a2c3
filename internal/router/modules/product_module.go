package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jaaccob/SagaApp/internal/container"
	handlers "github.com/Jaaccob/SagaApp/internal/interface/http"
	"github.com/Jaaccob/SagaApp/internal/interface/middleware"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
)

// ProductModule wires product commands and queries.
// Public: GET /api/products/:id
// Protected: POST /api/products
type ProductModule struct {
	Handler *handlers.ProductHandler
	JWT     *helpers.JWTManager
}

func NewProductModule(h *handlers.ProductHandler, jwt *helpers.JWTManager) *ProductModule {
	return &ProductModule{Handler: h, JWT: jwt}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/products/:id", readLimiter, m.Handler.GetProduct)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/products", m.Handler.CreateProduct)
	}
}
