package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jaaccob/SagaApp/internal/container"
	handlers "github.com/Jaaccob/SagaApp/internal/interface/http"
	"github.com/Jaaccob/SagaApp/internal/interface/middleware"
)

// UserModule exposes registration and login.
// Public: POST /api/users/auth/register, POST /api/users/auth/login
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/users/auth")
	auth.POST("/register", registerLimiter, m.Handler.Register)
	auth.POST("/login", loginLimiter, m.Handler.Login)
}
