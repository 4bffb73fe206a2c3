package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Jaaccob/SagaApp/internal/application"
	"github.com/Jaaccob/SagaApp/internal/domain/vo"
	"github.com/Jaaccob/SagaApp/pkg/helpers"
	"github.com/Jaaccob/SagaApp/pkg/response"
	"github.com/Jaaccob/SagaApp/pkg/validation"
)

type UserAccounts interface {
	Register(ctx context.Context, cmd application.RegisterUserCommand) (vo.UserID, error)
	Login(ctx context.Context, cmd application.LoginCommand) (helpers.TokenPair, error)
}

type UserHandler struct {
	Svc    UserAccounts
	Logger *logrus.Logger
}

func NewUserHandler(svc UserAccounts, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	id, err := h.Svc.Register(c.Request.Context(), application.RegisterUserCommand{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, createdResponse{ID: id.String()}, "user registered", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	pair, err := h.Svc.Login(c.Request.Context(), application.LoginCommand{Username: req.Username, Password: req.Password})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, pair, "login successful", nil)
}
