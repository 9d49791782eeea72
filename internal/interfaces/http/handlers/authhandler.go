package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keyforge/internal/application/user/usecases"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/logger"
	"keyforge/internal/shared/utils"
)

// AuthHandler serves owner registration, login and profile.
type AuthHandler struct {
	registerUC   *usecases.RegisterUserUseCase
	loginUC      *usecases.LoginUserUseCase
	getProfileUC *usecases.GetProfileUseCase
	logger       logger.Interface
}

func NewAuthHandler(
	registerUC *usecases.RegisterUserUseCase,
	loginUC *usecases.LoginUserUseCase,
	getProfileUC *usecases.GetProfileUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		getProfileUC: getProfileUC,
		logger:       logger.NewLogger(),
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User   UserResponse  `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid register request", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterUserCommand{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, authResponse{
		User: toUserResponse(result.User),
		Tokens: TokenResponse{
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
			ExpiresIn:    result.Tokens.ExpiresIn,
		},
	}, "account created")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "logged in", authResponse{
		User: toUserResponse(result.User),
		Tokens: TokenResponse{
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
			ExpiresIn:    result.Tokens.ExpiresIn,
		},
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getProfileUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"user":      toUserResponse(result.User),
		"limits":    result.Limits,
		"app_count": result.AppCount,
	})
}
