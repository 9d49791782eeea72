package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keyforge/internal/application/client/usecases"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/logger"
	"keyforge/internal/shared/utils"
)

// ClientHandler serves both surfaces of the client API: the public
// session endpoints that authenticate with app credentials in the
// body, and the owner-side management endpoints behind JWT.
type ClientHandler struct {
	registerUC     *usecases.RegisterClientUseCase
	loginUC        *usecases.LoginClientUseCase
	validateUC     *usecases.ValidateSessionUseCase
	createDirectUC *usecases.CreateDirectClientUseCase
	listUC         *usecases.ListClientsUseCase
	toggleBanUC    *usecases.ToggleBanClientUseCase
	extendUC       *usecases.ExtendClientUseCase
	resetHWIDUC    *usecases.ResetClientHWIDUseCase
	deleteUC       *usecases.DeleteClientUseCase
	logger         logger.Interface
}

func NewClientHandler(
	registerUC *usecases.RegisterClientUseCase,
	loginUC *usecases.LoginClientUseCase,
	validateUC *usecases.ValidateSessionUseCase,
	createDirectUC *usecases.CreateDirectClientUseCase,
	listUC *usecases.ListClientsUseCase,
	toggleBanUC *usecases.ToggleBanClientUseCase,
	extendUC *usecases.ExtendClientUseCase,
	resetHWIDUC *usecases.ResetClientHWIDUseCase,
	deleteUC *usecases.DeleteClientUseCase,
) *ClientHandler {
	return &ClientHandler{
		registerUC:     registerUC,
		loginUC:        loginUC,
		validateUC:     validateUC,
		createDirectUC: createDirectUC,
		listUC:         listUC,
		toggleBanUC:    toggleBanUC,
		extendUC:       extendUC,
		resetHWIDUC:    resetHWIDUC,
		deleteUC:       deleteUC,
		logger:         logger.NewLogger(),
	}
}

type ClientRegisterRequest struct {
	AppID      string `json:"app_id" binding:"required"`
	AppSecret  string `json:"app_secret" binding:"required"`
	LicenseKey string `json:"license_key" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	HWID       string `json:"hwid"`
}

type ClientLoginRequest struct {
	AppID     string `json:"app_id" binding:"required"`
	AppSecret string `json:"app_secret" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	HWID      string `json:"hwid"`
}

type ValidateSessionRequest struct {
	AppID     string `json:"app_id" binding:"required"`
	AppSecret string `json:"app_secret" binding:"required"`
	Username  string `json:"username" binding:"required"`
	HWID      string `json:"hwid"`
}

type CreateDirectClientRequest struct {
	AppID         uint   `json:"app_id" binding:"required"`
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required,min=6,max=72"`
	ExpiresInDays int    `json:"expires_in_days" binding:"required,min=1"`
}

type ExtendClientRequest struct {
	Days int `json:"days" binding:"required,min=1"`
}

func (h *ClientHandler) Register(c *gin.Context) {
	var req ClientRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterClientCommand{
		AppID:      req.AppID,
		AppSecret:  req.AppSecret,
		LicenseKey: req.LicenseKey,
		Username:   req.Username,
		Password:   req.Password,
		HWID:       req.HWID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"client":     toClientResponse(result.Client),
		"expires_at": result.ExpiresAt,
	}, "registered")
}

func (h *ClientHandler) Login(c *gin.Context) {
	var req ClientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginClientCommand{
		AppID:     req.AppID,
		AppSecret: req.AppSecret,
		Username:  req.Username,
		Password:  req.Password,
		HWID:      req.HWID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "logged in", gin.H{
		"client":     toClientResponse(result.Client),
		"expires_at": result.ExpiresAt,
	})
}

func (h *ClientHandler) ValidateSession(c *gin.Context) {
	var req ValidateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.validateUC.Execute(c.Request.Context(), usecases.ValidateSessionCommand{
		AppID:     req.AppID,
		AppSecret: req.AppSecret,
		Username:  req.Username,
		HWID:      req.HWID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ClientHandler) CreateDirect(c *gin.Context) {
	ownerID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateDirectClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.createDirectUC.Execute(c.Request.Context(), usecases.CreateDirectClientCommand{
		OwnerID:       ownerID,
		AppID:         req.AppID,
		Username:      req.Username,
		Password:      req.Password,
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toClientResponse(created), "client created")
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	ownerID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	appID, err := utils.ParseQueryID(c, "app_id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, pageSize, err := utils.ParsePagination(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ListClientsCommand{
		OwnerID:  ownerID,
		AppID:    appID,
		Page:     page,
		PageSize: pageSize,
	}
	if bannedStr := c.Query("banned"); bannedStr != "" {
		banned := bannedStr == "true"
		cmd.Banned = &banned
	}

	clients, total, err := h.listUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toClientResponses(clients), total, page, pageSize)
}

func (h *ClientHandler) ToggleBan(c *gin.Context) {
	ownerID, clientID, err := h.ownerAndClientID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	updated, err := h.toggleBanUC.Execute(c.Request.Context(), clientID, ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "client status toggled", toClientResponse(updated))
}

func (h *ClientHandler) Extend(c *gin.Context) {
	ownerID, clientID, err := h.ownerAndClientID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ExtendClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.extendUC.Execute(c.Request.Context(), clientID, ownerID, req.Days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "client extended", toClientResponse(updated))
}

func (h *ClientHandler) ResetHWID(c *gin.Context) {
	ownerID, clientID, err := h.ownerAndClientID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	updated, err := h.resetHWIDUC.Execute(c.Request.Context(), clientID, ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "client HWID reset", toClientResponse(updated))
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	ownerID, clientID, err := h.ownerAndClientID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), clientID, ownerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "client deleted", nil)
}

func (h *ClientHandler) ownerAndClientID(c *gin.Context) (ownerID, clientID uint, err error) {
	ownerID, err = utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		return 0, 0, err
	}
	clientID, err = utils.ParseIDParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return ownerID, clientID, nil
}
