package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keyforge/internal/application/app/usecases"
	"keyforge/internal/domain/app"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/logger"
	"keyforge/internal/shared/utils"
)

// AppHandler serves app CRUD, error message overrides and per-app
// stats for owners.
type AppHandler struct {
	createAppUC      *usecases.CreateAppUseCase
	getAppUC         *usecases.GetAppUseCase
	listAppsUC       *usecases.ListAppsUseCase
	updateAppUC      *usecases.UpdateAppUseCase
	deleteAppUC      *usecases.DeleteAppUseCase
	getMessagesUC    *usecases.GetErrorMessagesUseCase
	updateMessagesUC *usecases.UpdateErrorMessagesUseCase
	getStatsUC       *usecases.GetAppStatsUseCase
	logger           logger.Interface
}

func NewAppHandler(
	createAppUC *usecases.CreateAppUseCase,
	getAppUC *usecases.GetAppUseCase,
	listAppsUC *usecases.ListAppsUseCase,
	updateAppUC *usecases.UpdateAppUseCase,
	deleteAppUC *usecases.DeleteAppUseCase,
	getMessagesUC *usecases.GetErrorMessagesUseCase,
	updateMessagesUC *usecases.UpdateErrorMessagesUseCase,
	getStatsUC *usecases.GetAppStatsUseCase,
) *AppHandler {
	return &AppHandler{
		createAppUC:      createAppUC,
		getAppUC:         getAppUC,
		listAppsUC:       listAppsUC,
		updateAppUC:      updateAppUC,
		deleteAppUC:      deleteAppUC,
		getMessagesUC:    getMessagesUC,
		updateMessagesUC: updateMessagesUC,
		getStatsUC:       getStatsUC,
		logger:           logger.NewLogger(),
	}
}

type CreateAppRequest struct {
	Name     string              `json:"name" binding:"required,min=1,max=64"`
	Settings *AppSettingsPayload `json:"settings"`
}

type UpdateAppRequest struct {
	Name     *string             `json:"name"`
	Paused   *bool               `json:"paused"`
	Settings *AppSettingsPayload `json:"settings"`
}

type UpdateErrorMessagesRequest struct {
	Messages map[string]string `json:"messages" binding:"required"`
}

func (h *AppHandler) CreateApp(c *gin.Context) {
	ownerID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.CreateAppCommand{OwnerID: ownerID, Name: req.Name}
	if req.Settings != nil {
		cmd.Settings = app.Settings{
			HwidLock:              req.Settings.HwidLock,
			AllowCustomLicenseKey: req.Settings.AllowCustomLicenseKey,
		}
	}

	created, err := h.createAppUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toAppResponse(created), "app created")
}

func (h *AppHandler) ListApps(c *gin.Context) {
	ownerID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	apps, err := h.listAppsUC.Execute(c.Request.Context(), ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]AppResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toAppResponse(a))
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

func (h *AppHandler) GetApp(c *gin.Context) {
	ownerID, appID, err := h.ownerAndAppID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	a, err := h.getAppUC.Execute(c.Request.Context(), appID, ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toAppResponse(a))
}

func (h *AppHandler) UpdateApp(c *gin.Context) {
	ownerID, appID, err := h.ownerAndAppID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.UpdateAppCommand{
		AppID:   appID,
		OwnerID: ownerID,
		Name:    req.Name,
		Paused:  req.Paused,
	}
	if req.Settings != nil {
		cmd.Settings = &app.Settings{
			HwidLock:              req.Settings.HwidLock,
			AllowCustomLicenseKey: req.Settings.AllowCustomLicenseKey,
		}
	}

	updated, err := h.updateAppUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "app updated", toAppResponse(updated))
}

func (h *AppHandler) DeleteApp(c *gin.Context) {
	ownerID, appID, err := h.ownerAndAppID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteAppUC.Execute(c.Request.Context(), appID, ownerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "app deleted", nil)
}

func (h *AppHandler) GetErrorMessages(c *gin.Context) {
	ownerID, appID, err := h.ownerAndAppID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getMessagesUC.Execute(c.Request.Context(), appID, ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"messages":  result.Messages,
		"overrides": result.Overrides,
	})
}

func (h *AppHandler) UpdateErrorMessages(c *gin.Context) {
	ownerID, appID, err := h.ownerAndAppID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateErrorMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.updateMessagesUC.Execute(c.Request.Context(), usecases.UpdateErrorMessagesCommand{
		AppID:    appID,
		OwnerID:  ownerID,
		Messages: req.Messages,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "messages updated", gin.H{
		"messages":  result.Messages,
		"overrides": result.Overrides,
	})
}

func (h *AppHandler) GetAppStats(c *gin.Context) {
	ownerID, appID, err := h.ownerAndAppID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	stats, err := h.getStatsUC.Execute(c.Request.Context(), appID, ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

func (h *AppHandler) ownerAndAppID(c *gin.Context) (ownerID, appID uint, err error) {
	ownerID, err = utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		return 0, 0, err
	}
	appID, err = utils.ParseIDParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return ownerID, appID, nil
}
