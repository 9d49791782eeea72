package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keyforge/internal/application/reseller/usecases"
	"keyforge/internal/domain/reseller"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/logger"
	"keyforge/internal/shared/utils"
)

// ResellerHandler serves the owner-side reseller management.
type ResellerHandler struct {
	createUC *usecases.CreateResellerUseCase
	getUC    *usecases.GetResellerUseCase
	updateUC *usecases.UpdateResellerUseCase
	deleteUC *usecases.DeleteResellerUseCase
	logger   logger.Interface
}

func NewResellerHandler(
	createUC *usecases.CreateResellerUseCase,
	getUC *usecases.GetResellerUseCase,
	updateUC *usecases.UpdateResellerUseCase,
	deleteUC *usecases.DeleteResellerUseCase,
) *ResellerHandler {
	return &ResellerHandler{
		createUC: createUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		logger:   logger.NewLogger(),
	}
}

type CreateResellerRequest struct {
	AppID          uint                   `json:"app_id" binding:"required"`
	Username       string                 `json:"username" binding:"required,min=3,max=32"`
	Password       string                 `json:"password" binding:"required,min=8,max=72"`
	LicenseLimit   int                    `json:"license_limit"`
	AllowedActions *AllowedActionsPayload `json:"allowed_actions"`
}

type UpdateResellerRequest struct {
	Active         *bool                  `json:"active"`
	LicenseLimit   *int                   `json:"license_limit"`
	AllowedActions *AllowedActionsPayload `json:"allowed_actions"`
}

func (h *ResellerHandler) CreateReseller(c *gin.Context) {
	ownerID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateResellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.CreateResellerCommand{
		OwnerID:      ownerID,
		AppID:        req.AppID,
		Username:     req.Username,
		Password:     req.Password,
		LicenseLimit: req.LicenseLimit,
	}
	if req.AllowedActions != nil {
		cmd.AllowedActions = toAllowedActions(*req.AllowedActions)
	}

	created, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toResellerResponse(created), "reseller created")
}

func (h *ResellerHandler) GetReseller(c *gin.Context) {
	ownerID, resellerID, err := h.ownerAndResellerID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	r, err := h.getUC.Execute(c.Request.Context(), resellerID, ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toResellerResponse(r))
}

func (h *ResellerHandler) UpdateReseller(c *gin.Context) {
	ownerID, resellerID, err := h.ownerAndResellerID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateResellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	cmd := usecases.UpdateResellerCommand{
		ResellerID:   resellerID,
		OwnerID:      ownerID,
		Active:       req.Active,
		LicenseLimit: req.LicenseLimit,
	}
	if req.AllowedActions != nil {
		actions := toAllowedActions(*req.AllowedActions)
		cmd.AllowedActions = &actions
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "reseller updated", toResellerResponse(updated))
}

func (h *ResellerHandler) DeleteReseller(c *gin.Context) {
	ownerID, resellerID, err := h.ownerAndResellerID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), resellerID, ownerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "reseller deleted", nil)
}

func (h *ResellerHandler) ownerAndResellerID(c *gin.Context) (ownerID, resellerID uint, err error) {
	ownerID, err = utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		return 0, 0, err
	}
	resellerID, err = utils.ParseIDParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return ownerID, resellerID, nil
}

func toAllowedActions(p AllowedActionsPayload) reseller.AllowedActions {
	// Delete is owner-only and forced off by the domain regardless of
	// what is sent.
	return reseller.AllowedActions{
		Create:     p.Create,
		BanUnban:   p.BanUnban,
		EditExpiry: p.EditExpiry,
		Delete:     p.Delete,
	}
}
