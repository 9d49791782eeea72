package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keyforge/internal/application/license/usecases"
	"keyforge/internal/domain/license"
	"keyforge/internal/shared/constants"
	apperrors "keyforge/internal/shared/errors"
	"keyforge/internal/shared/logger"
	"keyforge/internal/shared/utils"
)

// LicenseHandler serves the owner-side license operations.
type LicenseHandler struct {
	createUC     *usecases.CreateLicensesUseCase
	listUC       *usecases.ListLicensesUseCase
	getUC        *usecases.GetLicenseUseCase
	updateUC     *usecases.UpdateLicenseUseCase
	toggleBanUC  *usecases.ToggleBanLicenseUseCase
	deleteUC     *usecases.DeleteLicenseUseCase
	bulkDeleteUC *usecases.BulkDeleteLicensesUseCase
	logger       logger.Interface
}

func NewLicenseHandler(
	createUC *usecases.CreateLicensesUseCase,
	listUC *usecases.ListLicensesUseCase,
	getUC *usecases.GetLicenseUseCase,
	updateUC *usecases.UpdateLicenseUseCase,
	toggleBanUC *usecases.ToggleBanLicenseUseCase,
	deleteUC *usecases.DeleteLicenseUseCase,
	bulkDeleteUC *usecases.BulkDeleteLicensesUseCase,
) *LicenseHandler {
	return &LicenseHandler{
		createUC:     createUC,
		listUC:       listUC,
		getUC:        getUC,
		updateUC:     updateUC,
		toggleBanUC:  toggleBanUC,
		deleteUC:     deleteUC,
		bulkDeleteUC: bulkDeleteUC,
		logger:       logger.NewLogger(),
	}
}

type CreateLicensesRequest struct {
	AppID         uint   `json:"app_id" binding:"required"`
	Count         int    `json:"count" binding:"omitempty,min=1,max=1000"`
	ExpiresInDays int    `json:"expires_in_days" binding:"required,min=1"`
	CustomKey     string `json:"custom_key"`
	Note          string `json:"note" binding:"omitempty,max=255"`
}

type UpdateLicenseRequest struct {
	Note       *string `json:"note"`
	ExtendDays *int    `json:"extend_days"`
}

type BulkDeleteRequest struct {
	LicenseIDs []uint `json:"license_ids" binding:"required,min=1"`
}

func (h *LicenseHandler) CreateLicenses(c *gin.Context) {
	ownerID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateLicensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	licenses, err := h.createUC.Execute(c.Request.Context(), usecases.CreateLicensesCommand{
		AppID:         req.AppID,
		OwnerID:       &ownerID,
		Count:         req.Count,
		ExpiresInDays: req.ExpiresInDays,
		CustomKey:     req.CustomKey,
		Note:          req.Note,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toLicenseResponses(licenses), "licenses created")
}

func (h *LicenseHandler) ListLicenses(c *gin.Context) {
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

	cmd := usecases.ListLicensesCommand{
		AppID:    appID,
		OwnerID:  ownerID,
		Page:     page,
		PageSize: pageSize,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := license.Status(statusStr)
		if !status.IsValid() {
			utils.ErrorResponseWithError(c, apperrors.NewValidationError("invalid status filter"))
			return
		}
		cmd.Status = &status
	}
	if usedStr := c.Query("used"); usedStr != "" {
		used := usedStr == "true"
		cmd.Used = &used
	}

	licenses, total, err := h.listUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toLicenseResponses(licenses), total, page, pageSize)
}

func (h *LicenseHandler) GetLicense(c *gin.Context) {
	ownerID, licenseID, err := h.ownerAndLicenseID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	l, err := h.getUC.Execute(c.Request.Context(), licenseID, ownerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toLicenseResponse(l))
}

func (h *LicenseHandler) UpdateLicense(c *gin.Context) {
	ownerID, licenseID, err := h.ownerAndLicenseID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateLicenseCommand{
		LicenseID:  licenseID,
		OwnerID:    &ownerID,
		Note:       req.Note,
		ExtendDays: req.ExtendDays,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "license updated", toLicenseResponse(l))
}

func (h *LicenseHandler) ToggleBan(c *gin.Context) {
	ownerID, licenseID, err := h.ownerAndLicenseID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	l, err := h.toggleBanUC.Execute(c.Request.Context(), usecases.ToggleBanLicenseCommand{
		LicenseID: licenseID,
		OwnerID:   &ownerID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "license status toggled", toLicenseResponse(l))
}

func (h *LicenseHandler) DeleteLicense(c *gin.Context) {
	ownerID, licenseID, err := h.ownerAndLicenseID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), licenseID, ownerID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "license deleted", nil)
}

func (h *LicenseHandler) BulkDelete(c *gin.Context) {
	ownerID, err := utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.bulkDeleteUC.Execute(c.Request.Context(), usecases.BulkDeleteLicensesCommand{
		OwnerID:    ownerID,
		LicenseIDs: req.LicenseIDs,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "licenses deleted", result)
}

func (h *LicenseHandler) ownerAndLicenseID(c *gin.Context) (ownerID, licenseID uint, err error) {
	ownerID, err = utils.GetUintFromContext(c, constants.ContextKeyUserID)
	if err != nil {
		return 0, 0, err
	}
	licenseID, err = utils.ParseIDParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return ownerID, licenseID, nil
}
