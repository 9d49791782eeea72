package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	licenseusecases "keyforge/internal/application/license/usecases"
	"keyforge/internal/application/reseller/usecases"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/logger"
	"keyforge/internal/shared/utils"
)

// ResellerAuthHandler serves the reseller-facing endpoints: login,
// profile, dashboard and license operations gated by allowedActions.
type ResellerAuthHandler struct {
	loginUC         *usecases.LoginResellerUseCase
	profileUC       *usecases.GetResellerProfileUseCase
	dashboardUC     *usecases.GetDashboardUseCase
	listLicensesUC  *usecases.ListResellerLicensesUseCase
	createLicenseUC *licenseusecases.CreateLicensesUseCase
	toggleBanUC     *licenseusecases.ToggleBanLicenseUseCase
	updateExpiryUC  *licenseusecases.UpdateLicenseUseCase
	logger          logger.Interface
}

func NewResellerAuthHandler(
	loginUC *usecases.LoginResellerUseCase,
	profileUC *usecases.GetResellerProfileUseCase,
	dashboardUC *usecases.GetDashboardUseCase,
	listLicensesUC *usecases.ListResellerLicensesUseCase,
	createLicenseUC *licenseusecases.CreateLicensesUseCase,
	toggleBanUC *licenseusecases.ToggleBanLicenseUseCase,
	updateExpiryUC *licenseusecases.UpdateLicenseUseCase,
) *ResellerAuthHandler {
	return &ResellerAuthHandler{
		loginUC:         loginUC,
		profileUC:       profileUC,
		dashboardUC:     dashboardUC,
		listLicensesUC:  listLicensesUC,
		createLicenseUC: createLicenseUC,
		toggleBanUC:     toggleBanUC,
		updateExpiryUC:  updateExpiryUC,
		logger:          logger.NewLogger(),
	}
}

type ResellerLoginRequest struct {
	AppID    string `json:"app_id" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ResellerCreateLicensesRequest struct {
	Count         int    `json:"count" binding:"omitempty,min=1,max=1000"`
	ExpiresInDays int    `json:"expires_in_days" binding:"required,min=1"`
	Note          string `json:"note" binding:"omitempty,max=255"`
}

type UpdateExpiryRequest struct {
	ExtendDays *int       `json:"extend_days"`
	ExpiresAt  *time.Time `json:"expires_at"`
}

func (h *ResellerAuthHandler) Login(c *gin.Context) {
	var req ResellerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginResellerCommand{
		AppID:    req.AppID,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "logged in", gin.H{
		"reseller": toResellerResponse(result.Reseller),
		"tokens": TokenResponse{
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
			ExpiresIn:    result.Tokens.ExpiresIn,
		},
	})
}

func (h *ResellerAuthHandler) GetProfile(c *gin.Context) {
	resellerID, err := utils.GetUintFromContext(c, constants.ContextKeyResellerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	r, err := h.profileUC.Execute(c.Request.Context(), resellerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toResellerResponse(r))
}

func (h *ResellerAuthHandler) GetDashboard(c *gin.Context) {
	resellerID, err := utils.GetUintFromContext(c, constants.ContextKeyResellerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.dashboardUC.Execute(c.Request.Context(), resellerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"reseller":        toResellerResponse(result.Reseller),
		"stats":           result.Stats,
		"remaining_quota": result.RemainingQuota,
		"recent_licenses": toLicenseResponses(result.RecentLicenses),
	})
}

func (h *ResellerAuthHandler) ListLicenses(c *gin.Context) {
	resellerID, err := utils.GetUintFromContext(c, constants.ContextKeyResellerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	page, pageSize, err := utils.ParsePagination(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	licenses, total, err := h.listLicensesUC.Execute(c.Request.Context(), resellerID, page, pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, toLicenseResponses(licenses), total, page, pageSize)
}

func (h *ResellerAuthHandler) CreateLicenses(c *gin.Context) {
	resellerID, err := utils.GetUintFromContext(c, constants.ContextKeyResellerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ResellerCreateLicensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	// The reseller's own app scopes the creation; the use case resolves
	// it from the reseller record.
	r, err := h.profileUC.Execute(c.Request.Context(), resellerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	licenses, err := h.createLicenseUC.Execute(c.Request.Context(), licenseusecases.CreateLicensesCommand{
		AppID:         r.AppID(),
		ResellerID:    &resellerID,
		Count:         req.Count,
		ExpiresInDays: req.ExpiresInDays,
		Note:          req.Note,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toLicenseResponses(licenses), "licenses created")
}

func (h *ResellerAuthHandler) ToggleBan(c *gin.Context) {
	resellerID, licenseID, err := h.resellerAndLicenseID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	l, err := h.toggleBanUC.Execute(c.Request.Context(), licenseusecases.ToggleBanLicenseCommand{
		LicenseID:  licenseID,
		ResellerID: &resellerID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "license status toggled", toLicenseResponse(l))
}

func (h *ResellerAuthHandler) UpdateExpiry(c *gin.Context) {
	resellerID, licenseID, err := h.resellerAndLicenseID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateExpiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.updateExpiryUC.Execute(c.Request.Context(), licenseusecases.UpdateLicenseCommand{
		LicenseID:  licenseID,
		ResellerID: &resellerID,
		ExtendDays: req.ExtendDays,
		ExpiresAt:  req.ExpiresAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "license expiry updated", toLicenseResponse(l))
}

func (h *ResellerAuthHandler) resellerAndLicenseID(c *gin.Context) (resellerID, licenseID uint, err error) {
	resellerID, err = utils.GetUintFromContext(c, constants.ContextKeyResellerID)
	if err != nil {
		return 0, 0, err
	}
	licenseID, err = utils.ParseIDParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return resellerID, licenseID, nil
}
