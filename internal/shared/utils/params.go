package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/errors"
)

// ParseIDParam parses a positive uint path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	idStr := c.Param(name)
	if idStr == "" {
		return 0, errors.NewValidationError(name + " is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name + " format")
	}

	return uint(id), nil
}

// ParseQueryID parses a required positive uint query parameter.
func ParseQueryID(c *gin.Context, name string) (uint, error) {
	idStr := c.Query(name)
	if idStr == "" {
		return 0, errors.NewValidationError(name + " is required")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + name + " format")
	}

	return uint(id), nil
}

// ParsePagination parses page/page_size query parameters with the shared
// defaults and cap.
func ParsePagination(c *gin.Context) (page, pageSize int, err error) {
	page = constants.DefaultPage
	pageSize = constants.DefaultPageSize

	if pageStr := c.Query("page"); pageStr != "" {
		p, convErr := strconv.Atoi(pageStr)
		if convErr != nil || p < 1 {
			return 0, 0, errors.NewValidationError("invalid page parameter")
		}
		page = p
	}

	if sizeStr := c.Query("page_size"); sizeStr != "" {
		s, convErr := strconv.Atoi(sizeStr)
		if convErr != nil || s < 1 {
			return 0, 0, errors.NewValidationError("invalid page_size parameter")
		}
		if s > constants.MaxPageSize {
			s = constants.MaxPageSize
		}
		pageSize = s
	}

	return page, pageSize, nil
}

// GetUintFromContext reads a uint previously stored by middleware.
func GetUintFromContext(c *gin.Context, key string) (uint, error) {
	v, exists := c.Get(key)
	if !exists {
		return 0, errors.NewUnauthorizedError("missing authentication context")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.NewUnauthorizedError("invalid authentication context")
	}
	return id, nil
}
