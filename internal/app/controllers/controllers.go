package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kaganyildiz/academix/internal/app/models/dto"
)

// parseIDParam reads a positive integer path parameter, responding with a 400
// on malformed input.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body, responding with the validation envelope on
// failure.
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.FieldErrorsFromBinding(err)))
		return false
	}
	return true
}
