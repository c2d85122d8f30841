package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/errors"
	"github.com/NagaNitishChowdary/Study-Buddy-Agent/pkg/response"
)

// pathID parses a positive integer path parameter, writing a validation
// error response when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "malformed JSON payload"))
		return false
	}
	return true
}
