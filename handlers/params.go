package handlers

import (
	"strconv"

	"travelhub/apperr"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

// pageParams reads ?page and ?pageSize, applying defaults and the page size cap.
func pageParams(c *gin.Context) (int, int, error) {
	page, err := intQuery(c, "page", utils.DefaultPage)
	if err != nil {
		return 0, 0, err
	}
	size, err := intQuery(c, "pageSize", utils.DefaultPageSize)
	if err != nil {
		return 0, 0, err
	}
	if size > utils.MaxPageSize {
		size = utils.MaxPageSize
	}
	return page, size, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(key + " must be an integer")
	}
	return n, nil
}

// bindJSON decodes the body into v, reporting malformed input as a
// validation error. The decoder text stays on the cause for logging.
func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid request body", err)
	}
	return nil
}

func bindQuery(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid query", err)
	}
	return nil
}

func principal(c *gin.Context) string {
	return c.GetString(utils.PrincipalIDKey)
}
