package api

import (
	"net/http"
	"strconv"

	"lendkit/internal/handler/httperr"
	"lendkit/internal/pkg/errs"
	"lendkit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var errInvalidPage = errs.New("invalid pagination parameters")

// parsePage reads the from/size window from the query string. Both are
// optional; negative from or non-positive size is rejected.
func parsePage(c *gin.Context) (queries.Page, error) {
	page := queries.Page{From: 0, Size: defaultPageSize}

	if v := c.Query("from"); v != "" {
		iv, err := strconv.ParseInt(v, 10, 32)
		if err != nil || iv < 0 {
			return queries.Page{}, errInvalidPage
		}
		page.From = int32(iv)
	}
	if v := c.Query("size"); v != "" {
		iv, err := strconv.ParseInt(v, 10, 32)
		if err != nil || iv <= 0 {
			return queries.Page{}, errInvalidPage
		}
		if iv > maxPageSize {
			iv = maxPageSize
		}
		page.Size = int32(iv)
	}
	return page, nil
}

// respond writes body with the given status, or a 500 when the
// view-to-response mapping failed.
func respond[T any](c *gin.Context, status int, body T, err error) {
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, body)
}
