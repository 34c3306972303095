package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// internalError logs the real failure and answers with a generic message;
// storage errors are never leaked to clients verbatim.
func internalError(c *gin.Context, err error) {
	slog.Error("internal error",
		"path", c.FullPath(),
		"request_id", c.GetString("request_id"),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// parsePagination reads the 1-indexed page_number/page_size/include_total
// query parameters shared by every paginated endpoint.
func parsePagination(c *gin.Context, defaultSize int) (page, pageSize int, includeTotal bool) {
	page = 1
	pageSize = defaultSize

	if p := c.Query("page_number"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}
	includeTotal = c.Query("include_total") == "true"
	return page, pageSize, includeTotal
}

// pageEnvelope builds the page object of a paginated response. Total
// pages are only present when the caller opted into counting.
func pageEnvelope(page, pageSize int, total int64, includeTotal bool) gin.H {
	env := gin.H{"current_page": page}
	if includeTotal && total >= 0 {
		env["total_pages"] = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return env
}
