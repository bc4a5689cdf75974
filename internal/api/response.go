package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gamecraft/internal/errcode"
)

// Pagination is the page descriptor attached to list responses. Pages
// are zero-based.
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Size          int   `json:"size"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}

// NewPagination derives the page descriptor from a total row count.
func NewPagination(page, size int, total int64) Pagination {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalElements: total,
		Size:          size,
		HasNext:       page+1 < totalPages,
		HasPrevious:   page > 0,
	}
}

// OK renders a success envelope merged with the payload fields.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Message renders a success envelope with just a message.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

// Fail renders a failure envelope with a machine-readable code.
func Fail(c *gin.Context, status, code int, msg string) {
	c.JSON(status, gin.H{"success": false, "code": code, "message": msg})
}

func BadRequest(c *gin.Context, msg string) {
	Fail(c, http.StatusBadRequest, errcode.ValidationFailure, msg)
}

func Unauthorized(c *gin.Context, msg string) {
	Fail(c, http.StatusUnauthorized, errcode.AuthRequired, msg)
}

func Forbidden(c *gin.Context, msg string) {
	Fail(c, http.StatusForbidden, errcode.Forbidden, msg)
}

func NotFound(c *gin.Context, msg string) {
	Fail(c, http.StatusNotFound, errcode.NotFound, msg)
}

func Internal(c *gin.Context, msg string) {
	Fail(c, http.StatusInternalServerError, errcode.SystemError, msg)
}

// AbortUnauthorized ends the request from middleware with the auth
// failure envelope.
func AbortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"code":    errcode.AuthRequired,
		"message": msg,
	})
}

// AbortForbidden ends the request from middleware with the permission
// failure envelope.
func AbortForbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"code":    errcode.Forbidden,
		"message": msg,
	})
}
