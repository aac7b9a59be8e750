package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProblemType is the "type" member of every problem body the API returns.
const ProblemType = "https://tools.ietf.org/html/rfc7807"

const problemContentType = "application/problem+json"

// ProblemDetails is the RFC 7807 error payload returned by the API
type ProblemDetails struct {
	Type     string              `json:"type" example:"https://tools.ietf.org/html/rfc7807"`
	Title    string              `json:"title" example:"Validation Error"`
	Status   int                 `json:"status" example:"400"`
	Detail   string              `json:"detail,omitempty" example:"One or more validation errors occurred"`
	Instance string              `json:"instance,omitempty" example:"/api/todos"`
	Errors   map[string][]string `json:"errors,omitempty"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response pointing at the new resource
func Created(c *gin.Context, location string, data interface{}) {
	if location != "" {
		c.Header("Location", location)
	}
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 with an empty body
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Problem sends a problem body with the given status, title and detail
func Problem(c *gin.Context, status int, title, detail string) {
	write(c, ProblemDetails{
		Type:     ProblemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance(c),
	})
}

// BadRequest sends a 400 Bad Request problem
func BadRequest(c *gin.Context, detail string) {
	Problem(c, http.StatusBadRequest, "Bad Request", detail)
}

// NotFound sends a 404 Not Found problem
func NotFound(c *gin.Context, detail string) {
	Problem(c, http.StatusNotFound, "Not Found", detail)
}

// TooManyRequests sends a 429 problem
func TooManyRequests(c *gin.Context, detail string) {
	Problem(c, http.StatusTooManyRequests, "Too Many Requests", detail)
}

// InternalServerError sends a 500 problem without leaking the cause
func InternalServerError(c *gin.Context) {
	Problem(c, http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred")
}

// ServiceUnavailable sends a 503 problem
func ServiceUnavailable(c *gin.Context, detail string) {
	Problem(c, http.StatusServiceUnavailable, "Service Unavailable", detail)
}

// ValidationProblem sends a 400 with violations grouped by field
func ValidationProblem(c *gin.Context, errs map[string][]string) {
	write(c, ProblemDetails{
		Type:     ProblemType,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   "One or more validation errors occurred",
		Instance: instance(c),
		Errors:   errs,
	})
}

// BindJSONError handles JSON decode errors in request body
func BindJSONError(c *gin.Context, err error) {
	ValidationProblem(c, map[string][]string{
		"body": {"Request body must be valid JSON: " + err.Error()},
	})
}

func write(c *gin.Context, p ProblemDetails) {
	c.Header("Content-Type", problemContentType)
	c.AbortWithStatusJSON(p.Status, p)
}

func instance(c *gin.Context) string {
	if c.Request == nil || c.Request.URL == nil {
		return ""
	}
	return c.Request.URL.Path
}
