package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

type ServiceResult struct {
	StatusCode int
	Data       any
	Message    string
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

// ToJSON renders {ok, message[, data]} for successes and {error[, details]}
// for failures.
func (result *ServiceResult) ToJSON() gin.H {
	if result.IsError() {
		body := gin.H{"error": result.Message}
		if result.Data != nil {
			body["details"] = result.Data
		}
		return body
	}

	body := gin.H{
		"ok":      true,
		"message": result.Message,
	}
	if result.Data != nil {
		body["data"] = result.Data
	}
	return body
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
