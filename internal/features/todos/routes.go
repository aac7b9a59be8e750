package todos

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	handler := NewHandler(service, NewValidator(nil))

	todos := router.Group("/todos")
	{
		todos.GET("", handler.List)
		todos.POST("", handler.Create)
		todos.DELETE("/completed", handler.DeleteCompleted)
		todos.GET("/:id", handler.Get)
		todos.PUT("/:id", handler.Update)
		todos.DELETE("/:id", handler.Delete)
	}
}
