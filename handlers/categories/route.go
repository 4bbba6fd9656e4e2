package categories

import "github.com/gin-gonic/gin"

func RegisterCategoriesRoutes(r *gin.RouterGroup) {
	r.GET("/categories", GetCategories)
}
