package route

import (
	"cafein/auth"
	"cafein/controller"
	"cafein/model"
	"cafein/utils"
	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Form   *controller.FormController
	Browse *controller.BrowseController
	Cafe   *controller.CafeController
	Auth   *auth.Handler
	Tokens *utils.Tokens
}

func FormRoutes(router *gin.Engine, ctl Controllers) {
	formGroup := router.Group("/cafe-info")
	{
		formGroup.GET("", ctl.Form.Show)
		formGroup.POST("", ctl.Form.Confirm)
		formGroup.GET("/draft", ctl.Form.Draft)
		formGroup.PATCH("/field", ctl.Form.UpdateField)
		formGroup.PATCH("/facility", ctl.Form.ToggleFacility)
		formGroup.POST("/submit", ctl.Form.Submit)
	}

	appGroup := router.Group("/app")
	{
		appGroup.GET("/cafes", ctl.Browse.List)
		appGroup.GET("/cafes/:id", ctl.Browse.Show)
		appGroup.GET("/current", ctl.Browse.Current)
	}
}

func CafeRoutes(router *gin.Engine, ctl Controllers) {
	router.POST("/owners/register", ctl.Auth.Register)
	router.POST("/owners/login", ctl.Auth.Login)
	router.POST("/owners/refresh-token", ctl.Auth.RefreshToken)

	router.GET("/cafes", ctl.Cafe.List)
	router.GET("/cafes/:id", ctl.Cafe.Get)

	cafeGroup := router.Group("/cafes")
	cafeGroup.Use(utils.OwnerMiddleware(ctl.Tokens, string(model.RoleOwner)))
	{
		cafeGroup.POST("", ctl.Cafe.Create)
		cafeGroup.POST("/import", ctl.Cafe.Import)
		cafeGroup.PUT("/:id", ctl.Cafe.Update)
		cafeGroup.DELETE("/:id", ctl.Cafe.Delete)
	}
}
