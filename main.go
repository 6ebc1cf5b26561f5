package main

import (
	"cafein/auth"
	"cafein/client"
	"cafein/config"
	"cafein/controller"
	"cafein/database"
	"cafein/form"
	"cafein/route"
	"cafein/store"
	"cafein/utils"
	"cafein/view"
	"context"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"log"
	"time"
)

func main() {
	cfg := config.Load()
	db := database.InitDatabase(cfg)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))
	log.Println("CORS configured")

	router.SetHTMLTemplate(view.Templates())

	cafes := client.New(client.Options{
		Endpoint: cfg.CafeAPIURL,
		Token:    cfg.CafeAPIToken,
		Login:    cfg.CafeAPILogin,
		Password: cfg.CafeAPIPassword,
		LoginURL: cfg.CafeAPILoginURL,
		Timeout:  cfg.CafeAPITimeout,
	})
	if cfg.CafeAPIToken == "" && cfg.CafeAPILogin == "" {
		log.Println("No CAFE_API_TOKEN or CAFE_API_LOGIN set, form submits will be unauthenticated")
	}

	forms := form.NewRegistry(log.Default(), form.RegistryOptions{IdleTimeout: cfg.FormIdleTimeout})
	go forms.Run(context.Background(), time.Minute)
	tokens := utils.NewTokens(cfg.JWTSecret)

	ctl := route.Controllers{
		Form:   controller.NewFormController(forms, cafes),
		Browse: controller.NewBrowseController(cafes, store.New()),
		Cafe:   controller.NewCafeController(db),
		Auth:   auth.NewHandler(db, tokens),
		Tokens: tokens,
	}
	route.FormRoutes(router, ctl)
	route.CafeRoutes(router, ctl)
	log.Printf("Routes configured, submitting cafes to %s", cafes.Endpoint())

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
