package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/niteen-codes/go-eventhub/config"
	"github.com/niteen-codes/go-eventhub/controllers"
	"github.com/niteen-codes/go-eventhub/realtime"
	"github.com/niteen-codes/go-eventhub/services"
	"github.com/niteen-codes/go-eventhub/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set in env")
	}

	client, db := config.ConnectDB(cfg.MongoURI, cfg.MongoDB)

	st := store.NewMongo(db)
	if err := st.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("index bootstrap failed: %v", err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	eventService := services.NewEventService(st, hub)
	authController := controllers.NewAuthController(st, cfg)
	eventController := controllers.NewEventController(eventService)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	controllers.RegisterRoutes(router, cfg, authController, eventController, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server started on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Println("Server forced to shutdown:", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		log.Println("Error disconnecting MongoDB:", err)
	}

	log.Println("Server exited properly")
}
