package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carkumbh/backend/clients"
	"github.com/carkumbh/backend/config"
	"github.com/carkumbh/backend/config/db"
	redisclient "github.com/carkumbh/backend/config/redis"
	"github.com/carkumbh/backend/logger"
	"github.com/carkumbh/backend/middlewares/cors"
	"github.com/carkumbh/backend/routes"
)

func init() {
	logger.InitLoggers()
	config.LoadEnv()
}

func main() {
	db.Connect()
	defer db.Close()
	defer redisclient.CloseRedis()

	if err := db.RunMigrations(); err != nil {
		logger.ErrorLogger.Errorf("Migrations failed: %v", err)
		os.Exit(1)
	}

	cloudinaryClient, err := clients.NewCloudinaryClient(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		logger.ErrorLogger.Errorf("Cloudinary initialization failed: %v", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.CorsMiddleware())
	r.MaxMultipartMemory = 16 << 20 // 16 MB

	routes.RegisterAuthRoutes(r)
	routes.RegisterPaymentRoutes(r)
	routes.RegisterBookingRoutes(r, cloudinaryClient)
	routes.RegisterSiteConfigRoutes(r, cloudinaryClient)
	routes.RegisterStudentRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "message": "Server is running"})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.InfoLogger.Infof("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.ErrorLogger.Errorf("Server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.InfoLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorLogger.Errorf("Forced shutdown: %v", err)
	}
	logger.InfoLogger.Info("Server stopped.")
}
