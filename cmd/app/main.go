package main

import (
	"todoapp/config"
	"todoapp/di"
	"todoapp/shared/logger"

	_ "todoapp/docs"
)

// @title Todo API
// @version 1.0
// @description Multi-user to-do backend with JWT authentication.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
