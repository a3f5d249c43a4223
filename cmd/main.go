package main

import (
	"os"

	"github.com/uros002/QuizHubApp/internal/cli"
)

// @title QuizHub API
// @version 1.0
// @description Quiz authoring with versioning, attempts with snapshot scoring, results and leaderboards.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
