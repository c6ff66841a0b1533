package main

import (
	"net/http"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"

	"socialapi/auth"
	"socialapi/config"
	"socialapi/database"
	"socialapi/graph"
	"socialapi/logger"
	"socialapi/middleware"
	"socialapi/repositories"
	"socialapi/routes"
)

func main() {
	logger.InitLogger()
	cfg := config.Load()

	db, err := database.New(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("failed to run migrations: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	resolver := graph.NewResolver(userRepo, postRepo, tokens)
	schema := graphqlgo.MustParseSchema(graph.Schema, resolver)

	handler := routes.SetupRoutes(schema, middleware.NewAuthMiddleware(tokens))

	logrus.Infof("server ready at http://localhost:%s/graphql", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}
