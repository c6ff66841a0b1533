package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"socialapi/middleware"
	"socialapi/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(schema *graphqlgo.Schema, authMiddleware *middleware.AuthMiddleware) http.Handler {
	router := mux.NewRouter()

	// GraphQL endpoint
	router.Handle("/graphql", &relay.Handler{Schema: schema}).Methods("POST")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	handler := authMiddleware.Attach(router)
	handler = logRequests(handler)
	return monitoring.InstrumentHandler(handler)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"user_agent": r.UserAgent(),
		}).Info("incoming request")
		next.ServeHTTP(w, r)
	})
}
