package api

import (
	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// Route analysis and watchlist
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/routes", handler.GetAllRoutes).Methods("GET")
	api.HandleFunc("/routes", handler.AddRoute).Methods("POST")
	api.HandleFunc("/routes/{origin}/{destination}", handler.GetRoute).Methods("GET")
	api.HandleFunc("/routes/{origin}/{destination}", handler.RemoveRoute).Methods("DELETE")
	api.HandleFunc("/routes/{origin}/{destination}/analysis", handler.AnalyzeRoute).Methods("GET")
	api.HandleFunc("/routes/{origin}/{destination}/alert", handler.SendTrendAlert).Methods("POST")
	api.HandleFunc("/routes/{origin}/{destination}/alerts", handler.GetAlertHistory).Methods("GET")

	return r
}
