package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/mZeeDevv/flight-trend-service/internal/database"
	"github.com/mZeeDevv/flight-trend-service/internal/fares"
	"github.com/mZeeDevv/flight-trend-service/internal/kafka"
	"github.com/mZeeDevv/flight-trend-service/internal/models"
	"github.com/mZeeDevv/flight-trend-service/internal/notifier"
)

// RouteAnalyzer runs the analysis pipeline for one route query.
type RouteAnalyzer interface {
	AnalyzeRoute(ctx context.Context, origin, destination string) (*models.RouteAnalysis, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analyzer   RouteAnalyzer
	db         *database.DB
	dispatcher notifier.Dispatcher
	producer   *kafka.Producer
}

// NewHandler creates a new Handler
func NewHandler(analyzer RouteAnalyzer, db *database.DB, dispatcher notifier.Dispatcher, producer *kafka.Producer) *Handler {
	return &Handler{
		analyzer:   analyzer,
		db:         db,
		dispatcher: dispatcher,
		producer:   producer,
	}
}

// AnalyzeRoute handles GET /routes/{origin}/{destination}/analysis
func (h *Handler) AnalyzeRoute(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	origin := vars["origin"]
	destination := vars["destination"]

	result, err := h.analyzer.AnalyzeRoute(r.Context(), origin, destination)
	if err != nil {
		if errors.Is(err, fares.ErrLocationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishRouteAnalyzed(r.Context(), result); err != nil {
			log.Printf("[WARN] publish route analyzed event: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// GetAllRoutes handles GET /routes
func (h *Handler) GetAllRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.db.GetAllMonitoredRoutes()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, routes)
}

// GetRoute handles GET /routes/{origin}/{destination}
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	route, err := h.db.GetMonitoredRoute(vars["origin"], vars["destination"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, route)
}

// AddRoute handles POST /routes
func (h *Handler) AddRoute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Origin          string   `json:"origin"`
		Destination     string   `json:"destination"`
		WatchPrice      *float64 `json:"watch_price,omitempty"`
		AlertRecipients []string `json:"alert_recipients,omitempty"`
		Notes           string   `json:"notes,omitempty"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Origin == "" || req.Destination == "" {
		http.Error(w, "origin and destination are required", http.StatusBadRequest)
		return
	}

	route := &models.MonitoredRoute{
		Origin:          req.Origin,
		Destination:     req.Destination,
		Enabled:         true,
		AlertOnDrop:     true,
		AlertRecipients: req.AlertRecipients,
		Notes:           req.Notes,
	}
	if req.WatchPrice != nil {
		price := decimal.NewFromFloat(*req.WatchPrice)
		route.WatchPrice = &price
	}

	if err := h.db.CreateMonitoredRoute(route); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, route)
}

// RemoveRoute handles DELETE /routes/{origin}/{destination}
func (h *Handler) RemoveRoute(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.db.DeleteMonitoredRoute(vars["origin"], vars["destination"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SendTrendAlert handles POST /routes/{origin}/{destination}/alert
func (h *Handler) SendTrendAlert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	origin := vars["origin"]
	destination := vars["destination"]

	var req struct {
		Recipients []string `json:"recipients,omitempty"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	recipients := req.Recipients
	if len(recipients) == 0 {
		if route, err := h.db.GetMonitoredRoute(origin, destination); err == nil {
			recipients = route.AlertRecipients
		}
	}
	if len(recipients) == 0 {
		http.Error(w, "no recipients: supply them in the request or monitor the route with alert recipients", http.StatusBadRequest)
		return
	}

	result, err := h.analyzer.AnalyzeRoute(r.Context(), origin, destination)
	if err != nil {
		if errors.Is(err, fares.ErrLocationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	subject, body := notifier.FormatTrendAlert(result)
	attempted, dispatchErr := h.dispatcher.Dispatch(r.Context(), recipients, subject, body)

	history := &models.AlertHistory{
		Origin:            origin,
		Destination:       destination,
		Action:            result.BookingRecommendation.Action,
		Confidence:        result.BookingRecommendation.Confidence,
		Message:           result.BookingRecommendation.Reasoning,
		RecipientCount:    attempted,
		DispatchSucceeded: dispatchErr == nil,
	}
	if err := h.db.CreateAlertHistory(history); err != nil {
		log.Printf("[WARN] record alert history: %v", err)
	}

	if h.producer != nil {
		if err := h.producer.PublishTrendAlertSent(r.Context(), result, attempted); err != nil {
			log.Printf("[WARN] publish trend alert event: %v", err)
		}
	}

	if dispatchErr != nil {
		http.Error(w, dispatchErr.Error(), http.StatusBadGateway)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recipients_attempted": attempted,
		"action":               result.BookingRecommendation.Action,
		"confidence":           result.BookingRecommendation.Confidence,
	})
}

// GetAlertHistory handles GET /routes/{origin}/{destination}/alerts
func (h *Handler) GetAlertHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	alerts, err := h.db.GetAlertHistoryByRoute(vars["origin"], vars["destination"], 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, alerts)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
