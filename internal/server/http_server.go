package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"order_lookup/internal/cache"
	"order_lookup/internal/metrics"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	Router  *chi.Mux
	Store   cache.OrderCache
	Metrics *metrics.Metrics
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer создает новый экземпляр сервера с зависимостями
func NewServer(store cache.OrderCache, m *metrics.Metrics) *Server {
	s := &Server{
		Router:  chi.NewRouter(),
		Store:   store,
		Metrics: m,
	}
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(s.metricsMiddleware)
	s.initRoutes()
	return s
}

func (s *Server) initRoutes() {
	s.Router.Get("/orders/{orderUID}", s.handleGetOrder())
}

// metricsMiddleware добавляет метрики к ответам
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Metrics.HTTPServerReqs.WithLabelValues(strconv.Itoa(ww.Status()), r.Method).Inc()
	})
}

// handleGetOrder возвращает обработчик для получения заказа по UID из хранилища
func (s *Server) handleGetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderUID := chi.URLParam(r, "orderUID")
		slog.Info("An order request with a UID was received", "order_uid", orderUID)

		order, found := s.Store.Get(orderUID)
		if !found {
			s.Metrics.StoreLookups.WithLabelValues("miss").Inc()
			slog.Info("Order not found", "order_uid", orderUID)

			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Order not found"})
			return
		}

		s.Metrics.StoreLookups.WithLabelValues("hit").Inc()
		writeJSON(w, http.StatusOK, order)
	}
}

// writeJSON пишет тело без завершающего перевода строки
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
