package api

import (
	"net/http"

	"github.com/cloud-ru/mortgage-engine-go/internal/config"
	"github.com/cloud-ru/mortgage-engine-go/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server - HTTP-обертка над расчетным ядром
type Server struct {
	engine *service.Engine
	cfg    *config.Config
	logger *zap.Logger
}

// NewServer создает HTTP-сервер API
func NewServer(engine *service.Engine, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{engine: engine, cfg: cfg, logger: logger}
}

// NewRouter регистрирует маршруты API
func (s *Server) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog)

	r.HandleFunc("/", s.home).Methods("GET")
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/api/calculate", handle(s, s.engine.Calculate)).Methods("POST")
	r.HandleFunc("/api/calculate/compare_types", handle(s, s.engine.ComparePaymentTypes)).Methods("POST")
	r.HandleFunc("/api/forecast", handle(s, s.engine.Forecast)).Methods("POST")
	r.HandleFunc("/api/compare", handle(s, s.engine.Compare)).Methods("POST")
	r.HandleFunc("/api/currency", handle(s, s.engine.Currency)).Methods("POST")

	scenarios := r.PathPrefix("/api/scenarios").Subrouter()
	scenarios.HandleFunc("/early_repayment", handle(s, s.engine.EarlyRepayment)).Methods("POST")
	scenarios.HandleFunc("/restructuring", handle(s, s.engine.Restructuring)).Methods("POST")
	scenarios.HandleFunc("/insurance", handle(s, s.engine.Insurance)).Methods("POST")
	scenarios.HandleFunc("/central_bank_rate", handle(s, s.engine.CentralBankRate)).Methods("POST")

	return r
}

// Handler возвращает маршрутизатор с CORS и перехватом паник
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(s.cfg.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		handlers.ExposedHeaders([]string{requestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.logger)),
		handlers.PrintRecoveryStack(true),
	)
	return recovery(cors(s.NewRouter()))
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "API is running! Welcome to Mortgage Calculator Pro."})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
