package api

import (
	"context"
	"net/http"
	"time"

	"pesapoint-backend/internal/logger"
	"pesapoint-backend/internal/security"
	"pesapoint-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the HTTP layer fronts.
type Services struct {
	Auth      service.AuthService
	Transfers service.TransferService
	Sessions  service.SessionService
	Registers service.RegisterService
	Customers service.CustomerService
}

type Server struct {
	httpServer *http.Server
}

func NewServer(addr string, tokens security.TokenManager, svcs Services) *Server {
	router := NewRouter(tokens, svcs)
	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

func NewRouter(tokens security.TokenManager, svcs Services) *mux.Router {
	auth := &authHandler{auth: svcs.Auth}
	transfers := &transferHandler{transfers: svcs.Transfers}
	sessions := &sessionHandler{sessions: svcs.Sessions}
	registers := &registerHandler{registers: svcs.Registers}
	customers := &customerHandler{customers: svcs.Customers}

	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/auth/login", auth.login).Methods(http.MethodPost)

	protected := v1.NewRoute().Subrouter()
	protected.Use(authMiddleware(tokens))
	protected.HandleFunc("/auth/workers", auth.registerWorker).Methods(http.MethodPost)

	protected.HandleFunc("/transfers/render", transfers.render).Methods(http.MethodPost)
	protected.HandleFunc("/transfers/collect", transfers.collect).Methods(http.MethodPost)
	protected.HandleFunc("/transfers/{id:[0-9]+}/correct", transfers.correct).Methods(http.MethodPost)

	protected.HandleFunc("/sessions", sessions.open).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/current", sessions.current).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/current", sessions.close).Methods(http.MethodDelete)

	protected.HandleFunc("/registers", registers.create).Methods(http.MethodPost)
	protected.HandleFunc("/registers", registers.list).Methods(http.MethodGet)
	protected.HandleFunc("/registers/{id:[0-9]+}/balance", registers.balance).Methods(http.MethodGet)
	protected.HandleFunc("/registers/{id:[0-9]+}/recharge", registers.recharge).Methods(http.MethodPost)
	protected.HandleFunc("/registers/transfer", registers.transfer).Methods(http.MethodPost)

	protected.HandleFunc("/customers/lookup", customers.lookup).Methods(http.MethodGet)
	protected.HandleFunc("/customers/scan/{code}", customers.scan).Methods(http.MethodGet)
	protected.HandleFunc("/customers/device", customers.registerDevice).Methods(http.MethodPost)
	protected.HandleFunc("/customers/balance", customers.balance).Methods(http.MethodGet)
	protected.HandleFunc("/customers/transactions", customers.transactions).Methods(http.MethodGet)

	return router
}

func (s *Server) Start() error {
	logger.Info("http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
