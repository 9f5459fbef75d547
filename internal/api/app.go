package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/studyhall/studyhall/internal/community"
	"github.com/studyhall/studyhall/internal/config"
	"github.com/studyhall/studyhall/internal/database"
	"github.com/studyhall/studyhall/internal/server"
)

type StudyHallApp struct {
	log            *log.Logger
	db             database.StudyRepository
	svc            *community.Service
	relay          *server.RelayServer
	mux            *http.Server
	signingKey     []byte
	allowedOrigins []string
}

func NewStudyHallApp(mux *http.ServeMux, logger *log.Logger, relay *server.RelayServer, db database.StudyRepository, svc *community.Service, cfg *config.Config) *StudyHallApp {
	s := &StudyHallApp{
		log:            logger,
		db:             db,
		svc:            svc,
		relay:          relay,
		signingKey:     cfg.SigningKey,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)
	mux.HandleFunc("GET /api/auth/session", s.authMiddleware(s.session))
	mux.Handle("GET /api/auth/logout", s.authMiddleware(s.logout))
	mux.Handle("POST /api/communities", s.authMiddleware(s.createCommunity))
	mux.Handle("GET /api/communities", s.authMiddleware(s.listCommunities))
	mux.Handle("POST /api/communities/join", s.authMiddleware(s.joinCommunity))
	mux.Handle("GET /api/communities/{id}", s.authMiddleware(s.getCommunityDetails))
	mux.Handle("DELETE /api/communities/{id}/leave", s.authMiddleware(s.leaveCommunity))
	mux.Handle("POST /api/communities/{id}/channels", s.authMiddleware(s.createChannel))
	mux.Handle("DELETE /api/communities/{id}/channels/{channelId}", s.authMiddleware(s.deleteChannel))
	mux.Handle("GET /api/communities/{id}/channels/{channelId}/messages", s.authMiddleware(s.getChannelMessages))
	mux.Handle("GET /ws", s.authMiddleware(s.serveWs))

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", "Authorization"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *StudyHallApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *StudyHallApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
