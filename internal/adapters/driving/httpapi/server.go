// Package httpapi is the Request Layer: go-zero REST routes over the core services.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/router"
)

// ServiceName identifies the server in go-zero logs.
const ServiceName = "voxrag"

// Config configures the HTTP server.
type Config struct {
	Host           string
	Port           int
	TimeoutMillis  int64
	MaxUploadBytes int64
	OutputDir      string
	Verbose        bool
}

// Server wraps a go-zero REST server.
type Server struct {
	rest   *rest.Server
	routes []rest.Route
}

// NewServer builds the REST server and registers every route.
func NewServer(cfg Config, svc Services) (*Server, error) {
	var rc rest.RestConf
	if err := conf.FillDefault(&rc); err != nil {
		return nil, fmt.Errorf("rest defaults: %w", err)
	}
	rc.Name = ServiceName
	rc.Host = cfg.Host
	rc.Port = cfg.Port
	if cfg.TimeoutMillis > 0 {
		rc.Timeout = cfg.TimeoutMillis
	}
	if cfg.MaxUploadBytes > 0 {
		rc.MaxBytes = cfg.MaxUploadBytes
	}
	rc.Log.Encoding = "plain"
	rc.Log.Stat = false
	if cfg.Verbose {
		rc.Log.Level = "debug"
	}

	srv, err := rest.NewServer(rc, rest.WithCors("*"))
	if err != nil {
		return nil, fmt.Errorf("create rest server: %w", err)
	}

	routes := Routes(NewHandler(svc, cfg.OutputDir))
	srv.AddRoutes(routes)
	return &Server{rest: srv, routes: routes}, nil
}

// Routes returns the route table for h.
func Routes(h *Handler) []rest.Route {
	return []rest.Route{
		{Method: http.MethodPost, Path: "/ingest", Handler: h.Ingest},
		{Method: http.MethodPost, Path: "/ask", Handler: h.Ask},
		{Method: http.MethodGet, Path: "/tts", Handler: h.TTS},
		{Method: http.MethodPost, Path: "/stt", Handler: h.STT},
		{Method: http.MethodPost, Path: "/export", Handler: h.Export},
		{Method: http.MethodPost, Path: "/ask-voice", Handler: h.AskVoice},
		{Method: http.MethodGet, Path: "/history/:session_id", Handler: h.History},
		{Method: http.MethodGet, Path: StaticPrefix + ":name", Handler: h.Static},
		{Method: http.MethodGet, Path: "/healthz", Handler: h.Health},
	}
}

// Start serves until Stop is called. It blocks.
func (s *Server) Start() {
	s.rest.Start()
}

// Stop shuts the server down.
func (s *Server) Stop() {
	s.rest.Stop()
}

// Router binds the route table to a fresh go-zero router without the rest
// middleware chain. The running server binds its own copy in Start.
func (s *Server) Router() (http.Handler, error) {
	rt := router.NewRouter()
	for _, r := range s.routes {
		if err := rt.Handle(r.Method, r.Path, r.Handler); err != nil {
			return nil, fmt.Errorf("bind %s %s: %w", r.Method, r.Path, err)
		}
	}
	return rt, nil
}
