package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/samanthauoviawe/chatbot-web-interface/widget"
	"go.uber.org/zap"
)

// Config holds what the router needs to serve the widget
type Config struct {
	// Sender is shared by every page view; it must be safe for concurrent use
	Sender         widget.Sender
	AllowedOrigins []string
	Logger         *zap.Logger
}

//NewRouter returns an HTTP router serving the widget page and its views
func NewRouter(cfg *Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	//construct middleware
	var m = func(h returnHandler) http.Handler {
		return LogMiddleware(jsonMiddleware(h, logger), logger)
	}

	r := mux.NewRouter()

	r.Path("/").Methods("GET").Handler(LogMiddleware(handlers.CompressHandler(newPageHandler(logger)), logger))
	r.Path("/ws").Methods("GET").Handler(LogMiddleware(NewViewHandler(cfg.Sender, cfg.AllowedOrigins, logger), logger))
	r.Path("/healthz").Methods("GET").Handler(m(handleHealth))

	r.NotFoundHandler = m(notFoundHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxAge:         300,
	})

	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{logger}))

	return recovery(c.Handler(r))
}

//Mount serves h under prefix. The bare prefix redirects to prefix + "/" so
//relative URLs on the page resolve inside the prefix.
func Mount(prefix string, h http.Handler) http.Handler {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return h
	}

	r := mux.NewRouter()
	r.Path(prefix).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := prefix + "/"
		if r.URL.RawQuery != "" {
			u += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, u, http.StatusMovedPermanently)
	})
	r.PathPrefix(prefix + "/").Handler(http.StripPrefix(prefix, h))

	return r
}

//GET /healthz
func handleHealth(w http.ResponseWriter, r *http.Request) *handlerResponse {
	return &handlerResponse{Code: http.StatusOK, Body: &HealthResponse{Status: "ok"}}
}
