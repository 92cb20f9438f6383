package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/felixge/httpsnoop"
	"go.uber.org/zap"
)

type handlerResponse struct {
	Code int
	Body interface{}
	Err  error
}

type returnHandler func(http.ResponseWriter, *http.Request) *handlerResponse

//LogMiddleware writes one log line per request. The ResponseWriter keeps its
//optional interfaces, so WebSocket upgrades still work behind it.
func LogMiddleware(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		logger.Info("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("code", m.Code),
			zap.String("status", http.StatusText(m.Code)),
			zap.Duration("duration", m.Duration),
			zap.Int64("bytes", m.Written),
		)
	})
}

func jsonMiddleware(next returnHandler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp *handlerResponse

		if r.Method != "GET" && r.Method != "HEAD" {
			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				resp = handleError(http.StatusBadRequest, errors.New("Could not parse Content-Type"))
				goto serve
			}
			if mediaType != "application/json" {
				resp = handleError(http.StatusBadRequest, errors.New("Content-Type not application/json"))
				goto serve
			}
		}

		resp = next(w, r)

	serve:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Code)
		if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
			resp.Err = fmt.Errorf("Could not encode json: %v", err)
		}
		if resp.Err != nil {
			logger.Warn("Request failed", zap.String("path", r.URL.Path), zap.Int("code", resp.Code), zap.Error(resp.Err))
		}
	})
}

// recoveryLogger sends recovered panics to zap
type recoveryLogger struct {
	logger *zap.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.logger.Error("Recovered from panic", zap.String("panic", fmt.Sprint(v...)))
}
