package api

import (
	"bufio"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

func (api *API) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := NewWrapResponseWriter(w)
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ww.Header().Set(requestIDHeader, requestID)

		defer func() {
			api.log.Infow("request",
				"requestId", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytesWritten", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

type wrapResponseWriter struct {
	http.ResponseWriter
	status       int
	bytesWritten int
}

func NewWrapResponseWriter(w http.ResponseWriter) *wrapResponseWriter {
	// Default the status code to 200
	return &wrapResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (wr *wrapResponseWriter) WriteHeader(code int) {
	wr.status = code
	wr.ResponseWriter.WriteHeader(code)
}

func (wr *wrapResponseWriter) Write(b []byte) (int, error) {
	size, err := wr.ResponseWriter.Write(b)
	wr.bytesWritten += size
	return size, err
}

// Hijack lets the websocket upgrade on /live take over the connection.
func (wr *wrapResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := wr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	wr.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (wr *wrapResponseWriter) Status() int {
	return wr.status
}

func (wr *wrapResponseWriter) BytesWritten() int {
	return wr.bytesWritten
}
