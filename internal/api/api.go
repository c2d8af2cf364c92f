package api

import (
	"encoding/json"
	"net/http"
	"time"

	"envmonitor/internal/assistant"
	"envmonitor/internal/domain"
	"envmonitor/internal/journal"
	"envmonitor/internal/ports"
	"envmonitor/internal/sleep"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const recentEventsLimit = 10

type Options struct {
	Location          *time.Location
	ChatRatePerMinute int
	CORSOrigins       []string
	// Live serves GET /live when set.
	Live http.Handler
}

type API struct {
	log         *zap.SugaredLogger
	readingRepo ports.ReadingRepository
	journalRepo ports.JournalRepository
	eventRepo   ports.EventRepository
	journal     *journal.Service
	responder   *assistant.Responder
	chatLimiter *rate.Limiter
	live        http.Handler
	corsOrigins []string
	loc         *time.Location
	validate    *validator.Validate
	now         func() time.Time
}

func NewAPI(log *zap.SugaredLogger, readingRepo ports.ReadingRepository, journalRepo ports.JournalRepository, eventRepo ports.EventRepository, opts Options) *API {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	perMinute := opts.ChatRatePerMinute
	if perMinute <= 0 {
		perMinute = 20
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &API{
		log:         log,
		readingRepo: readingRepo,
		journalRepo: journalRepo,
		eventRepo:   eventRepo,
		journal:     journal.NewService(journalRepo, loc),
		responder:   assistant.NewResponder(loc),
		chatLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		live:        opts.Live,
		corsOrigins: origins,
		loc:         loc,
		validate:    validator.New(),
		now:         time.Now,
	}
}

func (api *API) Routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(api.LoggingMiddleware)
	r.Use(handlers.CORS(
		handlers.AllowedOrigins(api.corsOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	))

	// home endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, "envmonitor API")
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/sleep", func(r chi.Router) {
		r.Get("/latest-date", api.GetLatestSleepDate)
		r.Post("/quality", api.PostSleepQuality)
		r.Get("/quality/history", api.GetSleepQualityHistory)
		r.Get("/{date}", api.GetSleepSummary)
		r.Get("/{date}/series", api.GetSleepSeries)
	})

	r.Route("/sensors", func(r chi.Router) {
		r.Get("/current", api.GetCurrentReading)
		r.Get("/history", api.GetSensorHistory)
	})

	r.Get("/mood", api.GetMood)
	r.Post("/mood", api.PostMood)
	r.Get("/events/recent", api.GetRecentEvents)
	r.Get("/stats", api.GetStats)
	r.Get("/export/csv", api.ExportCSV)
	r.Post("/chat", api.PostChat)

	if api.live != nil {
		r.Handle("/live", api.live)
	}

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondWithError(w http.ResponseWriter, status int, msg string) {
	respondWithJSON(w, status, errorResponse{Error: msg})
}

// respondWithServiceError maps known sentinel errors to client errors and
// everything else to a generic 500.
func respondWithServiceError(w http.ResponseWriter, log *zap.SugaredLogger, err error) {
	switch {
	case errors.Is(err, sleep.ErrInvalidDateFormat):
		respondWithError(w, http.StatusBadRequest, sleep.ErrInvalidDateFormat.Error())
	case errors.Is(err, sleep.ErrNoDataForWindow):
		respondWithError(w, http.StatusNotFound, sleep.ErrNoDataForWindow.Error())
	case errors.Is(err, domain.ErrInvalidRating):
		respondWithError(w, http.StatusBadRequest, domain.ErrInvalidRating.Error())
	case errors.Is(err, domain.ErrInvalidMood):
		respondWithError(w, http.StatusBadRequest, domain.ErrInvalidMood.Error())
	case errors.Is(err, domain.ErrNoActiveSession):
		respondWithError(w, http.StatusBadRequest, domain.ErrNoActiveSession.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, domain.ErrNotFound.Error())
	default:
		log.Errorf("request failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}
