package api

import (
	"encoding/json"
	"net/http"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/ports"
	"envmonitor/internal/stats"
)

// CurrentReading is the latest sample with absent CO2 and light reported as 0.
type CurrentReading struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	CO2         int       `json:"co2"`
	Light       float64   `json:"light"`
	Motion      bool      `json:"motion"`
	Noise       bool      `json:"noise"`
	Quality     *float64  `json:"quality,omitempty"`
}

func NewCurrentReading(r domain.Reading) CurrentReading {
	return CurrentReading{
		Timestamp:   r.Timestamp,
		Temperature: r.Temperature,
		Humidity:    r.Humidity,
		CO2:         r.CO2Value(),
		Light:       r.LightValue(),
		Motion:      r.Motion,
		Noise:       r.Noise,
		Quality:     r.Quality,
	}
}

func (api *API) GetCurrentReading(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetCurrentReading")

	reading, err := api.readingRepo.LatestReading(r.Context())
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}
	if reading == nil {
		respondWithError(w, http.StatusNotFound, "no readings available")
		return
	}

	respondWithJSON(w, http.StatusOK, NewCurrentReading(*reading))
}

type SensorHistoryResponse struct {
	Period string                   `json:"period"`
	Data   []domain.HistoricalPoint `json:"data"`
}

// historyQuery builds the series request for period, counted back from the
// newest stored reading rather than from the wall clock.
func historyQuery(latest domain.Reading, period stats.Period) ports.SeriesQuery {
	return ports.SeriesQuery{
		Unit:  period.Unit,
		Since: latest.Timestamp.Add(-period.Lookback),
		Limit: period.MaxPoints,
	}
}

func (api *API) GetSensorHistory(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetSensorHistory")
	period := stats.ParsePeriod(r.URL.Query().Get("period"))
	ctx := r.Context()

	latest, err := api.readingRepo.LatestReading(ctx)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}
	if latest == nil {
		respondWithJSON(w, http.StatusOK, SensorHistoryResponse{Period: period.Name, Data: []domain.HistoricalPoint{}})
		return
	}

	points, err := api.readingRepo.HistoricalSeries(ctx, historyQuery(*latest, period))
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}
	if points == nil {
		points = []domain.HistoricalPoint{}
	}

	respondWithJSON(w, http.StatusOK, SensorHistoryResponse{Period: period.Name, Data: points})
}

func (api *API) GetRecentEvents(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetRecentEvents")

	events, err := api.eventRepo.RecentEvents(r.Context(), recentEventsLimit)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
