package api

import (
	"net/http"
	"strconv"

	"envmonitor/internal/domain"
	"envmonitor/internal/sleep"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// GetSleepSummary returns the night analysis for the date in the path.
func (api *API) GetSleepSummary(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetSleepSummary")
	date := chi.URLParam(r, "date")

	window, err := sleep.ComputeNightWindow(date, api.loc)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	readings, err := api.readingRepo.ReadingsInWindow(r.Context(), window.Start, window.End)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	summary, err := sleep.Aggregate(readings, date, api.loc)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}

// GetSleepSeries returns the per-minute detail of the night for the date in the path.
func (api *API) GetSleepSeries(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetSleepSeries")
	date := chi.URLParam(r, "date")

	window, err := sleep.ComputeNightWindow(date, api.loc)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	readings, err := api.readingRepo.ReadingsInWindow(r.Context(), window.Start, window.End)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	series, err := sleep.BuildSeries(readings, date, api.loc)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, series)
}

func (api *API) GetLatestSleepDate(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetLatestSleepDate")

	date, err := api.readingRepo.LatestReadingDate(r.Context(), api.loc)
	if errors.Is(err, domain.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "no readings available")
		return
	}
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"date": date})
}

type SleepQualityRequest struct {
	Date   string  `json:"date" validate:"required"`
	Rating int     `json:"rating"`
	Notes  *string `json:"notes"`
}

type SleepQualityResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
	Rating  int   `json:"rating"`
}

func (api *API) PostSleepQuality(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "PostSleepQuality")

	var req SleepQualityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := api.validate.Struct(req); err != nil {
		log.Debugf("validation error: %v", err)
		respondWithError(w, http.StatusBadRequest, sleep.ErrInvalidDateFormat.Error())
		return
	}

	id, err := api.journal.RecordSleepQuality(r.Context(), req.Date, req.Rating, req.Notes)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, SleepQualityResponse{Success: true, ID: id, Rating: req.Rating})
}

type historyParams struct {
	Days int `validate:"min=1,max=365"`
}

func (api *API) GetSleepQualityHistory(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetSleepQualityHistory")

	params := historyParams{Days: 30}
	if v := r.URL.Query().Get("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "days must be a number")
			return
		}
		params.Days = days
	}
	if err := api.validate.Struct(params); err != nil {
		respondWithError(w, http.StatusBadRequest, "days must be between 1 and 365")
		return
	}

	records, err := api.journal.SleepQualityHistory(r.Context(), params.Days)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}
