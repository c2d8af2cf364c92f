package api

import (
	"net/http"

	"envmonitor/internal/domain"
)

type MoodRequest struct {
	Mood domain.MoodLevel `json:"mood" validate:"required,oneof=good regular bad"`
}

type MoodResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

func (api *API) GetMood(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetMood")

	record, err := api.journal.CurrentMood(r.Context())
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

func (api *API) PostMood(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "PostMood")

	var req MoodRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := api.validate.Struct(req); err != nil {
		log.Debugf("validation error: %v", err)
		respondWithError(w, http.StatusBadRequest, domain.ErrInvalidMood.Error())
		return
	}

	id, err := api.journal.RecordMood(r.Context(), req.Mood)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	respondWithJSON(w, http.StatusOK, MoodResponse{Success: true, ID: id})
}
