package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"envmonitor/internal/assistant"
	"envmonitor/internal/sleep"
	"envmonitor/internal/stats"

	"go.uber.org/zap"
)

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type ChatResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (api *API) PostChat(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "PostChat")

	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := api.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "message is required")
		return
	}

	if !api.chatLimiter.Allow() {
		respondWithError(w, http.StatusTooManyRequests, "too many requests")
		return
	}

	reply := api.responder.Reply(req.Message, api.chatContext(r.Context(), log))
	respondWithJSON(w, http.StatusOK, ChatResponse{Success: true, Message: reply, Timestamp: api.now()})
}

// chatContext gathers what the responder may use. Lookups that fail leave
// the corresponding field empty.
func (api *API) chatContext(ctx context.Context, log *zap.SugaredLogger) assistant.Context {
	var c assistant.Context

	current, err := api.readingRepo.LatestReading(ctx)
	if err != nil {
		log.Debugf("chat: latest reading unavailable: %v", err)
	}
	if current == nil {
		return c
	}
	c.Current = current

	history, err := api.readingRepo.HistoricalSeries(ctx, historyQuery(*current, stats.ParsePeriod("24h")))
	if err != nil {
		log.Debugf("chat: history unavailable: %v", err)
	}
	c.History = history

	date, err := api.readingRepo.LatestReadingDate(ctx, api.loc)
	if err != nil {
		log.Debugf("chat: no latest date: %v", err)
		return c
	}
	window, err := sleep.ComputeNightWindow(date, api.loc)
	if err != nil {
		return c
	}
	readings, err := api.readingRepo.ReadingsInWindow(ctx, window.Start, window.End)
	if err != nil {
		log.Debugf("chat: night readings unavailable: %v", err)
		return c
	}
	if summary, err := sleep.Aggregate(readings, date, api.loc); err == nil {
		c.LastNight = &summary
	}
	return c
}
