package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"envmonitor/internal/domain"
	"envmonitor/internal/export"
	"envmonitor/internal/sleep"
	"envmonitor/internal/stats"

	"github.com/pkg/errors"
)

const defaultStatsDays = 30

type StatsParams struct {
	Start string `validate:"omitempty,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
}

type StatsResponse struct {
	Stats stats.Overview        `json:"stats"`
	Daily []domain.DailySummary `json:"daily"`
}

// GetStats returns per-day aggregates between start and end, both inclusive.
func (api *API) GetStats(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "GetStats")

	params := StatsParams{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	if err := api.validate.Struct(params); err != nil {
		log.Debugf("validation error: %v", err)
		respondWithError(w, http.StatusBadRequest, sleep.ErrInvalidDateFormat.Error())
		return
	}

	from, to, err := api.parseRange(params.Start, params.End)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	days, err := api.readingRepo.DailySummaries(ctx, from, to, api.loc)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}
	moods, err := api.journalRepo.DailyMoods(ctx, from, to, api.loc)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}
	if days == nil {
		days = []domain.DailySummary{}
	}
	stats.AttachMoods(days, moods)

	respondWithJSON(w, http.StatusOK, StatsResponse{
		Stats: stats.Summarize(days, from.Format(sleep.DateLayout)),
		Daily: days,
	})
}

// parseRange resolves start and end dates to [start 00:00, end+1 00:00) in
// the API's location. Missing dates default to the last 30 days.
func (api *API) parseRange(startStr, endStr string) (from, to time.Time, err error) {
	now := api.now().In(api.loc)
	y, m, d := now.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, api.loc)
	if endStr != "" {
		if end, err = sleep.ParseDate(endStr, api.loc); err != nil {
			return
		}
	}

	ey, em, ed := end.Date()
	start := time.Date(ey, em, ed-defaultStatsDays, 0, 0, 0, 0, api.loc)
	if startStr != "" {
		if start, err = sleep.ParseDate(startStr, api.loc); err != nil {
			return
		}
	}

	if start.After(end) {
		err = errors.Errorf("start %s is after end %s", startStr, endStr)
		return
	}

	return start, time.Date(ey, em, ed+1, 0, 0, 0, 0, api.loc), nil
}

type exportParams struct {
	Limit  int `validate:"min=1"`
	Offset int `validate:"min=0"`
}

// ExportCSV streams the most recent readings as a CSV attachment.
func (api *API) ExportCSV(w http.ResponseWriter, r *http.Request) {
	log := api.log.With("method", "ExportCSV")

	params := exportParams{Limit: export.DefaultLimit}
	for _, p := range []struct {
		key string
		dst *int
	}{
		{"limit", &params.Limit},
		{"offset", &params.Offset},
	} {
		v := r.URL.Query().Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, p.key+" must be a number")
			return
		}
		*p.dst = n
	}
	if err := api.validate.Struct(params); err != nil {
		respondWithError(w, http.StatusBadRequest, "limit must be positive and offset not negative")
		return
	}
	if params.Limit > export.MaxLimit {
		params.Limit = export.MaxLimit
	}

	ctx := r.Context()
	recent, err := api.readingRepo.RecentReadings(ctx, params.Limit, params.Offset)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}
	if len(recent) == 0 {
		respondWithError(w, http.StatusNotFound, "no data to export")
		return
	}

	readings := export.Reverse(recent)
	first := readings[0].Timestamp.In(api.loc)
	last := readings[len(readings)-1].Timestamp.In(api.loc)
	fy, fm, fd := first.Date()
	ly, lm, ld := last.Date()
	moods, err := api.journalRepo.DailyMoods(ctx,
		time.Date(fy, fm, fd, 0, 0, 0, 0, api.loc),
		time.Date(ly, lm, ld+1, 0, 0, 0, 0, api.loc),
		api.loc,
	)
	if err != nil {
		respondWithServiceError(w, log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename(api.now().In(api.loc))))
	if err := export.WriteReadings(w, readings, moods, api.loc); err != nil {
		log.Errorf("failed to write export: %v", err)
	}
}
