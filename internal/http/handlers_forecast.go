package http

import (
	"net/http"

	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/services"
)

func (s *Server) handleCalculateForecast(w http.ResponseWriter, r *http.Request) {
	var req ForecastRequestDTO
	if err := ReadAndValidateRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	fr, err := req.toService()
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeForecast(w, r, fr)
}

// handleForecastQuery is the query-string form of the calculate endpoint.
func (s *Server) handleForecastQuery(w http.ResponseWriter, r *http.Request) {
	q, err := ParseForecastQuery(r.URL.Query(), core.DateOf(s.today()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeForecast(w, r, services.ForecastRequest{
		StartDate:      q.StartDate,
		NumWeeks:       q.NumWeeks,
		InitialBalance: q.InitialBalance,
	})
}

func (s *Server) writeForecast(w http.ResponseWriter, r *http.Request, fr services.ForecastRequest) {
	report, err := s.forecasts.Calculate(r.Context(), fr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(report).Write(w)
}

// handleExportForecast asks the worker to export a forecast. A missing
// numWeeks is sent as 0, which the worker reads as "use the default".
func (s *Server) handleExportForecast(w http.ResponseWriter, r *http.Request) {
	if s.exports == nil {
		ErrorResponse(http.StatusServiceUnavailable, "exports are not configured").Write(w)
		return
	}
	var req ForecastRequestDTO
	if err := ReadAndValidateRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	fr, err := req.toService()
	if err != nil {
		writeError(w, r, err)
		return
	}
	numWeeks := 0
	if fr.NumWeeks != nil {
		numWeeks = *fr.NumWeeks
	}
	if err := s.exports.PublishForecastRequested(r.Context(), fr.StartDate.String(), numWeeks, fr.InitialBalance); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to queue forecast export",
			log.FieldOperation, log.OpExport,
			log.FieldError, err.Error())
		ErrorResponse(http.StatusServiceUnavailable, "export queue unavailable").Write(w)
		return
	}
	NewJSONResponse().
		Status(http.StatusAccepted).
		Body(map[string]any{"status": "queued", "startDate": fr.StartDate, "numWeeks": numWeeks}).
		Write(w)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(settings).Write(w)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := ReadAndValidateRequest(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := s.settings.Update(r.Context(), req.toCore())
	if err != nil {
		writeError(w, r, err)
		return
	}
	NewJSONResponse().Body(updated).Write(w)
}
