package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/Simplici0/minecalc/internal/collector"
	"github.com/Simplici0/minecalc/internal/mining"
	"github.com/Simplici0/minecalc/internal/report"
	"github.com/Simplici0/minecalc/internal/scenario"
	"github.com/Simplici0/minecalc/internal/seed"
)

const maxBodyBytes = 1 << 20

type outcomeResponse struct {
	Results  *mining.Results  `json:"results,omitempty"`
	KPIs     *mining.KPIs     `json:"kpis,omitempty"`
	Warnings []mining.Warning `json:"warnings"`
	Errors   []string         `json:"errors"`
}

func newOutcomeResponse(rep mining.Report, err error) outcomeResponse {
	if err != nil {
		return outcomeResponse{Warnings: []mining.Warning{}, Errors: mining.Messages(err)}
	}
	warnings := rep.Warnings
	if warnings == nil {
		warnings = []mining.Warning{}
	}
	return outcomeResponse{Results: &rep.Results, KPIs: &rep.KPIs, Warnings: warnings, Errors: []string{}}
}

// engineStatus maps an engine error onto an HTTP status code.
func engineStatus(err error) int {
	var verrs mining.ValidationErrors
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type saveRequest struct {
	Name   string          `json:"name"`
	Inputs json.RawMessage `json:"inputs"`
}

type saveResponse struct {
	Scenario *scenario.Saved `json:"scenario,omitempty"`
	outcomeResponse
}

type compareResponse struct {
	Rows   []report.Row    `json:"rows"`
	Charts []report.Series `json:"charts"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, seed.DefaultInputs())
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInputs(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := mining.Compute(in)
	s.metrics.ObserveCompute(rep, err)
	status := engineStatus(err)
	if status == http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("calculation fault")
	}
	writeJSON(w, status, newOutcomeResponse(rep, err))
}

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInputs(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rep, err := mining.Compute(in)
	s.metrics.ObserveCompute(rep, err)
	body := report.Errors(err)
	if err == nil {
		body = report.Text(in, rep)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(engineStatus(err))
	_, _ = io.WriteString(w, body)
}

func (s *server) handleScenariosList(w http.ResponseWriter, r *http.Request) {
	saved, err := s.store.List(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list scenarios")
		writeJSONError(w, http.StatusInternalServerError, "failed to load scenarios")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *server) handleScenariosSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid json body: %v", err))
		return
	}

	in := seed.DefaultInputs()
	if len(req.Inputs) > 0 {
		var err error
		if in, err = decodeInputsOver(in, req.Inputs); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	saved, rep, err := scenario.SaveComputed(r.Context(), s.store, req.Name, in)
	if err != nil {
		var verrs mining.ValidationErrors
		var fault *mining.ComputationFault
		if !errors.As(err, &verrs) && !errors.As(err, &fault) {
			hlog.FromRequest(r).Error().Err(err).Msg("save scenario")
			writeJSONError(w, http.StatusInternalServerError, "failed to save scenario")
			return
		}
		s.metrics.ObserveCompute(rep, err)
		writeJSON(w, engineStatus(err), saveResponse{outcomeResponse: newOutcomeResponse(rep, err)})
		return
	}

	s.metrics.ObserveCompute(rep, nil)
	s.metrics.ObserveSaved()
	hlog.FromRequest(r).Info().Str("scenario", saved.Name).Int64("seq", saved.Seq).Msg("scenario saved")
	writeJSON(w, http.StatusCreated, saveResponse{Scenario: &saved, outcomeResponse: newOutcomeResponse(rep, nil)})
}

func (s *server) handleScenariosCompare(w http.ResponseWriter, r *http.Request) {
	saved, err := s.store.List(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list scenarios")
		writeJSONError(w, http.StatusInternalServerError, "failed to load scenarios")
		return
	}

	rows := report.Compare(saved)
	charts := report.Charts(rows)
	if charts == nil {
		charts = []report.Series{}
	}
	writeJSON(w, http.StatusOK, compareResponse{Rows: rows, Charts: charts})
}

func (s *server) handleScenariosClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("clear scenarios")
		writeJSONError(w, http.StatusInternalServerError, "failed to clear scenarios")
		return
	}
	hlog.FromRequest(r).Info().Msg("scenarios cleared")
	w.WriteHeader(http.StatusNoContent)
}

// decodeInputs reads a JSON Inputs document over the defaults and applies the
// collector bounds.
func decodeInputs(body io.Reader) (mining.Inputs, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return mining.Inputs{}, fmt.Errorf("read body: %w", err)
	}
	return decodeInputsOver(seed.DefaultInputs(), raw)
}

func decodeInputsOver(base mining.Inputs, raw []byte) (mining.Inputs, error) {
	in := base
	if len(raw) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return mining.Inputs{}, fmt.Errorf("invalid json body: %v", err)
		}
	}
	if err := collector.CheckBounds(in); err != nil {
		return mining.Inputs{}, err
	}
	return in, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
