package main

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"

	"github.com/Simplici0/minecalc/internal/collector"
	"github.com/Simplici0/minecalc/internal/mining"
	"github.com/Simplici0/minecalc/internal/report"
	"github.com/Simplici0/minecalc/internal/scenario"
	"github.com/Simplici0/minecalc/internal/seed"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"money":  report.Money,
	"number": report.Number,
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

type fieldView struct {
	Name  string
	Label string
	Value string
	Min   float64
	Max   float64
	Step  float64
}

type fieldGroup struct {
	Name   string
	Fields []fieldView
}

type homeViewData struct {
	baseViewData
	Groups       []fieldGroup
	ScenarioName string
	Errors       []string
	Warnings     []mining.Warning
	Report       *mining.Report
	Breakdown    []report.Slice
	Waterfall    []report.Step
	Saved        []report.Row
	Charts       []report.Series
}

// handleHome shows the form filled with the defaults and their results.
func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	in := seed.DefaultInputs()
	rep, err := mining.Compute(in)
	s.metrics.ObserveCompute(rep, err)

	data := s.homeData(r, in)
	data.SuccessMessage = r.URL.Query().Get("success")
	data.setOutcome(rep, err)
	s.renderTemplate(w, r, engineStatus(err), "home.html", data)
}

// handleFormSubmit recomputes the scenario from the posted form. With
// action=save the run is also appended to the saved list.
func (s *server) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, err := collector.FromForm(r.PostForm, seed.DefaultInputs())
	if err != nil {
		data := s.homeData(r, in)
		data.ErrorMessage = err.Error()
		s.renderTemplate(w, r, http.StatusBadRequest, "home.html", data)
		return
	}

	name := r.PostFormValue("name")
	var (
		rep     mining.Report
		saved   scenario.Saved
		success string
	)
	if r.PostFormValue("action") == "save" {
		saved, rep, err = scenario.SaveComputed(r.Context(), s.store, name, in)
		if err == nil {
			s.metrics.ObserveSaved()
			success = "Scenario '" + saved.Name + "' saved."
		}
	} else {
		rep, err = mining.Compute(in)
	}
	s.metrics.ObserveCompute(rep, err)

	data := s.homeData(r, in)
	data.ScenarioName = name
	data.SuccessMessage = success
	data.setOutcome(rep, err)
	s.renderTemplate(w, r, engineStatus(err), "home.html", data)
}

// setOutcome fills either the error list or the result sections.
func (d *homeViewData) setOutcome(rep mining.Report, err error) {
	if err != nil {
		d.Errors = mining.Messages(err)
		return
	}
	d.Report = &rep
	d.Warnings = rep.Warnings
	d.Breakdown = report.CostBreakdown(rep.Results)
	d.Waterfall = report.Waterfall(rep.Results)
}

func (s *server) handleFormClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("clear scenarios")
		http.Error(w, "failed to clear scenarios", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/?success=Saved+scenarios+cleared", http.StatusSeeOther)
}

func (s *server) homeData(r *http.Request, in mining.Inputs) homeViewData {
	data := homeViewData{Groups: formGroups(in)}

	saved, err := s.store.List(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list scenarios")
		data.ErrorMessage = "failed to load saved scenarios"
		return data
	}
	data.Saved = report.Compare(saved)
	data.Charts = report.Charts(data.Saved)
	return data
}

func formGroups(in mining.Inputs) []fieldGroup {
	var groups []fieldGroup
	for _, f := range collector.Fields() {
		if len(groups) == 0 || groups[len(groups)-1].Name != f.Group {
			groups = append(groups, fieldGroup{Name: f.Group})
		}
		g := &groups[len(groups)-1]
		g.Fields = append(g.Fields, fieldView{
			Name:  f.Name,
			Label: f.Label,
			Value: strconv.FormatFloat(f.Value(in), 'f', -1, 64),
			Min:   f.Min,
			Max:   f.Max,
			Step:  f.Step,
		})
	}
	return groups
}

func (s *server) renderTemplate(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	templates, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS,
		"templates/layout.html",
		"templates/"+page,
	)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", page).Msg("parse template")
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", page).Msg("render template")
		return
	}
}
