// Command minecalc evaluates one mining scenario from a YAML file (or the
// defaults) and prints the report.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/Simplici0/minecalc/internal/collector"
	"github.com/Simplici0/minecalc/internal/mining"
	"github.com/Simplici0/minecalc/internal/report"
	"github.com/Simplici0/minecalc/internal/seed"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var errScenarioInvalid = errors.New("scenario could not be computed")

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errScenarioInvalid) {
			log.Error().Err(err).Msg("minecalc failed")
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("minecalc", pflag.ContinueOnError)
	file := fs.StringP("file", "f", "", "scenario YAML file (defaults when empty)")
	format := fs.String("format", formatText, "output format: text or json")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *format != formatText && *format != formatJSON {
		return fmt.Errorf("unknown format %q", *format)
	}

	in, err := loadInputs(*file)
	if err != nil {
		return err
	}

	rep, err := mining.Compute(in)
	if *format == formatJSON {
		if werr := writeJSON(out, in, rep, err); werr != nil {
			return werr
		}
	} else if err != nil {
		_, _ = io.WriteString(out, report.Errors(err))
	} else {
		_, _ = io.WriteString(out, report.Text(in, rep))
	}

	if err != nil {
		log.Warn().Strs("errors", mining.Messages(err)).Msg("scenario rejected")
		return errScenarioInvalid
	}
	if len(rep.Warnings) > 0 {
		log.Info().Int("warnings", len(rep.Warnings)).Msg("scenario computed with warnings")
	}
	return nil
}

func loadInputs(path string) (mining.Inputs, error) {
	if path == "" {
		return seed.DefaultInputs(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return mining.Inputs{}, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	in, err := collector.LoadYAML(f)
	if err != nil {
		return mining.Inputs{}, fmt.Errorf("%s: %w", path, err)
	}
	return in, nil
}

type jsonOutput struct {
	Inputs   mining.Inputs    `json:"inputs"`
	Results  *mining.Results  `json:"results,omitempty"`
	KPIs     *mining.KPIs     `json:"kpis,omitempty"`
	Warnings []mining.Warning `json:"warnings"`
	Errors   []string         `json:"errors"`
}

func writeJSON(w io.Writer, in mining.Inputs, rep mining.Report, err error) error {
	doc := jsonOutput{Inputs: in, Warnings: []mining.Warning{}, Errors: []string{}}
	if err != nil {
		doc.Errors = mining.Messages(err)
	} else {
		doc.Results, doc.KPIs = &rep.Results, &rep.KPIs
		if rep.Warnings != nil {
			doc.Warnings = rep.Warnings
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
