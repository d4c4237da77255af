// Package httpapi exposes the solver over HTTP as a JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/felixlaga/atmodeller"
	"github.com/felixlaga/atmodeller/pkg/chem"
	"github.com/felixlaga/atmodeller/pkg/eos"
	"github.com/felixlaga/atmodeller/pkg/output"
	"github.com/felixlaga/atmodeller/pkg/ports"
	"github.com/felixlaga/atmodeller/pkg/solubility"
	"github.com/felixlaga/atmodeller/pkg/thermo"
)

// Config wires optional infrastructure into the handler.
type Config struct {
	Logger   *slog.Logger
	Store    ports.SolutionStore
	Registry *prometheus.Registry
}

// SpeciesRequest declares one species. Activity and Solubility name models
// from the built-in libraries; empty means ideal / insoluble.
type SpeciesRequest struct {
	Name       string `json:"name"`
	Condensed  bool   `json:"condensed,omitempty"`
	Activity   string `json:"activity,omitempty"`
	Solubility string `json:"solubility,omitempty"`
}

// PlanetRequest carries batched planetary parameters. Empty fields take the
// molten-Earth defaults.
type PlanetRequest struct {
	SurfaceTemperature []float64 `json:"surface_temperature,omitempty"`
	PlanetMass         []float64 `json:"planet_mass,omitempty"`
	SurfaceRadius      []float64 `json:"surface_radius,omitempty"`
	MantleMeltMass     []float64 `json:"mantle_melt_mass,omitempty"`
}

// FugacityRequest is either a constant target (value, bar) or a named
// mineral buffer with an optional log10 shift.
type FugacityRequest struct {
	Value  *float64 `json:"value,omitempty"`
	Buffer string   `json:"buffer,omitempty"`
	Shift  float64  `json:"shift,omitempty"`
}

// ParametersRequest tunes the solver. Zero fields select defaults.
type ParametersRequest struct {
	Multistart int     `json:"multistart,omitempty"`
	Tol        float64 `json:"tol,omitempty"`
	MaxIter    int     `json:"max_iter,omitempty"`
	Seed       int64   `json:"seed,omitempty"`
}

// SolveRequest is the POST /v1/solve body.
type SolveRequest struct {
	Species             []SpeciesRequest           `json:"species"`
	Planet              PlanetRequest              `json:"planet"`
	MassConstraints     map[string][]float64       `json:"mass_constraints,omitempty"`
	FugacityConstraints map[string]FugacityRequest `json:"fugacity_constraints,omitempty"`
	Parameters          ParametersRequest          `json:"parameters,omitempty"`
}

// SolveResponse is the POST /v1/solve reply.
type SolveResponse struct {
	Keys      []string               `json:"keys"`
	QuickLook map[string][]JSONFloat `json:"quick_look"`
	Metadata  []output.Metadata      `json:"metadata"`
}

// JSONFloat marshals like float64 but encodes NaN and infinities as null,
// so non-converged batch elements survive JSON encoding.
type JSONFloat float64

// MarshalJSON implements json.Marshaler.
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// NewHandler builds the API router.
func NewHandler(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/models", s.handleModels)
	})
	return r
}

type server struct {
	cfg Config
}

// handleModels lists the available activity and solubility model names.
func (s *server) handleModels(w http.ResponseWriter, _ *http.Request) {
	resp := struct {
		Activity   []string `json:"activity"`
		Solubility []string `json:"solubility"`
	}{}
	for name := range eos.Models() {
		resp.Activity = append(resp.Activity, name)
	}
	for name := range solubility.Models() {
		resp.Solubility = append(resp.Solubility, name)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var body SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	resp, err := RunCaseWithStore(r.Context(), s.cfg.Logger, s.cfg.Store, &body)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, atmodeller.ErrConstraintCountMismatch) ||
			errors.Is(err, atmodeller.ErrUnknownConstraint) ||
			errors.Is(err, atmodeller.ErrInvalidConstraint) ||
			errors.Is(err, chem.ErrShapeMismatch) ||
			errors.Is(err, chem.ErrInvalidFormula) ||
			errors.Is(err, chem.ErrDuplicateSpecies) ||
			errors.Is(err, chem.ErrEmptyCollection) ||
			errors.Is(err, errBadCase) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// errBadCase marks request construction failures (unknown model names,
// malformed constraints) as client errors.
var errBadCase = errors.New("invalid solve case")

// RunCase builds the collection, solves the case and flattens the result.
// It is shared by the HTTP and MCP adapters.
func RunCase(ctx context.Context, logger *slog.Logger, body *SolveRequest) (*SolveResponse, error) {
	return RunCaseWithStore(ctx, logger, nil, body)
}

// RunCaseWithStore is RunCase with an optional solution cache.
func RunCaseWithStore(ctx context.Context, logger *slog.Logger, store ports.SolutionStore, body *SolveRequest) (*SolveResponse, error) {
	if logger == nil {
		logger = slog.Default()
	}
	species, err := buildSpecies(body.Species)
	if err != nil {
		return nil, err
	}
	collection, err := chem.NewCollection(species...)
	if err != nil {
		return nil, err
	}

	opts := []atmodeller.Option{atmodeller.WithLogger(logger)}
	if store != nil {
		opts = append(opts, atmodeller.WithSolutionStore(store))
	}
	ia, err := atmodeller.New(collection, opts...)
	if err != nil {
		return nil, err
	}

	req, err := buildSolveRequest(body)
	if err != nil {
		return nil, err
	}

	out, err := ia.Solve(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &SolveResponse{
		Keys:      out.QuickLookKeys(),
		QuickLook: make(map[string][]JSONFloat),
		Metadata:  out.Metadata(),
	}
	for k, v := range out.QuickLook() {
		vals := make([]JSONFloat, len(v))
		for i, x := range v {
			vals[i] = JSONFloat(x)
		}
		resp.QuickLook[k] = vals
	}
	return resp, nil
}

func buildSpecies(reqs []SpeciesRequest) ([]chem.Species, error) {
	activityModels := eos.Models()
	solubilityModels := solubility.Models()

	species := make([]chem.Species, 0, len(reqs))
	for _, sr := range reqs {
		var opts []chem.SpeciesOption
		if sr.Activity != "" {
			m, ok := activityModels[sr.Activity]
			if !ok {
				return nil, fmt.Errorf("%w: unknown activity model %q", errBadCase, sr.Activity)
			}
			opts = append(opts, chem.WithActivity(m))
		}
		if sr.Solubility != "" {
			m, ok := solubilityModels[sr.Solubility]
			if !ok {
				return nil, fmt.Errorf("%w: unknown solubility model %q", errBadCase, sr.Solubility)
			}
			opts = append(opts, chem.WithSolubility(m))
		}

		var (
			sp  chem.Species
			err error
		)
		if sr.Condensed {
			sp, err = chem.CreateCondensed(sr.Name, opts...)
		} else {
			sp, err = chem.CreateGas(sr.Name, opts...)
		}
		if err != nil {
			return nil, err
		}
		species = append(species, sp)
	}
	return species, nil
}

func buildSolveRequest(body *SolveRequest) (*atmodeller.SolveRequest, error) {
	req := &atmodeller.SolveRequest{
		Planet: chem.Planet{
			SurfaceTemperature: body.Planet.SurfaceTemperature,
			PlanetMass:         body.Planet.PlanetMass,
			SurfaceRadius:      body.Planet.SurfaceRadius,
			MantleMeltMass:     body.Planet.MantleMeltMass,
		},
		Parameters: atmodeller.Parameters{
			Multistart: body.Parameters.Multistart,
			Tol:        body.Parameters.Tol,
			MaxIter:    body.Parameters.MaxIter,
			Seed:       body.Parameters.Seed,
		},
	}

	if len(body.MassConstraints) > 0 {
		req.MassConstraints = make(map[string]chem.Value, len(body.MassConstraints))
		for symbol, target := range body.MassConstraints {
			req.MassConstraints[symbol] = chem.Value(target)
		}
	}
	if len(body.FugacityConstraints) > 0 {
		req.FugacityConstraints = make(map[string]chem.FugacityConstraint, len(body.FugacityConstraints))
		for name, fr := range body.FugacityConstraints {
			con, err := buildFugacity(name, fr)
			if err != nil {
				return nil, err
			}
			req.FugacityConstraints[name] = con
		}
	}
	return req, nil
}

func buildFugacity(name string, fr FugacityRequest) (chem.FugacityConstraint, error) {
	switch {
	case fr.Value != nil && fr.Buffer != "":
		return nil, fmt.Errorf("%w: fugacity constraint on %q: value and buffer are mutually exclusive", errBadCase, name)
	case fr.Value != nil:
		return chem.ConstantFugacity{Value: *fr.Value}, nil
	case fr.Buffer == "iron_wustite" || fr.Buffer == "IW":
		return thermo.IronWustiteBuffer{Shift: fr.Shift}, nil
	case fr.Buffer != "":
		return nil, fmt.Errorf("%w: unknown fugacity buffer %q", errBadCase, fr.Buffer)
	default:
		return nil, fmt.Errorf("%w: fugacity constraint on %q: value or buffer required", errBadCase, name)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
