package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlaga/atmodeller/internal/cli"
	"github.com/felixlaga/atmodeller/pkg/adapters/httpapi"
	"github.com/felixlaga/atmodeller/pkg/output"
)

func sampleResponse() *httpapi.SolveResponse {
	return &httpapi.SolveResponse{
		Keys: []string{"H2O_g", "H2_g"},
		QuickLook: map[string][]httpapi.JSONFloat{
			"H2O_g": {32.77},
			"H2_g":  {71.5},
		},
		Metadata: []output.Metadata{
			{Converged: true, ResidualNorm: 2.1e-12, Iterations: 11, Attempts: 1},
		},
	}
}

func TestReportMarkdown_Converged(t *testing.T) {
	md := cli.ReportMarkdown(sampleResponse())
	assert.Contains(t, md, "| H2O_g | 32.77 |")
	assert.Contains(t, md, "| H2_g | 71.5 |")
	assert.Contains(t, md, "Converged in 11 iterations")
}

func TestReportMarkdown_Failed(t *testing.T) {
	resp := sampleResponse()
	resp.Metadata[0].Converged = false
	resp.Metadata[0].Attempts = 5
	md := cli.ReportMarkdown(resp)
	assert.Contains(t, md, "Not converged")
	assert.NotContains(t, md, "| H2O_g |")
}

func TestReportMarkdown_Saturated(t *testing.T) {
	resp := sampleResponse()
	resp.Metadata[0].BoundarySaturated = true
	resp.Metadata[0].SaturatedSpecies = []string{"O2_g"}
	md := cli.ReportMarkdown(resp)
	assert.Contains(t, md, "Boundary-saturated species: O2_g")
}

func TestWriteReport_NonTerminal(t *testing.T) {
	// A bytes.Buffer is not a terminal, so the raw markdown comes through.
	var buf bytes.Buffer
	require.NoError(t, cli.WriteReport(&buf, sampleResponse()))
	assert.Contains(t, buf.String(), "# Equilibrium report")
}
