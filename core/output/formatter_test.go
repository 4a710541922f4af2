package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-regret/core/types"
)

func optimalResult() *types.Result {
	res := types.EmptyResult(types.StatusOptimal, "")
	regret := 12.5
	res.MinMaxRegret = &regret
	res.Selected = []string{"A", "B"}
	res.TotalCost = decimal.NewFromInt(20)
	res.Ideals = map[types.Scenario]float64{}
	res.Regrets = map[types.Scenario]float64{}
	for _, s := range types.Scenarios() {
		res.TotalReturns[s] = decimal.NewFromInt(90)
		res.Ideals[s] = 100
		res.Regrets[s] = 10
	}
	return res
}

func TestCLIRenderOptimal(t *testing.T) {
	f, err := For("cli", Options{ShowIdeals: true, ShowRegrets: true})
	require.NoError(t, err)
	assert.Equal(t, FormatCLI, f.Format())

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, optimalResult()))

	out := buf.String()
	assert.Contains(t, out, "Status: Optimal")
	assert.Contains(t, out, "Minimax regret: 12.50")
	assert.Contains(t, out, "Total cost: 20.00")
	assert.Contains(t, out, "- A")
	assert.Contains(t, out, "- B")
	assert.Contains(t, out, "ideal (V*)")
}

func TestCLIRenderNonOptimalStopsAtStatus(t *testing.T) {
	f, err := For("cli", Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, types.EmptyResult(types.StatusInfeasible, "")))
	assert.Contains(t, buf.String(), "Status: Infeasible")
	assert.NotContains(t, buf.String(), "Minimax regret")
}

func TestJSONRender(t *testing.T) {
	f, err := For("json", Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf, optimalResult()))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Optimal", decoded["status"])
	assert.Equal(t, 12.5, decoded["min_max_regret"])
}

func TestUnknownFormat(t *testing.T) {
	_, err := For("xml", Options{})
	require.Error(t, err)
}
