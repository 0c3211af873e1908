// Package extract_test holds shared fixtures for the extract tests.
package extract_test

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/statdata/source"
)

// errBoom is the error returned by failing fixtures.
var errBoom = errors.New("boom")

// cell addresses one (variable, observation) pair of a gridAccessor.
type cell struct{ v, o int }

// gridAccessor is a sparse, non-reentrant accessor that counts calls and
// records whether two Value calls ever overlapped.
type gridAccessor struct {
	cells      map[cell]float64
	failAt     int64 // 1-based call number that fails; 0 = never
	calls      atomic.Int64
	inFlight   atomic.Int32
	overlapped atomic.Bool
}

func (g *gridAccessor) Value(v, o int) (float64, error) {
	n := g.calls.Add(1)
	if g.inFlight.Add(1) > 1 {
		g.overlapped.Store(true)
	}
	defer g.inFlight.Add(-1)
	if g.failAt > 0 && n == g.failAt {
		return 0, errBoom
	}
	x, ok := g.cells[cell{v, o}]
	if !ok {
		return math.NaN(), nil
	}

	return x, nil
}

func (g *gridAccessor) IsMissing(x float64) bool { return math.IsNaN(x) }

// provider is a plain, mutable IndexProvider.
type provider struct{ vars, obs []int }

func (p provider) VariableIndices() []int    { return p.vars }
func (p provider) ObservationIndices() []int { return p.obs }

// scenarioTable is the 2×2 fixture: cells (v,o) = (0,0) 3.6, (1,0) missing,
// (0,1) -0.5, (1,1) 7.0.
func scenarioTable(t testing.TB) *source.Table {
	t.Helper()
	tbl, err := source.NewTable([][]float64{
		{3.6, -0.5},       // variable 0
		{math.NaN(), 7.0}, // variable 1
	})
	require.NoError(t, err)

	return tbl
}

// rampTable builds nVars×nObs cells with value v*100 + o + 0.25.
func rampTable(t testing.TB, nVars, nObs int) *source.Table {
	t.Helper()
	cols := make([][]float64, nVars)
	for v := range cols {
		cols[v] = make([]float64, nObs)
		for o := range cols[v] {
			cols[v][o] = float64(v*100+o) + 0.25
		}
	}
	tbl, err := source.NewTable(cols)
	require.NoError(t, err)

	return tbl
}
