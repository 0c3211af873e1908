package source_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/statdata/source"
)

// TestTableValue reads column-major cells and checks bounds.
func TestTableValue(t *testing.T) {
	tbl, err := source.NewTable([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	vars, obs := tbl.Shape()
	require.Equal(t, 2, vars)
	require.Equal(t, 3, obs)
	require.True(t, source.IsReentrant(tbl))

	x, err := tbl.Value(1, 2)
	require.NoError(t, err)
	require.Equal(t, 6.0, x)

	_, err = tbl.Value(2, 0)
	require.ErrorIs(t, err, source.ErrOutOfRange)
	require.EqualError(t, err, "Table.Value(2,0): source: cell out of range")
	_, err = tbl.Value(0, -1)
	require.ErrorIs(t, err, source.ErrOutOfRange)

	ix := tbl.Indices()
	require.Equal(t, []int{0, 1}, ix.VariableIndices())
	require.Equal(t, []int{0, 1, 2}, ix.ObservationIndices())
}

// TestTableCopiesInput isolates the table from later writes to cols.
func TestTableCopiesInput(t *testing.T) {
	cols := [][]float64{{1, 2}}
	tbl, err := source.NewTable(cols)
	require.NoError(t, err)
	cols[0][0] = 42

	x, err := tbl.Value(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, x)
}

// TestTableRagged rejects columns of different length.
func TestTableRagged(t *testing.T) {
	_, err := source.NewTable([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, source.ErrRagged)
	require.EqualError(t, err, "NewTable: column 1 has 1 rows, want 2: source: columns have different lengths")
}

// TestTableMissing covers the default and custom predicates.
func TestTableMissing(t *testing.T) {
	tbl, err := source.NewTable(nil)
	require.NoError(t, err)
	require.True(t, tbl.IsMissing(math.NaN()))
	require.True(t, tbl.IsMissing(math.MaxFloat64))
	require.False(t, tbl.IsMissing(source.StataMaxDouble))
	require.False(t, tbl.IsMissing(-1))

	neg, err := source.NewTable(nil, source.WithMissing(func(x float64) bool { return x < 0 }))
	require.NoError(t, err)
	require.True(t, neg.IsMissing(-1))
	require.False(t, neg.IsMissing(math.NaN()))

	require.Panics(t, func() { source.WithMissing(nil) })
}

// TestStataMissing checks the boundary of the missing-value range.
func TestStataMissing(t *testing.T) {
	require.False(t, source.StataMissing(source.StataMaxDouble))
	require.True(t, source.StataMissing(math.Nextafter(source.StataMaxDouble, math.Inf(1))))
	require.True(t, source.StataMissing(math.Inf(1)))
	require.False(t, source.StataMissing(math.Inf(-1)))
	require.True(t, source.NaNMissing(math.NaN()))
	require.False(t, source.NaNMissing(math.Inf(1)))
}

// countingAccessor is a non-reentrant accessor that detects overlapping calls.
type countingAccessor struct {
	mu         sync.Mutex
	inFlight   int
	overlapped bool
	calls      int
}

func (c *countingAccessor) enter() {
	c.mu.Lock()
	c.inFlight++
	c.calls++
	if c.inFlight > 1 {
		c.overlapped = true
	}
	c.mu.Unlock()
}

func (c *countingAccessor) leave() {
	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()
}

func (c *countingAccessor) Value(v, o int) (float64, error) {
	c.enter()
	defer c.leave()

	return float64(v*10 + o), nil
}

func (c *countingAccessor) IsMissing(x float64) bool {
	c.enter()
	defer c.leave()

	return math.IsNaN(x)
}

// TestSerialize never lets two calls overlap.
func TestSerialize(t *testing.T) {
	acc := &countingAccessor{}
	require.False(t, source.IsReentrant(acc))

	s := source.Serialize(acc)
	require.True(t, source.IsReentrant(s))
	require.Same(t, s, source.Serialize(s))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for o := 0; o < 100; o++ {
				x, err := s.Value(g, o)
				if err != nil || s.IsMissing(x) {
					t.Errorf("unexpected read (%d,%d): %v", g, o, err)
				}
			}
		}()
	}
	wg.Wait()

	require.False(t, acc.overlapped)
	require.Equal(t, 1600, acc.calls)
}
