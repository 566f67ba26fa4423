package sweep

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circuitlab"
	"circuitlab/element/bulb"
	"circuitlab/element/capacitor"
	"circuitlab/element/inductor"
	"circuitlab/element/vcc"
	"circuitlab/simulate"
	"circuitlab/types"
)

func TestFrequencies(t *testing.T) {
	f, err := Spec{Start: 0, Stop: 100, Points: 5, Scale: ScaleLinear}.Frequencies()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, f)

	f, err = Spec{Start: 10, Stop: 1000, Points: 10, Scale: ScaleDecade}.Frequencies()
	require.NoError(t, err)
	require.Len(t, f, 21)
	assert.InDelta(t, 10, f[0], 1e-9)
	assert.InDelta(t, 100, f[10], 1e-9)
	assert.InDelta(t, 1000, f[20], 1e-9)

	f, err = Spec{Start: 100, Stop: 800, Points: 1, Scale: ScaleOctave}.Frequencies()
	require.NoError(t, err)
	require.Len(t, f, 4)
	assert.InDelta(t, 400, f[2], 1e-9)

	f, err = Spec{Start: 50, Stop: 50, Points: 10, Scale: ScaleDecade}.Frequencies()
	require.NoError(t, err)
	assert.Equal(t, []float64{50}, f)

	for _, bad := range []Spec{
		{Start: 0, Stop: 100, Points: 10, Scale: ScaleDecade},
		{Start: 100, Stop: 10, Points: 10},
		{Start: -1, Stop: 10, Points: 10},
		{Start: 1, Stop: 10, Points: 0},
		{Start: 1, Stop: 10, Points: MaxPoints + 1, Scale: ScaleLinear},
		{Start: 1, Stop: 1e6, Points: 2000, Scale: ScaleDecade},
	} {
		_, err := bad.Frequencies()
		assert.Error(t, err, "%+v", bad)
	}
	f, err = Spec{Start: 1, Stop: 10, Points: MaxPoints, Scale: ScaleLinear}.Frequencies()
	require.NoError(t, err)
	assert.Len(t, f, MaxPoints)

	s, err := ParseScale("DEC")
	require.NoError(t, err)
	assert.Equal(t, ScaleDecade, s)
	assert.Equal(t, "oct", ScaleOctave.String())
	_, err = ParseScale("log")
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

// resonant 串联谐振电路，谐振频率约 159.15Hz
func resonant(t *testing.T) (*circuitlab.Circuit, types.ElementID) {
	t.Helper()
	cir := circuitlab.NewCircuit()
	_, err := cir.NewElement(vcc.Type, 220, 50)
	require.NoError(t, err)
	b, err := cir.NewElement(bulb.Type, 220, 50)
	require.NoError(t, err)
	_, err = cir.NewElement(inductor.Type, 0.1)
	require.NoError(t, err)
	_, err = cir.NewElement(capacitor.Type, 1e-5)
	require.NoError(t, err)
	return cir, b.Base().ID
}

func TestRun(t *testing.T) {
	cir, bulbID := resonant(t)
	o, err := simulate.NewOrchestrator(types.DefaultThresholds())
	require.NoError(t, err)

	points, err := Run(cir, o, simulate.SeriesWithIndicator, Spec{Start: 10, Stop: 1000, Points: 20, Scale: ScaleDecade})
	require.NoError(t, err)
	require.Len(t, points, 41)
	// 10Hz 时电容阻抗约 1.6kΩ
	assert.Equal(t, types.StatusWeak, points[0].Status)

	peak, ok := Peak(points)
	require.True(t, ok)
	assert.InDelta(t, 158.49, peak.Frequency, 0.01)
	assert.Equal(t, types.StatusNormal, peak.Status)
	assert.Greater(t, peak.PowerRatio, 0.99)

	// 原电路不受影响
	assert.Equal(t, 0.0, cir.Find(bulbID).Base().Current())

	_, ok = Peak(nil)
	assert.False(t, ok)

	_, err = Run(circuitlab.NewCircuit(), o, simulate.SeriesWithIndicator, Spec{Start: 1, Stop: 10, Points: 2})
	assert.ErrorIs(t, err, types.ErrNoSource)
}

func TestRender(t *testing.T) {
	cir, _ := resonant(t)
	o, err := simulate.NewOrchestrator(types.DefaultThresholds())
	require.NoError(t, err)
	points, err := Run(cir, o, simulate.SeriesWithIndicator, Spec{Start: 10, Stop: 1000, Points: 5, Scale: ScaleDecade})
	require.NoError(t, err)

	var html bytes.Buffer
	require.NoError(t, Render(&html, points))
	assert.Contains(t, html.String(), "阻抗曲线")

	var svg bytes.Buffer
	require.NoError(t, WritePlot(&svg, points, o.Thresholds, "svg"))
	assert.Contains(t, svg.String(), "<svg")

	_, err = Plot(nil, o.Thresholds)
	assert.Error(t, err)
}
