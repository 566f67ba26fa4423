package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circuitlab/element/capacitor"
	"circuitlab/element/inductor"
	"circuitlab/element/resistor"
	"circuitlab/maths"
	"circuitlab/types"
)

var nextID types.ElementID

func mustNew(t *testing.T, et types.ElementType, params ...float64) types.Element {
	t.Helper()
	nextID++
	e, err := types.NewElement(et, nextID, params...)
	require.NoError(t, err)
	return e
}

func res(t *testing.T, r float64) types.Element {
	return mustNew(t, resistor.Type, r)
}

func group(mode types.Mode, children ...types.Element) *types.Composite {
	nextID++
	return types.NewComposite(nextID, mode, types.DefaultThresholds(), children...)
}

func TestSeriesOrderIndependent(t *testing.T) {
	r10, r20, r30 := res(t, 10), res(t, 20), res(t, 30)
	orders := []*types.Composite{
		group(types.ModeSeries, r10, r20, r30),
		group(types.ModeSeries, group(types.ModeSeries, r10, r20), r30),
		group(types.ModeSeries, r10, group(types.ModeSeries, r20, r30)),
		group(types.ModeSeries, group(types.ModeSeries, r30, r10), r20),
	}
	for _, g := range orders {
		assert.Equal(t, 60.0, g.Impedance(0).Abs())
	}
}

func TestParallelAggregation(t *testing.T) {
	// 两个相等电阻并联为 R/2
	g := group(types.ModeParallel, res(t, 100), res(t, 100))
	assert.Equal(t, 50.0, g.Impedance(0).Abs())

	// 含开路支路时等于另一支路
	r := res(t, 75)
	c := mustNew(t, capacitor.Type, 1e-6) // 直流开路
	g = group(types.ModeParallel, r, c)
	assert.Equal(t, r.Impedance(0), g.Impedance(0))
	g = group(types.ModeParallel, c, r)
	assert.Equal(t, r.Impedance(0), g.Impedance(0))

	// 短路支路使整体短路
	g = group(types.ModeParallel, res(t, 100), res(t, 0))
	assert.Equal(t, maths.Zero, g.Impedance(0))

	// 三个支路按顺序两两合并
	g = group(types.ModeParallel, res(t, 60), res(t, 30), res(t, 20))
	assert.InDelta(t, 10, g.Impedance(0).Abs(), 1e-12)
}

func TestEmptyCompositeIsOpen(t *testing.T) {
	for _, mode := range []types.Mode{types.ModeSeries, types.ModeParallel} {
		g := group(mode)
		assert.Equal(t, types.DefaultThresholds().Open(), g.Impedance(50))
		g.Distribute(10, 1, 0)
		assert.Equal(t, 10.0, g.Voltage())
		assert.Equal(t, 1.0, g.Current())
	}
}

func TestResonance(t *testing.T) {
	// 谐振频率 f = 1/(2π√(LC))，理想 LC 并联分母接近零
	l := mustNew(t, inductor.Type, 1e-3)
	c := mustNew(t, capacitor.Type, 1e-6)
	g := group(types.ModeSeries, l, c)
	z := g.Impedance(5032.92)
	assert.True(t, z.IsFinite())
	assert.InDelta(t, inductor.WireResistance, z.Abs(), 0.05)
}

func TestDistributeSeries(t *testing.T) {
	r1, r2 := res(t, 100), res(t, 300)
	g := group(types.ModeSeries, r1, r2)
	i := 10 / g.Impedance(0).Abs()
	g.Distribute(10, i, 0)

	assert.Equal(t, i, r1.Base().Current())
	assert.Equal(t, i, r2.Base().Current())
	assert.InDelta(t, 2.5, r1.Base().Voltage(), 1e-12)
	assert.InDelta(t, 7.5, r2.Base().Voltage(), 1e-12)
}

func TestDistributeSeriesOpen(t *testing.T) {
	r := res(t, 100)
	c1 := mustNew(t, capacitor.Type, 1e-6)
	c2 := mustNew(t, capacitor.Type, 1e-6)
	g := group(types.ModeSeries, r, c1, c2)
	g.Distribute(12, 0, 0)

	// 开路处平分全部电压
	assert.Equal(t, 0.0, r.Base().Voltage())
	assert.Equal(t, 6.0, c1.Base().Voltage())
	assert.Equal(t, 6.0, c2.Base().Voltage())
}

func TestDistributeParallel(t *testing.T) {
	r1, r2 := res(t, 100), res(t, 25)
	c := mustNew(t, capacitor.Type, 1e-6)
	g := group(types.ModeParallel, r1, r2, c)
	g.Distribute(10, 0.5, 0)

	for _, e := range []types.Element{r1, r2, c} {
		assert.Equal(t, 10.0, e.Base().Voltage())
	}
	assert.Equal(t, 0.1, r1.Base().Current())
	assert.Equal(t, 0.4, r2.Base().Current())
	assert.Equal(t, 0.0, c.Base().Current())
}

func TestDistributeParallelShort(t *testing.T) {
	short, r := res(t, 0), res(t, 100)
	g := group(types.ModeParallel, short, r)
	g.Distribute(0, 3, 0)

	// 父节点短路，短路支路承担全部电流
	assert.Equal(t, 3.0, short.Base().Current())
	assert.Equal(t, 0.0, r.Base().Current())
}

func TestDistributeNested(t *testing.T) {
	// 100 串联 (200 并联 200)，共 200Ω
	a, b, c := res(t, 100), res(t, 200), res(t, 200)
	inner := group(types.ModeParallel, b, c)
	root := group(types.ModeSeries, a, inner)
	z := root.Impedance(0)
	require.Equal(t, 200.0, z.Abs())

	root.Distribute(20, 20/z.Abs(), 0)
	assert.InDelta(t, 10, a.Base().Voltage(), 1e-12)
	assert.InDelta(t, 10, inner.Voltage(), 1e-12)
	assert.InDelta(t, 0.05, b.Base().Current(), 1e-12)
	assert.InDelta(t, 0.05, c.Base().Current(), 1e-12)
}

func TestDistributeIdempotent(t *testing.T) {
	l := mustNew(t, inductor.Type, 0.2)
	c := mustNew(t, capacitor.Type, 4.7e-6)
	inner := group(types.ModeParallel, res(t, 330), l, c)
	root := group(types.ModeSeries, res(t, 47), inner, res(t, 10))
	leaves := func() [][2]float64 {
		var out [][2]float64
		root.Walk(func(e types.Element, _ int) {
			out = append(out, [2]float64{e.Base().Voltage(), e.Base().Current()})
		})
		return out
	}
	run := func() [][2]float64 {
		z := root.Impedance(60)
		root.Distribute(120, 120/z.Abs(), 60)
		return leaves()
	}
	first := run()
	assert.Equal(t, first, run())
}

func TestCompositeCloneAndFind(t *testing.T) {
	a, b := res(t, 1), res(t, 2)
	inner := group(types.ModeParallel, a, b)
	root := group(types.ModeSeries, inner, res(t, 3))

	assert.Same(t, b, root.Find(b.Base().ID))
	assert.Nil(t, root.Find(types.UnknownID))
	assert.Len(t, root.IDs(), 5)

	cp := root.Clone().(*types.Composite)
	assert.Equal(t, root.Impedance(0), cp.Impedance(0))
	found := cp.Find(b.Base().ID)
	require.NotNil(t, found)
	assert.NotSame(t, b, found)

	depths := map[types.ElementID]int{}
	root.Walk(func(e types.Element, depth int) { depths[e.Base().ID] = depth })
	assert.Equal(t, 2, depths[a.Base().ID])
	assert.Equal(t, 1, depths[inner.ID])
}

func TestParseMode(t *testing.T) {
	m, err := types.ParseMode("Parallel")
	require.NoError(t, err)
	assert.Equal(t, types.ModeParallel, m)
	m, err = types.ParseMode("s")
	require.NoError(t, err)
	assert.Equal(t, types.ModeSeries, m)
	_, err = types.ParseMode("mesh")
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}
