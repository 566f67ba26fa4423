package element_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "circuitlab/element"
	"circuitlab/element/bulb"
	"circuitlab/element/capacitor"
	"circuitlab/element/inductor"
	"circuitlab/element/resistor"
	"circuitlab/element/terminal"
	"circuitlab/element/vcc"
	"circuitlab/maths"
	"circuitlab/types"
)

func newElement(t *testing.T, et types.ElementType, params ...float64) types.Element {
	t.Helper()
	e, err := types.NewElement(et, 1, params...)
	require.NoError(t, err)
	return e
}

func TestRegistry(t *testing.T) {
	for name, et := range map[string]types.ElementType{
		"R": resistor.Type,
		"c": capacitor.Type,
		"L": inductor.Type,
		"V": vcc.Type,
		"b": bulb.Type,
		"T": terminal.Type,
	} {
		assert.Equal(t, et, types.GetNameType(name), name)
	}
	assert.Equal(t, types.TypeUnknown, types.GetNameType("X"))
	assert.Equal(t, 1, terminal.Type.GetPostCount())
	assert.Equal(t, 2, resistor.Type.GetPostCount())

	_, err := types.NewElement(types.ElementType(200), 1)
	assert.ErrorIs(t, err, types.ErrUnknownType)
	_, err = types.NewElement(resistor.Type, 1, 1, 2)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)

	assert.Panics(t, func() { types.ElementRegister(resistor.Type, "R2", resistor.Config{}) })
}

func TestResistor(t *testing.T) {
	e := newElement(t, resistor.Type, 100)
	for _, f := range []float64{0, 50, 1e6, -10} {
		assert.Equal(t, maths.NewComplex(100, 0), e.Impedance(f))
	}
	assert.Equal(t, 100.0, e.DCResistance())

	_, err := types.NewElement(resistor.Type, 2, -1)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
	_, err = types.NewElement(resistor.Type, 2, math.NaN())
	assert.ErrorIs(t, err, types.ErrInvalidParameter)

	// 修改参数后 Reset 生效
	e.Base().SetKeyValue("Resistance", 220)
	require.NoError(t, e.Reset())
	assert.Equal(t, 220.0, e.Impedance(0).Real)
}

func TestCapacitor(t *testing.T) {
	e := newElement(t, capacitor.Type, 1e-6)

	// 直流开路
	z := e.Impedance(0)
	assert.Equal(t, 0.0, z.Real)
	assert.Equal(t, -maths.OpenMagnitude, z.Imag)
	assert.Equal(t, z, e.Impedance(-50), "负频率按直流处理")

	// 50Hz: -1/(2π·50·1e-6) ≈ -3183.1
	z = e.Impedance(50)
	assert.InDelta(t, -1/(2*math.Pi*50*1e-6), z.Imag, 1e-9)
	assert.Equal(t, 0.0, e.DCResistance())

	_, err := types.NewElement(capacitor.Type, 2, 0)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

func TestInductor(t *testing.T) {
	e := newElement(t, inductor.Type, 0.1)
	assert.Equal(t, maths.NewComplex(inductor.WireResistance, 0), e.Impedance(0))

	z := e.Impedance(50)
	assert.Equal(t, inductor.WireResistance, z.Real)
	assert.InDelta(t, 2*math.Pi*50*0.1, z.Imag, 1e-12)
	assert.Equal(t, inductor.WireResistance, e.DCResistance())
}

func TestBulb(t *testing.T) {
	e := newElement(t, bulb.Type, 220, 50)
	assert.Equal(t, maths.NewComplex(968, 0), e.Impedance(0))
	assert.Equal(t, e.Impedance(0), e.Impedance(1e3))

	ind, ok := types.AsIndicator(e)
	require.True(t, ok)
	assert.Equal(t, 50.0, ind.RatedPower())

	_, ok = types.AsPowerSource(e)
	assert.False(t, ok)

	_, err := types.NewElement(bulb.Type, 2, 220, 0)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

func TestBulbClassify(t *testing.T) {
	th := types.DefaultThresholds()
	b := newElement(t, bulb.Type, 220, 50).(*bulb.Base)

	// 按额定电流的比例设置电流：功率比例为电流比例的平方
	rated := math.Sqrt(50.0 / 968.0)
	cases := []struct {
		ratio float64
		want  types.Status
	}{
		{0, types.StatusOff},
		{0.1, types.StatusOff},
		{0.5, types.StatusWeak},
		{0.82, types.StatusNormal},
		{1.0, types.StatusNormal},
		{1.45, types.StatusNormal},
	}
	for _, c := range cases {
		i := rated * math.Sqrt(c.ratio)
		b.Distribute(i*968, i, 0)
		assert.Equal(t, c.want, b.Classify(th), "ratio %v", c.ratio)
		assert.InDelta(t, c.ratio, b.Ratio(), 1e-9)
	}

	// 烧毁后保持
	i := rated * math.Sqrt(2)
	b.Distribute(i*968, i, 0)
	assert.Equal(t, types.StatusBurnt, b.Classify(th))
	assert.False(t, b.Status().Lit())
	b.Distribute(0, 0, 0)
	assert.Equal(t, types.StatusBurnt, b.Classify(th))
	assert.True(t, b.Burnt())

	// 更换后恢复
	b.Replace()
	assert.Equal(t, types.StatusOff, b.Classify(th))

	// 不保持时条件恢复即恢复
	th.LatchBurnt = false
	b.Distribute(i*968, i, 0)
	assert.Equal(t, types.StatusBurnt, b.Classify(th))
	i = rated
	b.Distribute(i*968, i, 0)
	assert.Equal(t, types.StatusNormal, b.Classify(th))
	assert.False(t, b.Burnt())
}

func TestPowerSource(t *testing.T) {
	e := newElement(t, vcc.Type, 12, 60)
	src, ok := types.AsPowerSource(e)
	require.True(t, ok)
	assert.Equal(t, 12.0, src.SourceVoltage())
	assert.Equal(t, 60.0, src.SourceFrequency())
	assert.Equal(t, maths.Zero, e.Impedance(60))

	_, err := types.NewElement(vcc.Type, 2, 12, -1)
	assert.ErrorIs(t, err, types.ErrInvalidParameter)
}

func TestTerminal(t *testing.T) {
	e := newElement(t, terminal.Type)
	assert.Equal(t, maths.Zero, e.Impedance(1e3))
	assert.Equal(t, terminal.Type, e.Type())
}

func TestCloneIsIndependent(t *testing.T) {
	e := newElement(t, resistor.Type, 10)
	e.Base().Position.X = 7
	e.Distribute(1, 0.1, 0)

	c := e.Clone()
	assert.Equal(t, e.Base().ID, c.Base().ID)
	assert.Equal(t, 7, c.Base().Position.X)
	assert.Equal(t, 0.1, c.Base().Current())

	c.Base().SetKeyValue("Resistance", 20)
	require.NoError(t, c.Reset())
	assert.Equal(t, 10.0, e.DCResistance())
	assert.Equal(t, 20.0, c.DCResistance())
}
