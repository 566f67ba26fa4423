package bulb

import (
	"circuitlab/maths"
	"circuitlab/types"
)

// Type 元件类型
const Type types.ElementType = 7

func init() {
	types.ElementRegister(Type, "B", Config{})
}

// Config 默认配置
type Config struct{}

// Init 初始化
func (Config) Init(value *types.ElementBase) (types.Element, error) {
	base := &Base{ElementBase: value}
	return base, base.Reset()
}

// InitValue 元件值
func (Config) InitValue() types.ValueMap {
	return types.ValueMap{
		"RatedVoltage": 220, // 额定电压(V)
		"RatedPower":   50,  // 额定功率(W)
	}
}

// ValueKeys 参数顺序
func (Config) ValueKeys() []string { return []string{"RatedVoltage", "RatedPower"} }

// GetPostCount 获取引脚数量
func (Config) GetPostCount() int { return 2 }

// Base 灯泡，按额定值折算为固定电阻
type Base struct {
	*types.ElementBase
	RatedVoltage float64 // 额定电压(V)
	Rated        float64 // 额定功率(W)

	resistance float64      // V²/P
	status     types.Status // 最近一次判定结果
	burnt      bool         // 已烧毁
}

// Type 类型
func (base *Base) Type() types.ElementType { return Type }

// Reset 元件值初始化，不影响烧毁状态
func (base *Base) Reset() error {
	v, err := base.CheckValue("RatedVoltage", 0, false)
	if err != nil {
		return err
	}
	p, err := base.CheckValue("RatedPower", 0, false)
	if err != nil {
		return err
	}
	base.RatedVoltage, base.Rated = v, p
	base.resistance = v * v / p
	return nil
}

// Impedance 固定电阻
func (base *Base) Impedance(frequency float64) maths.Complex {
	return maths.Complex{Real: base.resistance}
}

// DCResistance 实部电阻
func (base *Base) DCResistance() float64 { return base.resistance }

// RatedPower 额定功率
func (base *Base) RatedPower() float64 { return base.Rated }

// Power 最近一次仿真的实际功率 I²R
func (base *Base) Power() float64 {
	i := base.Current()
	return i * i * base.resistance
}

// Ratio 实际功率与额定功率之比
func (base *Base) Ratio() float64 {
	return base.Power() / base.Rated
}

// Classify 按功率比例判定状态
func (base *Base) Classify(th types.Thresholds) types.Status {
	if base.burnt && th.LatchBurnt {
		base.status = types.StatusBurnt
		return base.status
	}
	ratio := base.Ratio()
	switch {
	case ratio > th.BurntRatio:
		base.status = types.StatusBurnt
	case ratio >= th.LitRatio:
		base.status = types.StatusNormal
	case ratio >= th.WeakRatio:
		base.status = types.StatusWeak
	default:
		base.status = types.StatusOff
	}
	base.burnt = base.status == types.StatusBurnt
	return base.status
}

// Status 最近一次判定结果
func (base *Base) Status() types.Status { return base.status }

// Burnt 是否已烧毁
func (base *Base) Burnt() bool { return base.burnt }

// Replace 更换灯泡，清除烧毁状态
func (base *Base) Replace() {
	base.burnt = false
	base.status = types.StatusOff
}

// Clone 深拷贝
func (base *Base) Clone() types.Element {
	c := *base
	c.ElementBase = base.ElementBase.Clone()
	return &c
}
