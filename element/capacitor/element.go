package capacitor

import (
	"math"

	"circuitlab/maths"
	"circuitlab/types"
)

// Type 元件类型
const Type types.ElementType = 4

func init() {
	types.ElementRegister(Type, "C", Config{})
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
		"Capacitance": 1e-5, // 电容值(Farad)，默认10μF
	}
}

// ValueKeys 参数顺序
func (Config) ValueKeys() []string { return []string{"Capacitance"} }

// GetPostCount 获取引脚数量
func (Config) GetPostCount() int { return 2 }

// Base 元件实现
type Base struct {
	*types.ElementBase
	Capacitance float64 // 电容值(F)
}

// Type 类型
func (base *Base) Type() types.ElementType { return Type }

// Reset 元件值初始化
func (base *Base) Reset() error {
	c, err := base.CheckValue("Capacitance", 0, false)
	if err != nil {
		return err
	}
	base.Capacitance = c
	return nil
}

// Impedance 容抗 -1/(ωC)，直流时为开路，幅值不超过开路约定值
func (base *Base) Impedance(frequency float64) maths.Complex {
	w := types.Omega(frequency)
	if w < maths.Epsilon {
		return maths.Complex{Imag: -maths.OpenMagnitude}
	}
	return maths.Complex{Imag: -math.Min(1/(w*base.Capacitance), maths.OpenMagnitude)}
}

// DCResistance 理想电容没有实部电阻
func (base *Base) DCResistance() float64 { return 0 }

// Clone 深拷贝
func (base *Base) Clone() types.Element {
	c := *base
	c.ElementBase = base.ElementBase.Clone()
	return &c
}
