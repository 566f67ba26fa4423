package inductor

import (
	"circuitlab/maths"
	"circuitlab/types"
)

// Type 元件类型
const Type types.ElementType = 5

// WireResistance 线圈导线电阻(Ω)
const WireResistance = 0.01

func init() {
	types.ElementRegister(Type, "L", Config{})
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
		"Inductance": 1e-3, // 电感值(H)，默认1mH
	}
}

// ValueKeys 参数顺序
func (Config) ValueKeys() []string { return []string{"Inductance"} }

// GetPostCount 获取引脚数量
func (Config) GetPostCount() int { return 2 }

// Base 元件实现
type Base struct {
	*types.ElementBase
	Inductance float64 // 电感值(H)
}

// Type 类型
func (base *Base) Type() types.ElementType { return Type }

// Reset 元件值初始化
func (base *Base) Reset() error {
	l, err := base.CheckValue("Inductance", 0, true)
	if err != nil {
		return err
	}
	base.Inductance = l
	return nil
}

// Impedance 导线电阻串联感抗 ωL
func (base *Base) Impedance(frequency float64) maths.Complex {
	return maths.Complex{Real: WireResistance, Imag: types.Omega(frequency) * base.Inductance}
}

// DCResistance 导线电阻
func (base *Base) DCResistance() float64 { return WireResistance }

// Clone 深拷贝
func (base *Base) Clone() types.Element {
	c := *base
	c.ElementBase = base.ElementBase.Clone()
	return &c
}
