package resistor

import (
	"circuitlab/maths"
	"circuitlab/types"
)

// Type 元件类型
const Type types.ElementType = 3

func init() {
	types.ElementRegister(Type, "R", Config{})
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
		"Resistance": 100, // 电阻值(Ω)
	}
}

// ValueKeys 参数顺序
func (Config) ValueKeys() []string { return []string{"Resistance"} }

// GetPostCount 获取引脚数量
func (Config) GetPostCount() int { return 2 }

// Base 元件实现
type Base struct {
	*types.ElementBase
	Resistance float64 // 电阻值(Ω)，允许为0表示导线
}

// Type 类型
func (base *Base) Type() types.ElementType { return Type }

// Reset 元件值初始化
func (base *Base) Reset() error {
	r, err := base.CheckValue("Resistance", 0, true)
	if err != nil {
		return err
	}
	base.Resistance = r
	return nil
}

// Impedance 纯电阻，与频率无关
func (base *Base) Impedance(frequency float64) maths.Complex {
	return maths.Complex{Real: base.Resistance}
}

// DCResistance 实部电阻
func (base *Base) DCResistance() float64 { return base.Resistance }

// Clone 深拷贝
func (base *Base) Clone() types.Element {
	c := *base
	c.ElementBase = base.ElementBase.Clone()
	return &c
}
