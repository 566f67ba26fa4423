package vcc

import (
	"circuitlab/maths"
	"circuitlab/types"
)

// Type 元件类型
const Type types.ElementType = 6

func init() {
	types.ElementRegister(Type, "V", Config{})
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
		"Voltage":   220, // 电压(V)
		"Frequency": 0,   // 频率(Hz)，0为直流
	}
}

// ValueKeys 参数顺序
func (Config) ValueKeys() []string { return []string{"Voltage", "Frequency"} }

// GetPostCount 获取引脚数量
func (Config) GetPostCount() int { return 2 }

// Base 理想电压源，只提供仿真输入，不参与阻抗聚合
type Base struct {
	*types.ElementBase
	Voltage   float64 // 电压(V)
	Frequency float64 // 频率(Hz)
}

// Type 类型
func (base *Base) Type() types.ElementType { return Type }

// Reset 元件值初始化
func (base *Base) Reset() error {
	v, err := base.CheckValue("Voltage", 0, true)
	if err != nil {
		return err
	}
	f, err := base.CheckValue("Frequency", 0, true)
	if err != nil {
		return err
	}
	base.Voltage, base.Frequency = v, f
	return nil
}

// Impedance 理想电源内阻为零
func (base *Base) Impedance(frequency float64) maths.Complex { return maths.Zero }

// DCResistance 实部电阻
func (base *Base) DCResistance() float64 { return 0 }

// SourceVoltage 电源电压
func (base *Base) SourceVoltage() float64 { return base.Voltage }

// SourceFrequency 电源频率
func (base *Base) SourceFrequency() float64 { return base.Frequency }

// Clone 深拷贝
func (base *Base) Clone() types.Element {
	c := *base
	c.ElementBase = base.ElementBase.Clone()
	return &c
}
