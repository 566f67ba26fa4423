package terminal

import (
	"circuitlab/maths"
	"circuitlab/types"
)

// Type 元件类型
const Type types.ElementType = 8

func init() {
	types.ElementRegister(Type, "T", Config{})
}

// Config 默认配置
type Config struct{}

// Init 初始化
func (Config) Init(value *types.ElementBase) (types.Element, error) {
	return &Base{ElementBase: value}, nil
}

// InitValue 端子没有参数
func (Config) InitValue() types.ValueMap { return types.ValueMap{} }

// ValueKeys 参数顺序
func (Config) ValueKeys() []string { return nil }

// GetPostCount 端子只有一个连接点
func (Config) GetPostCount() int { return 1 }

// Base 纯连接点
type Base struct {
	*types.ElementBase
}

// Type 类型
func (base *Base) Type() types.ElementType { return Type }

// Reset 元件值初始化
func (base *Base) Reset() error { return nil }

// Impedance 零阻抗
func (base *Base) Impedance(frequency float64) maths.Complex { return maths.Zero }

// DCResistance 实部电阻
func (base *Base) DCResistance() float64 { return 0 }

// Clone 深拷贝
func (base *Base) Clone() types.Element {
	return &Base{ElementBase: base.ElementBase.Clone()}
}
