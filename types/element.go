package types

import (
	"fmt"
	"image"
	"maps"
	"math"

	"circuitlab/maths"
)

// ElementID 元件ID
type ElementID int

// ValueMap 元件参数列表
type ValueMap map[string]float64

// Element 元件接口
type Element interface {
	Type() ElementType                              // 元件类型
	Base() *ElementBase                             // 基础数据
	Reset() error                                   // 由参数表刷新元件值
	Impedance(frequency float64) maths.Complex      // 指定频率下的阻抗，纯函数
	DCResistance() float64                          // 实部电阻，用于功率计算
	Distribute(voltage, current, frequency float64) // 写入分配结果
	Clone() Element                                 // 深拷贝
}

// ElementBase 元件基础数据
type ElementBase struct {
	ValueMap             // 元件参数
	ID       ElementID   // 元件ID
	Position image.Point // 元件位置，仅供界面使用
	Size     image.Point // 元件大小，仅供界面使用

	voltage   float64 // 最近一次分配的电压
	current   float64 // 最近一次分配的电流
	frequency float64 // 最近一次分配的频率
}

// Base 获取基础数据
func (base *ElementBase) Base() *ElementBase { return base }

// Voltage 最近一次仿真的电压
func (base *ElementBase) Voltage() float64 { return base.voltage }

// Current 最近一次仿真的电流
func (base *ElementBase) Current() float64 { return base.current }

// Frequency 最近一次仿真的频率
func (base *ElementBase) Frequency() float64 { return base.frequency }

// Distribute 保存分配结果，叶子元件只接受这一种仿真写入
func (base *ElementBase) Distribute(voltage, current, frequency float64) {
	base.voltage = voltage
	base.current = current
	base.frequency = frequency
}

// GetValue 获取参数
func (base *ElementBase) GetValue(key string) float64 {
	return base.ValueMap[key]
}

// SetKeyValue 设置参数，需要调用元件 Reset 生效
func (base *ElementBase) SetKeyValue(key string, value float64) {
	if base.ValueMap == nil {
		base.ValueMap = ValueMap{}
	}
	base.ValueMap[key] = value
}

// Clone 复制基础数据(包括仿真状态)
func (base *ElementBase) Clone() *ElementBase {
	c := *base
	c.ValueMap = maps.Clone(base.ValueMap)
	return &c
}

// CheckValue 参数校验，要求有限值且不小于 lower(inclusive 为假时要求大于)
func (base *ElementBase) CheckValue(key string, lower float64, inclusive bool) (float64, error) {
	v, ok := base.ValueMap[key]
	switch {
	case !ok:
		return 0, fmt.Errorf("%w: 缺少参数 %s", ErrInvalidParameter, key)
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, fmt.Errorf("%w: %s=%v", ErrInvalidParameter, key, v)
	case inclusive && v < lower, !inclusive && v <= lower:
		return 0, fmt.Errorf("%w: %s=%v 超出范围", ErrInvalidParameter, key, v)
	}
	return v, nil
}

// Omega 角频率，负频率按直流处理
func Omega(frequency float64) float64 {
	if !(frequency > 0) {
		return 0
	}
	return 2 * math.Pi * frequency
}

// Status 指示灯状态
type Status uint8

// 指示灯状态
const (
	StatusOff    Status = iota // 熄灭
	StatusWeak                 // 微亮
	StatusNormal               // 正常点亮
	StatusBurnt                // 烧毁
)

// String 状态名称
func (s Status) String() string {
	switch s {
	case StatusOff:
		return "OFF"
	case StatusWeak:
		return "WEAK"
	case StatusNormal:
		return "NORMAL"
	case StatusBurnt:
		return "BURNT"
	}
	return "Unknown"
}

// Lit 是否发光
func (s Status) Lit() bool {
	return s == StatusWeak || s == StatusNormal
}

// Indicator 指示元件(灯泡)能力
type Indicator interface {
	Element
	RatedPower() float64           // 额定功率
	Power() float64                // 最近一次仿真的实际功率
	Classify(th Thresholds) Status // 按功率比例判定状态
	Status() Status                // 最近一次判定结果
}

// PowerSource 电源能力
type PowerSource interface {
	Element
	SourceVoltage() float64   // 电源电压
	SourceFrequency() float64 // 电源频率
}

// AsIndicator 能力查询：指示元件
func AsIndicator(e Element) (Indicator, bool) {
	ind, ok := e.(Indicator)
	return ind, ok
}

// AsPowerSource 能力查询：电源
func AsPowerSource(e Element) (PowerSource, bool) {
	src, ok := e.(PowerSource)
	return src, ok
}
