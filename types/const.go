package types

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"circuitlab/maths"
)

// 特殊ID
const (
	RootID    ElementID = -1 // 电路根组合
	LoadID    ElementID = -2 // 仿真时临时生成的负载组合
	UnknownID ElementID = -3 // 无效元件
)

// 环境变量名
const (
	EnvEpsilon    = "CIRCUIT_EPSILON"
	EnvWeakRatio  = "CIRCUIT_WEAK_RATIO"
	EnvLitRatio   = "CIRCUIT_LIT_RATIO"
	EnvBurntRatio = "CIRCUIT_BURNT_RATIO"
	EnvLatchBurnt = "CIRCUIT_LATCH_BURNT"
	EnvStrictFreq = "CIRCUIT_STRICT_FREQUENCY"
)

// Thresholds 仿真阈值配置，组合元件和仿真共用
type Thresholds struct {
	Epsilon         float64 // 短路判定阈值，阻抗模小于此值视为短路
	OpenMagnitude   float64 // 开路阻抗约定值
	OpenThreshold   float64 // 开路判定阈值，阻抗模不小于此值视为开路
	WeakRatio       float64 // 微亮功率比例下限
	LitRatio        float64 // 正常点亮功率比例下限
	BurntRatio      float64 // 烧毁功率比例(超过即烧毁)
	LatchBurnt      bool    // 烧毁后保持，直到更换灯泡
	StrictFrequency bool    // 负频率作为错误返回，否则按直流处理
}

// DefaultThresholds 默认阈值
func DefaultThresholds() Thresholds {
	return Thresholds{
		Epsilon:         1e-9,
		OpenMagnitude:   maths.OpenMagnitude,
		OpenThreshold:   1e8,
		WeakRatio:       0.2,
		LitRatio:        0.8,
		BurntRatio:      1.5,
		LatchBurnt:      true,
		StrictFrequency: true,
	}
}

// Validate 校验阈值
func (th Thresholds) Validate() error {
	for _, v := range []float64{th.Epsilon, th.OpenMagnitude, th.OpenThreshold, th.WeakRatio, th.LitRatio, th.BurntRatio} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: 阈值必须为有限正数: %+v", ErrInvalidParameter, th)
		}
	}
	if th.OpenThreshold > th.OpenMagnitude || th.Epsilon >= th.OpenThreshold {
		return fmt.Errorf("%w: 需要 Epsilon < OpenThreshold <= OpenMagnitude", ErrInvalidParameter)
	}
	if !(th.WeakRatio < th.LitRatio && th.LitRatio < th.BurntRatio) {
		return fmt.Errorf("%w: 需要 WeakRatio < LitRatio < BurntRatio", ErrInvalidParameter)
	}
	return nil
}

// Open 开路阻抗
func (th Thresholds) Open() maths.Complex {
	return maths.Complex{Real: th.OpenMagnitude}
}

// IsOpen 阻抗模是否达到开路
func (th Thresholds) IsOpen(magnitude float64) bool {
	return magnitude >= th.OpenThreshold
}

// IsShort 阻抗模是否短路
func (th Thresholds) IsShort(magnitude float64) bool {
	return magnitude < th.Epsilon
}

// Parallel 两支路并联，开路支路不参与合并
func (th Thresholds) Parallel(a, b maths.Complex) maths.Complex {
	switch {
	case th.IsOpen(a.Abs()):
		return b
	case th.IsOpen(b.Abs()):
		return a
	}
	return maths.Parallel(a, b, th.Epsilon)
}

// ThresholdsFromEnv 从环境变量覆盖默认阈值
func ThresholdsFromEnv(th Thresholds) (Thresholds, error) {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvEpsilon, &th.Epsilon},
		{EnvWeakRatio, &th.WeakRatio},
		{EnvLitRatio, &th.LitRatio},
		{EnvBurntRatio, &th.BurntRatio},
	}
	for _, f := range floats {
		if s, ok := os.LookupEnv(f.key); ok && s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return th, fmt.Errorf("%w: %s=%q", ErrInvalidParameter, f.key, s)
			}
			*f.dst = v
		}
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{EnvLatchBurnt, &th.LatchBurnt},
		{EnvStrictFreq, &th.StrictFrequency},
	}
	for _, b := range bools {
		if s, ok := os.LookupEnv(b.key); ok && s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return th, fmt.Errorf("%w: %s=%q", ErrInvalidParameter, b.key, s)
			}
			*b.dst = v
		}
	}
	return th, th.Validate()
}
