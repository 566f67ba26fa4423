// Package sweep 频率扫描：在一组频率点上重复仿真并记录结果
package sweep

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"circuitlab"
	"circuitlab/simulate"
	"circuitlab/types"
)

// Scale 频率点分布方式
type Scale uint8

// 分布方式
const (
	ScaleLinear Scale = iota // 线性，Points 为总点数
	ScaleDecade              // 按十倍频程，Points 为每十倍频程点数
	ScaleOctave              // 按倍频程，Points 为每倍频程点数
)

// String 名称
func (s Scale) String() string {
	switch s {
	case ScaleLinear:
		return "lin"
	case ScaleDecade:
		return "dec"
	case ScaleOctave:
		return "oct"
	}
	return "unknown"
}

// ParseScale 解析分布方式
func ParseScale(s string) (Scale, error) {
	switch strings.ToLower(s) {
	case "lin", "linear":
		return ScaleLinear, nil
	case "dec", "decade":
		return ScaleDecade, nil
	case "oct", "octave":
		return ScaleOctave, nil
	}
	return 0, fmt.Errorf("%w: 分布方式 %q", types.ErrInvalidParameter, s)
}

// MaxPoints 单次扫描的频率点上限
const MaxPoints = 10000

// Spec 扫描参数
type Spec struct {
	Start  float64 // 起始频率
	Stop   float64 // 终止频率
	Points int     // 点数
	Scale  Scale   // 分布方式
}

// Validate 校验参数
func (s Spec) Validate() error {
	switch {
	case s.Points < 1 || s.Points > MaxPoints:
		return fmt.Errorf("%w: 点数 %d 超出 1-%d", types.ErrInvalidParameter, s.Points, MaxPoints)
	case math.IsNaN(s.Start) || math.IsNaN(s.Stop) || math.IsInf(s.Stop, 0):
		return fmt.Errorf("%w: 频率范围 %v-%v", types.ErrInvalidFrequency, s.Start, s.Stop)
	case s.Start < 0 || s.Stop < s.Start:
		return fmt.Errorf("%w: 频率范围 %v-%v", types.ErrInvalidFrequency, s.Start, s.Stop)
	case s.Scale != ScaleLinear && s.Start == 0:
		return fmt.Errorf("%w: 对数分布的起始频率必须大于0", types.ErrInvalidFrequency)
	}
	return nil
}

// Frequencies 生成频率点
func (s Spec) Frequencies() ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Start == s.Stop {
		return []float64{s.Start}, nil
	}
	var span float64
	switch s.Scale {
	case ScaleLinear:
		return floats.Span(make([]float64, max(s.Points, 2)), s.Start, s.Stop), nil
	case ScaleDecade:
		span = math.Log10(s.Stop / s.Start)
	case ScaleOctave:
		span = math.Log2(s.Stop / s.Start)
	default:
		return nil, fmt.Errorf("%w: 分布方式 %d", types.ErrInvalidParameter, s.Scale)
	}
	// 整数倍频程时不多出一个点
	n := math.Ceil(span*float64(s.Points)-1e-9) + 1
	if n > MaxPoints {
		return nil, fmt.Errorf("%w: 共 %v 个频率点，超出 %d", types.ErrInvalidParameter, n, MaxPoints)
	}
	return floats.LogSpan(make([]float64, max(int(n), 2)), s.Start, s.Stop), nil
}

// Point 单个频率点的仿真结果
type Point struct {
	Frequency  float64      // 频率
	Impedance  float64      // 总阻抗模
	Phase      float64      // 总阻抗相角(rad)
	Current    float64      // 总电流
	PowerRatio float64      // 指示灯功率比例
	Status     types.Status // 指示灯状态
}

// Run 在电路副本上扫描，不改变原电路
// 扫描时不保持烧毁状态，每个频率点独立判定
func Run(cir *circuitlab.Circuit, o *simulate.Orchestrator, coupling simulate.Coupling, spec Spec) ([]Point, error) {
	freqs, err := spec.Frequencies()
	if err != nil {
		return nil, err
	}
	src, _, _, err := cir.Split()
	if err != nil {
		return nil, err
	}
	th := o.Thresholds
	th.LatchBurnt = false
	local, err := simulate.NewOrchestrator(th)
	if err != nil {
		return nil, err
	}
	work := cir.Clone()
	points := make([]Point, 0, len(freqs))
	for _, f := range freqs {
		res, err := work.SimulateSource(local, coupling, simulate.Source{Voltage: src.SourceVoltage(), Frequency: f})
		if err != nil {
			return points, fmt.Errorf("频率 %v: %w", f, err)
		}
		points = append(points, Point{
			Frequency:  res.Frequency,
			Impedance:  res.TotalImpedance.Abs(),
			Phase:      res.TotalImpedance.Phase(),
			Current:    res.TotalCurrent,
			PowerRatio: res.PowerRatio,
			Status:     res.Status,
		})
	}
	return points, nil
}

// Peak 指示灯功率比例最大的点
func Peak(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	ratios := make([]float64, len(points))
	for i, p := range points {
		ratios[i] = p.PowerRatio
	}
	return points[floats.MaxIdx(ratios)], true
}
