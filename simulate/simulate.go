// Package simulate 根据电源参数计算总电流，按拓扑分配到各元件并判定指示灯状态。
//
// 一次仿真总是先自底向上聚合阻抗，再自顶向下分配电压电流，最后读取指示灯的分配结果判定状态。
// 相同拓扑和相同电源参数下重复仿真得到完全相同的结果。
package simulate

import (
	"fmt"
	"math"

	"circuitlab/maths"
	"circuitlab/types"
)

// Coupling 负载与指示灯的连接方式
type Coupling uint8

// 连接方式
const (
	SeriesWithIndicator   Coupling = iota // 负载与指示灯串联
	ParallelWithIndicator                 // 负载与指示灯并联
	EmbeddedIndicator                     // 指示灯已组合在负载内部，负载直接接在电源两端
)

// String 名称
func (c Coupling) String() string {
	switch c {
	case SeriesWithIndicator:
		return "series"
	case ParallelWithIndicator:
		return "parallel"
	case EmbeddedIndicator:
		return "embedded"
	}
	return "unknown"
}

// ParseCoupling 解析连接方式
func ParseCoupling(s string) (Coupling, error) {
	m, err := types.ParseMode(s)
	if err != nil {
		return 0, err
	}
	if m == types.ModeParallel {
		return ParallelWithIndicator, nil
	}
	return SeriesWithIndicator, nil
}

// Source 电源参数
type Source struct {
	Voltage   float64 // 电压(V)
	Frequency float64 // 频率(Hz)
}

// Result 仿真结果
type Result struct {
	Frequency      float64       // 实际使用的频率
	TotalImpedance maths.Complex // 电源看到的总阻抗
	TotalCurrent   float64       // 总电流
	RootVoltage    float64       // 负载电压
	RootCurrent    float64       // 负载电流
	IndicatorPower float64       // 指示灯实际功率
	PowerRatio     float64       // 指示灯功率与额定功率之比
	Status         types.Status  // 指示灯状态
}

// Lit 指示灯是否发光
func (r Result) Lit() bool { return r.Status.Lit() }

// Orchestrator 仿真调度
type Orchestrator struct {
	Thresholds types.Thresholds
}

// NewOrchestrator 创建调度，阈值无效时返回错误
func NewOrchestrator(th types.Thresholds) (*Orchestrator, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{Thresholds: th}, nil
}

// frequency 校验频率，非严格模式下负频率按直流处理
func (o *Orchestrator) frequency(f float64) (float64, error) {
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, fmt.Errorf("%w: %v", types.ErrInvalidFrequency, f)
	case f < 0 && o.Thresholds.StrictFrequency:
		return 0, fmt.Errorf("%w: 负频率 %v", types.ErrInvalidFrequency, f)
	case f < 0:
		return 0, nil
	}
	return f, nil
}

// divide 电压除以阻抗模，短路或开路时电流为零
func (o *Orchestrator) divide(voltage, magnitude float64) float64 {
	th := o.Thresholds
	if th.IsShort(magnitude) || th.IsOpen(magnitude) {
		return 0
	}
	return voltage / magnitude
}

// Run 执行一次仿真，root 为空时按开路处理
func (o *Orchestrator) Run(src Source, root types.Element, indicator types.Indicator, coupling Coupling) (Result, error) {
	if indicator == nil {
		return Result{}, types.ErrNoIndicator
	}
	if math.IsNaN(src.Voltage) || math.IsInf(src.Voltage, 0) {
		return Result{}, fmt.Errorf("%w: 电压 %v", types.ErrInvalidParameter, src.Voltage)
	}
	f, err := o.frequency(src.Frequency)
	if err != nil {
		return Result{}, err
	}
	th := o.Thresholds
	if coupling == EmbeddedIndicator {
		return o.embedded(src.Voltage, f, root, indicator)
	}

	// 自底向上聚合
	zRoot := th.Open()
	if root != nil {
		zRoot = root.Impedance(f)
	}
	zInd := indicator.Impedance(f)
	magRoot, magInd := zRoot.Abs(), zInd.Abs()

	res := Result{Frequency: f}
	var iInd float64
	switch coupling {
	case SeriesWithIndicator:
		res.TotalImpedance = zRoot.Add(zInd)
		if mag := res.TotalImpedance.Abs(); mag > th.Epsilon {
			res.TotalCurrent = src.Voltage / mag
		}
		iInd = res.TotalCurrent
		res.RootCurrent = res.TotalCurrent
		res.RootVoltage = res.TotalCurrent * magRoot
	case ParallelWithIndicator:
		res.TotalImpedance = th.Parallel(zRoot, zInd)
		if mag := res.TotalImpedance.Abs(); mag > th.Epsilon {
			res.TotalCurrent = src.Voltage / mag
		}
		iInd = o.divide(src.Voltage, magInd)
		res.RootVoltage = src.Voltage
		switch {
		case th.IsShort(magRoot):
			res.RootCurrent = res.TotalCurrent
		default:
			res.RootCurrent = o.divide(src.Voltage, magRoot)
		}
	default:
		return Result{}, fmt.Errorf("%w: 连接方式 %d", types.ErrInvalidParameter, coupling)
	}

	// 自顶向下分配
	if root != nil {
		root.Distribute(res.RootVoltage, res.RootCurrent, f)
	}
	indicator.Distribute(iInd*magInd, iInd, f)

	o.classify(&res, indicator, iInd)
	return res, nil
}

// embedded 指示灯位于负载树内：负载承受全部电源电压，指示灯的电流由分配结果读取
func (o *Orchestrator) embedded(voltage, f float64, root types.Element, indicator types.Indicator) (Result, error) {
	if types.Search(root, func(e types.Element) bool { return e == indicator }) == nil {
		return Result{}, fmt.Errorf("%w: 指示灯 %d 不在负载内", types.ErrNoIndicator, indicator.Base().ID)
	}
	th := o.Thresholds
	res := Result{Frequency: f, TotalImpedance: root.Impedance(f), RootVoltage: voltage}
	if mag := res.TotalImpedance.Abs(); mag > th.Epsilon {
		res.TotalCurrent = voltage / mag
	}
	res.RootCurrent = res.TotalCurrent
	root.Distribute(res.RootVoltage, res.RootCurrent, f)
	o.classify(&res, indicator, indicator.Base().Current())
	return res, nil
}

// classify 判定指示灯状态并计算功率
func (o *Orchestrator) classify(res *Result, indicator types.Indicator, current float64) {
	res.Status = indicator.Classify(o.Thresholds)
	res.IndicatorPower = current * current * indicator.DCResistance()
	res.PowerRatio = res.IndicatorPower / indicator.RatedPower()
}
