package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"circuitlab"
	"circuitlab/element/bulb"
	"circuitlab/element/vcc"
	"circuitlab/simulate"
	"circuitlab/types"
	"circuitlab/utils"
)

// 电路参数，run 和 sweep 共用
var (
	voltage      float64
	frequency    float64
	ratedVoltage float64
	ratedPower   float64
	couplingName string
	groupName    string
)

// circuitFlags 注册电路参数
func circuitFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&voltage, "voltage", 220, "电源电压(V)")
	cmd.Flags().Float64Var(&frequency, "frequency", 0, "电源频率(Hz)，0为直流")
	cmd.Flags().Float64Var(&ratedVoltage, "rated-voltage", 220, "灯泡额定电压(V)")
	cmd.Flags().Float64Var(&ratedPower, "rated-power", 50, "灯泡额定功率(W)")
	cmd.Flags().StringVarP(&couplingName, "coupling", "c", "series", "负载与灯泡的连接方式(series/parallel)")
	cmd.Flags().StringVarP(&groupName, "group", "g", "series", "负载元件之间的连接方式(series/parallel)")
}

// buildCircuit 由 TYPE=VALUE 形式的参数创建电路，负载元件依次连接为一个组合
// TYPE 可以带编号，例如 R1=100，类型取字母前缀
func buildCircuit(args []string) (*circuitlab.Circuit, simulate.Coupling, error) {
	coupling, err := simulate.ParseCoupling(couplingName)
	if err != nil {
		return nil, 0, err
	}
	mode, err := types.ParseMode(groupName)
	if err != nil {
		return nil, 0, err
	}

	cir := circuitlab.NewCircuitWith(thresholds)
	if _, err := cir.NewElement(vcc.Type, voltage, frequency); err != nil {
		return nil, 0, err
	}
	if _, err := cir.NewElement(bulb.Type, ratedVoltage, ratedPower); err != nil {
		return nil, 0, err
	}

	var load types.ElementID
	for _, arg := range args {
		name, value, _ := strings.Cut(arg, "=")
		prefix, _ := utils.NetList{name}.SeparationPrick(0)
		et := types.GetNameType(prefix)
		if et == types.TypeUnknown || et == types.TypeComposite || et == vcc.Type || et == bulb.Type {
			return nil, 0, fmt.Errorf("%w: %s", types.ErrUnknownType, arg)
		}
		var params []float64
		if value != "" {
			if params, err = utils.NetList(strings.Split(value, ",")).Floats(0); err != nil {
				return nil, 0, fmt.Errorf("%w: %s: %v", types.ErrInvalidParameter, arg, err)
			}
		}
		e, err := cir.NewElement(et, params...)
		if err != nil {
			return nil, 0, err
		}
		if load == 0 {
			load = e.Base().ID
			continue
		}
		comp, err := cir.Connect(load, e.Base().ID, mode)
		if err != nil {
			return nil, 0, err
		}
		load = comp.ID
	}
	return cir, coupling, nil
}

// statusColor 状态颜色
func statusColor(s types.Status) *color.Color {
	switch s {
	case types.StatusWeak:
		return color.New(color.FgYellow)
	case types.StatusNormal:
		return color.New(color.FgGreen, color.Bold)
	case types.StatusBurnt:
		return color.New(color.FgRed, color.Bold)
	}
	return color.New(color.FgHiBlack)
}

// printResult 输出仿真结果
func printResult(w io.Writer, res simulate.Result) {
	bold := color.New(color.Bold)
	bold.Fprintln(w, "仿真结果")
	fmt.Fprintf(w, "  频率      %sHz\n", utils.FormatValue(res.Frequency))
	fmt.Fprintf(w, "  总阻抗    %sΩ ∠%.3frad\n", utils.FormatValue(res.TotalImpedance.Abs()), res.TotalImpedance.Phase())
	fmt.Fprintf(w, "  总电流    %sA\n", utils.FormatValue(res.TotalCurrent))
	fmt.Fprintf(w, "  灯泡功率  %sW (%.1f%%)\n", utils.FormatValue(res.IndicatorPower), res.PowerRatio*100)
	fmt.Fprintf(w, "  状态      %s\n", statusColor(res.Status).Sprint(res.Status))
}

// printElements 输出元件树，name 为nil时使用类型和ID
func printElements(w io.Writer, cir *circuitlab.Circuit, name func(id types.ElementID) string) {
	for _, top := range cir.Elements() {
		show := func(e types.Element, depth int) {
			base := e.Base()
			label := fmt.Sprintf("%s(%d)", e.Type(), base.ID)
			if name != nil {
				label = name(base.ID)
			}
			fmt.Fprintf(w, "  %s%-10s %10sV %10sA\n", strings.Repeat("  ", depth), label,
				utils.FormatValue(base.Voltage()), utils.FormatValue(base.Current()))
		}
		if c, ok := top.(*types.Composite); ok {
			c.Walk(show)
			continue
		}
		show(top, 0)
	}
}
