package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"circuitlab/sweep"
	"circuitlab/types"
	"circuitlab/utils"
)

var (
	sweepStart  string
	sweepStop   string
	sweepPoints int
	sweepScale  string
	sweepHTML   string
	sweepPlot   string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [TYPE=VALUE...]",
	Short: "频率扫描",
	Long: `在一组频率点上重复仿真，输出每个频率点的阻抗、电流和灯泡状态。

Examples:
  circuit sweep L=0.1 C=10u --start 10 --stop 1k
  circuit sweep L=0.1 C=10u --scale lin --points 50 --start 100 --stop 200
  circuit sweep R=100 C=1u --html sweep.html --plot sweep.png`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	circuitFlags(sweepCmd)

	sweepCmd.Flags().StringVar(&sweepStart, "start", "10", "起始频率(Hz)")
	sweepCmd.Flags().StringVar(&sweepStop, "stop", "10k", "终止频率(Hz)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "点数(dec/oct 时为每十倍频程/倍频程点数)")
	sweepCmd.Flags().StringVar(&sweepScale, "scale", "dec", "分布方式(lin/dec/oct)")
	sweepCmd.Flags().StringVar(&sweepHTML, "html", "", "输出网页曲线")
	sweepCmd.Flags().StringVar(&sweepPlot, "plot", "", "输出曲线图片(png/svg/pdf)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	values, err := utils.NetList{sweepStart, sweepStop}.Floats(0)
	if err != nil {
		return err
	}
	scale, err := sweep.ParseScale(sweepScale)
	if err != nil {
		return err
	}
	cir, coupling, err := buildCircuit(args)
	if err != nil {
		return err
	}
	spec := sweep.Spec{Start: values[0], Stop: values[1], Points: sweepPoints, Scale: scale}
	points, err := sweep.Run(cir, orchestrator, coupling, spec)
	if err != nil {
		return err
	}
	printPoints(cmd.OutOrStdout(), points)

	if sweepHTML != "" {
		f, err := os.Create(sweepHTML)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := sweep.Render(f, points); err != nil {
			return err
		}
		log.Println("已输出网页:", sweepHTML)
	}
	if sweepPlot != "" {
		if err := sweep.SavePlot(points, thresholds, sweepPlot); err != nil {
			return err
		}
		log.Println("已输出图片:", sweepPlot)
	}
	return nil
}

// printPoints 输出扫描表格
func printPoints(w io.Writer, points []sweep.Point) {
	fmt.Fprintf(w, "%10s %12s %10s %10s %8s  %s\n", "Hz", "|Z|", "∠rad", "A", "%", "状态")
	for _, p := range points {
		fmt.Fprintf(w, "%10s %12s %10.3f %10s %8.1f  %s\n",
			utils.FormatValue(p.Frequency), utils.FormatValue(p.Impedance), p.Phase,
			utils.FormatValue(p.Current), p.PowerRatio*100, statusColor(p.Status).Sprint(p.Status))
	}
	if peak, ok := sweep.Peak(points); ok && peak.Status != types.StatusOff {
		fmt.Fprintf(w, "峰值 %sHz %.1f%%\n", utils.FormatValue(peak.Frequency), peak.PowerRatio*100)
	}
}
