package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"circuitlab"
	"circuitlab/script"
	"circuitlab/simulate"
	"circuitlab/sweep"
)

var scriptCmd = &cobra.Command{
	Use:   "script <file>",
	Short: "执行电路脚本",
	Long: `按顺序执行脚本中的语句，每条 run 和 sweep 输出一次结果。

  add <名称> <类型> [参数...]            添加元件，类型为 R C L V B T
  connect <a> <b> series|parallel [as <名称>]
  ungroup <名称> / remove <名称>
  set <名称> <参数...> / source <电压> [频率] / replace <灯泡>
  undo / redo
  run [series|parallel]
  sweep <起始> <终止> <点数> [lin|dec|oct]

Examples:
  circuit script demo.cir
  circuit script -v demo.cir`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	r, err := script.NewRunner(circuitlab.NewCircuitWith(thresholds), orchestrator)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	r.OnRun = func(res simulate.Result) {
		printResult(w, res)
		if verbose {
			printElements(w, r.Circuit(), r.Name)
		}
		fmt.Fprintln(w)
	}
	r.OnSweep = func(points []sweep.Point) {
		printPoints(w, points)
		fmt.Fprintln(w)
	}
	return r.RunFile(args[0])
}
