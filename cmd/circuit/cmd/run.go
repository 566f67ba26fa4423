package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [TYPE=VALUE...]",
	Short: "单次仿真",
	Long: `创建电源、灯泡和负载元件并执行一次仿真。
负载元件写作 TYPE=VALUE，多个参数用逗号分隔，例如 R=100、C=10u、L=0.1。

Examples:
  circuit run R=100
  circuit run R=100 --voltage 600
  circuit run R=100 R=100 --group parallel
  circuit run L=0.1 C=10u --frequency 159 -v`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	circuitFlags(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cir, coupling, err := buildCircuit(args)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("顶层元件 %d 个，连接方式 %s", cir.Len(), coupling)
	}
	res, err := cir.Simulate(orchestrator, coupling)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	printResult(w, res)
	if verbose {
		printElements(w, cir, nil)
	}
	return nil
}
