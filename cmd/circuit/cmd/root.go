package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"circuitlab/simulate"
	"circuitlab/types"
)

var (
	// 全局参数
	verbose bool
	noColor bool
	envFile string

	// 由环境变量得到的阈值和仿真调度
	thresholds   types.Thresholds
	orchestrator *simulate.Orchestrator
)

var rootCmd = &cobra.Command{
	Use:   "circuit",
	Short: "串并联电路仿真",
	Long: `按串联/并联组合计算电路阻抗，把电压电流分配到每个元件并判定指示灯状态。

阈值可以通过环境变量或 .env 文件覆盖:
  CIRCUIT_EPSILON  CIRCUIT_WEAK_RATIO  CIRCUIT_LIT_RATIO  CIRCUIT_BURNT_RATIO
  CIRCUIT_LATCH_BURNT  CIRCUIT_STRICT_FREQUENCY

Examples:
  circuit run R=100                              # 100Ω 与灯泡串联，220V 直流
  circuit run R=100 R=100 --group parallel       # 两个电阻并联后与灯泡串联
  circuit sweep L=0.1 C=10u --start 10 --stop 1k # 频率扫描
  circuit script demo.cir                        # 执行脚本`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute 执行命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("错误: %v", err))
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("[circuit] ")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出每个元件的电压电流")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "关闭彩色输出")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "阈值配置文件")
}

// setup 加载配置，文件不存在时只使用环境变量
func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("加载 %s: %w", envFile, err)
		}
	} else if verbose {
		log.Println("已加载配置:", envFile)
	}
	th, err := types.ThresholdsFromEnv(types.DefaultThresholds())
	if err != nil {
		return err
	}
	o, err := simulate.NewOrchestrator(th)
	if err != nil {
		return err
	}
	thresholds, orchestrator = th, o
	if verbose {
		log.Printf("阈值: %+v", th)
	}
	return nil
}
