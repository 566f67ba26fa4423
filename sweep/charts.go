package sweep

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"circuitlab/utils"
)

// newLine 扫描曲线的公共配置
func newLine(title, subtitle string, labels []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "Hz",
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(true),
	)
	line.SetXAxis(labels)
	return line
}

// lineData 提取一列数据
func lineData(points []Point, fn func(p Point) float64) []opts.LineData {
	items := make([]opts.LineData, len(points))
	for i, p := range points {
		items[i] = opts.LineData{Value: fn(p)}
	}
	return items
}

// Render 输出扫描结果网页
func Render(w io.Writer, points []Point) error {
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = utils.FormatValue(p.Frequency)
	}

	// 阻抗
	lineZ := newLine("阻抗曲线", "总阻抗随频率变化曲线", labels)
	lineZ.AddSeries("|Z|(Ω)", lineData(points, func(p Point) float64 { return p.Impedance }))
	lineZ.AddSeries("相角(rad)", lineData(points, func(p Point) float64 { return p.Phase }))

	// 电流
	lineI := newLine("电流曲线", "总电流随频率变化曲线", labels)
	lineI.AddSeries("电流(A)", lineData(points, func(p Point) float64 { return p.Current }))

	// 指示灯
	lineP := newLine("指示灯曲线", "指示灯功率比例随频率变化曲线", labels)
	lineP.AddSeries("功率比例(%)", lineData(points, func(p Point) float64 { return p.PowerRatio * 100 }))

	// 构建界面
	page := components.NewPage()
	page.AddCharts(
		lineZ,
		lineI,
		lineP,
	)
	return page.Render(w)
}
