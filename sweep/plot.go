package sweep

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"circuitlab/types"
)

// 图片尺寸
const (
	PlotWidth  = 8 * vg.Inch
	PlotHeight = 5 * vg.Inch
)

// Plot 指示灯功率比例随频率变化的曲线，附带状态阈值线
// 默认字体没有中文字形，图中文字使用英文
func Plot(points []Point, th types.Thresholds) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: 没有扫描结果", types.ErrInvalidParameter)
	}
	p := plot.New()
	p.Title.Text = "Indicator power ratio"
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Power / rated (%)"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	logScale := points[0].Frequency > 0
	for i, pt := range points {
		xys[i].X = pt.Frequency
		xys[i].Y = pt.PowerRatio * 100
	}
	if logScale && points[len(points)-1].Frequency > points[0].Frequency*10 {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 0xc7, G: 0x19, B: 0x79, A: 0xff}
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("ratio", line)

	first, last := points[0].Frequency, points[len(points)-1].Frequency
	for _, level := range []struct {
		name  string
		ratio float64
		color color.Color
	}{
		{"weak", th.WeakRatio, color.RGBA{R: 0x19, G: 0x87, B: 0xc7, A: 0xff}},
		{"lit", th.LitRatio, color.RGBA{R: 0x19, G: 0xc7, B: 0x4b, A: 0xff}},
		{"burnt", th.BurntRatio, color.RGBA{R: 0xc7, G: 0x3b, B: 0x19, A: 0xff}},
	} {
		l, err := plotter.NewLine(plotter.XYs{{X: first, Y: level.ratio * 100}, {X: last, Y: level.ratio * 100}})
		if err != nil {
			return nil, err
		}
		l.Color = level.color
		l.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(l)
		p.Legend.Add(level.name, l)
	}
	p.Legend.Top = true
	return p, nil
}

// SavePlot 保存曲线图片，格式由文件扩展名决定
func SavePlot(points []Point, th types.Thresholds, file string) error {
	p, err := Plot(points, th)
	if err != nil {
		return err
	}
	return p.Save(PlotWidth, PlotHeight, file)
}

// WritePlot 按指定格式(png/svg/pdf)输出曲线图片
func WritePlot(w io.Writer, points []Point, th types.Thresholds, format string) error {
	p, err := Plot(points, th)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
