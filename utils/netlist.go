package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NetList 一行元件描述拆分后的字段
type NetList []string

// SeparationPrick 分离名称前缀和编号，例如 R12 -> ("R", 12)
func (value NetList) SeparationPrick(i int) (typeName string, id int) {
	nameStr := strings.ToUpper(value[i])
	for i, char := range nameStr {
		if char >= '0' && char <= '9' {
			typeName = nameStr[:i]
			id, _ = strconv.Atoi(nameStr[i:])
			break
		}
	}
	if typeName == "" {
		typeName = nameStr
	}
	return typeName, id
}

// Floats 从第 i 个字段开始全部解析为数值
func (value NetList) Floats(i int) ([]float64, error) {
	if i >= len(value) {
		return nil, nil
	}
	out := make([]float64, 0, len(value)-i)
	for _, s := range value[i:] {
		v, err := ParseValue(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// 工程后缀，按长度优先匹配
var suffixes = []struct {
	suffix string
	scale  float64
}{
	{"meg", 1e6},
	{"p", 1e-12},
	{"n", 1e-9},
	{"u", 1e-6},
	{"µ", 1e-6},
	{"m", 1e-3},
	{"k", 1e3},
	{"M", 1e6},
	{"G", 1e9},
}

// 单位后缀，解析时忽略
var units = []string{"ohm", "Ω", "hz", "Hz", "F", "H", "V", "W"}

// ParseValue 解析带工程后缀的数值，例如 4.7k、10u、2meg、50Hz
// m 表示毫，M 和 meg 表示兆
func ParseValue(s string) (float64, error) {
	str := strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(str, 64); err == nil {
		return checkFinite(s, v)
	}
	for _, u := range units {
		if rest, ok := strings.CutSuffix(str, u); ok && rest != "" {
			str = rest
			break
		}
	}
	scale := 1.0
	for _, sf := range suffixes {
		if rest, ok := strings.CutSuffix(str, sf.suffix); ok && rest != "" {
			str, scale = rest, sf.scale
			break
		}
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("无法解析数值 %q", s)
	}
	return checkFinite(s, v*scale)
}

func checkFinite(s string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("数值无效 %q", s)
	}
	return v, nil
}

// FormatValue 使用工程后缀格式化数值
func FormatValue(v float64) string {
	abs := math.Abs(v)
	switch {
	case v == 0 || math.IsNaN(v) || math.IsInf(v, 0):
		return strconv.FormatFloat(v, 'g', -1, 64)
	case abs >= 1e9:
		return strconv.FormatFloat(v/1e9, 'g', 4, 64) + "G"
	case abs >= 1e6:
		return strconv.FormatFloat(v/1e6, 'g', 4, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(v/1e3, 'g', 4, 64) + "k"
	case abs >= 1:
		return strconv.FormatFloat(v, 'g', 4, 64)
	case abs >= 1e-3:
		return strconv.FormatFloat(v*1e3, 'g', 4, 64) + "m"
	case abs >= 1e-6:
		return strconv.FormatFloat(v*1e6, 'g', 4, 64) + "u"
	case abs >= 1e-9:
		return strconv.FormatFloat(v*1e9, 'g', 4, 64) + "n"
	}
	return strconv.FormatFloat(v*1e12, 'g', 4, 64) + "p"
}
