package maths

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

// 数值常量
const (
	Epsilon       = 1e-12 // 除法保护阈值，分母模小于此值时结果取零
	OpenMagnitude = 1e9   // 开路阻抗的有限大值约定
)

// 常用复数
var (
	Zero = Complex{}                    // 零阻抗(短路)
	One  = Complex{Real: 1}             // 单位复数
	Open = Complex{Real: OpenMagnitude} // 开路阻抗
)

// Complex 复数值类型，所有运算返回新值
type Complex struct {
	Real float64 // 实部
	Imag float64 // 虚部
}

// NewComplex 创建复数
func NewComplex(real, imag float64) Complex {
	return Complex{Real: real, Imag: imag}
}

// FromComplex128 由内置复数转换
func FromComplex128(v complex128) Complex {
	return Complex{Real: real(v), Imag: imag(v)}
}

// Complex128 转换为内置复数
func (a Complex) Complex128() complex128 {
	return complex(a.Real, a.Imag)
}

// Add 加法
func (a Complex) Add(b Complex) Complex {
	return Complex{Real: a.Real + b.Real, Imag: a.Imag + b.Imag}
}

// Sub 减法
func (a Complex) Sub(b Complex) Complex {
	return Complex{Real: a.Real - b.Real, Imag: a.Imag - b.Imag}
}

// Mul 乘法
func (a Complex) Mul(b Complex) Complex {
	return Complex{
		Real: a.Real*b.Real - a.Imag*b.Imag,
		Imag: a.Real*b.Imag + a.Imag*b.Real,
	}
}

// Div 除法，分母模小于 Epsilon 时返回零
func (a Complex) Div(b Complex) Complex {
	if b.Abs() < Epsilon {
		return Zero
	}
	den := b.Real*b.Real + b.Imag*b.Imag
	return Complex{
		Real: (a.Real*b.Real + a.Imag*b.Imag) / den,
		Imag: (a.Imag*b.Real - a.Real*b.Imag) / den,
	}
}

// Scale 数乘
func (a Complex) Scale(k float64) Complex {
	return Complex{Real: a.Real * k, Imag: a.Imag * k}
}

// Abs 模
func (a Complex) Abs() float64 {
	return math.Hypot(a.Real, a.Imag)
}

// Phase 相角(弧度)
func (a Complex) Phase() float64 {
	return math.Atan2(a.Imag, a.Real)
}

// IsFinite 实部和虚部都是有限值
func (a Complex) IsFinite() bool {
	return !math.IsNaN(a.Real) && !math.IsInf(a.Real, 0) &&
		!math.IsNaN(a.Imag) && !math.IsInf(a.Imag, 0)
}

// Equal 在容差内比较(绝对或相对)
func (a Complex) Equal(b Complex, tol float64) bool {
	return scalar.EqualWithinAbsOrRel(a.Real, b.Real, tol, tol) &&
		scalar.EqualWithinAbsOrRel(a.Imag, b.Imag, tol, tol)
}

// String 格式化输出
func (a Complex) String() string {
	return strconv.FormatComplex(a.Complex128(), 'g', 6, 128)
}

// Parallel 两个阻抗并联 (a·b)/(a+b)，分母模小于 eps 时返回零
func Parallel(a, b Complex, eps float64) Complex {
	den := a.Add(b)
	if den.Abs() < eps {
		return Zero
	}
	return a.Mul(b).Div(den)
}
