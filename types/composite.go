package types

import (
	"fmt"
	"strings"

	"circuitlab/maths"
)

// Mode 组合方式
type Mode uint8

// 组合方式
const (
	ModeSeries   Mode = iota // 串联
	ModeParallel             // 并联
)

// String 名称
func (m Mode) String() string {
	switch m {
	case ModeSeries:
		return "series"
	case ModeParallel:
		return "parallel"
	}
	return "unknown"
}

// ParseMode 解析组合方式
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "series", "s":
		return ModeSeries, nil
	case "parallel", "p":
		return ModeParallel, nil
	}
	return 0, fmt.Errorf("%w: 未知组合方式 %q", ErrInvalidParameter, s)
}

// Composite 组合元件，独占有序的子元件列表
// 阻抗与分配结果完全由子元件和组合方式决定
type Composite struct {
	*ElementBase
	Mode       Mode       // 组合方式
	Thresholds Thresholds // 短路/开路判定阈值

	children []Element
}

// NewComposite 创建组合
func NewComposite(id ElementID, mode Mode, th Thresholds, children ...Element) *Composite {
	c := &Composite{
		ElementBase: &ElementBase{ID: id, ValueMap: ValueMap{}},
		Mode:        mode,
		Thresholds:  th,
	}
	for _, e := range children {
		c.Add(e)
	}
	return c
}

// Type 类型
func (c *Composite) Type() ElementType { return TypeComposite }

// Reset 组合没有独立参数
func (c *Composite) Reset() error { return nil }

// Add 追加子元件
func (c *Composite) Add(e Element) {
	c.children = append(c.children, e)
}

// Children 子元件列表(副本)
func (c *Composite) Children() []Element {
	return append([]Element(nil), c.children...)
}

// Len 子元件数量
func (c *Composite) Len() int { return len(c.children) }

// Impedance 自底向上聚合阻抗
func (c *Composite) Impedance(frequency float64) maths.Complex {
	if len(c.children) == 0 {
		return c.Thresholds.Open()
	}
	if c.Mode == ModeSeries {
		var z maths.Complex
		for _, e := range c.children {
			z = z.Add(e.Impedance(frequency))
		}
		return z
	}
	z := c.children[0].Impedance(frequency)
	for _, e := range c.children[1:] {
		z = c.Thresholds.Parallel(z, e.Impedance(frequency))
	}
	return z
}

// DCResistance 最近一次分配频率下阻抗的实部
func (c *Composite) DCResistance() float64 {
	return c.Impedance(c.Frequency()).Real
}

// Distribute 自顶向下分配电压电流
func (c *Composite) Distribute(voltage, current, frequency float64) {
	c.ElementBase.Distribute(voltage, current, frequency)
	if len(c.children) == 0 {
		return
	}
	th := c.Thresholds
	mags := make([]float64, len(c.children))
	for i, e := range c.children {
		mags[i] = e.Impedance(frequency).Abs()
	}
	if c.Mode == ModeSeries {
		// 串联电流相同；存在开路时电压全部落在开路处
		var open int
		for _, m := range mags {
			if th.IsOpen(m) {
				open++
			}
		}
		for i, e := range c.children {
			var drop float64
			switch {
			case open == 0:
				drop = current * mags[i]
			case th.IsOpen(mags[i]):
				drop = voltage / float64(open)
			}
			e.Distribute(drop, current, frequency)
		}
		return
	}
	// 并联电压相同；短路支路平分父节点电流(仅当父节点本身短路)
	parentShort := th.IsShort(c.Impedance(frequency).Abs())
	var shorts int
	for _, m := range mags {
		if th.IsShort(m) {
			shorts++
		}
	}
	for i, e := range c.children {
		var branch float64
		switch {
		case th.IsShort(mags[i]):
			if parentShort {
				branch = current / float64(shorts)
			}
		case th.IsOpen(mags[i]):
		default:
			branch = voltage / mags[i]
		}
		e.Distribute(voltage, branch, frequency)
	}
}

// Clone 深拷贝整棵子树
func (c *Composite) Clone() Element {
	n := &Composite{
		ElementBase: c.ElementBase.Clone(),
		Mode:        c.Mode,
		Thresholds:  c.Thresholds,
		children:    make([]Element, len(c.children)),
	}
	for i, e := range c.children {
		n.children[i] = e.Clone()
	}
	return n
}

// Find 在子树中按ID查找(包括自身)
func (c *Composite) Find(id ElementID) Element {
	if c.ID == id {
		return c
	}
	for _, e := range c.children {
		if e.Base().ID == id {
			return e
		}
		if sub, ok := e.(*Composite); ok {
			if f := sub.Find(id); f != nil {
				return f
			}
		}
	}
	return nil
}

// Walk 先序遍历子树，depth 从 0 开始
func (c *Composite) Walk(fn func(e Element, depth int)) {
	c.walk(fn, 0)
}

func (c *Composite) walk(fn func(e Element, depth int), depth int) {
	fn(c, depth)
	for _, e := range c.children {
		if sub, ok := e.(*Composite); ok {
			sub.walk(fn, depth+1)
			continue
		}
		fn(e, depth+1)
	}
}

// IDs 子树内全部元件ID(包括自身)
func (c *Composite) IDs() []ElementID {
	var ids []ElementID
	c.Walk(func(e Element, _ int) {
		ids = append(ids, e.Base().ID)
	})
	return ids
}

// Search 先序查找第一个满足条件的元件(包括 e 自身)，没有返回nil
func Search(e Element, match func(e Element) bool) Element {
	if e == nil {
		return nil
	}
	c, ok := e.(*Composite)
	if !ok {
		if match(e) {
			return e
		}
		return nil
	}
	var found Element
	c.Walk(func(e Element, _ int) {
		if found == nil && match(e) {
			found = e
		}
	})
	return found
}

// IDsOf 元件及其子树的全部ID
func IDsOf(e Element) []ElementID {
	if c, ok := e.(*Composite); ok {
		return c.IDs()
	}
	return []ElementID{e.Base().ID}
}
