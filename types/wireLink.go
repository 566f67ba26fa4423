package types

import (
	"fmt"
	"maps"
	"slices"
)

// WireID 连接ID
type WireID int

// FreeWireID 引脚未连接标记
const FreeWireID WireID = -2

// Wire 连接记录，只用于连接数量统计和重复检测，不携带电气状态
type Wire struct {
	ID        WireID    // 连接ID
	A, B      ElementID // 两端元件
	Mode      Mode      // 组合方式
	Composite ElementID // 连接产生的组合
	PinsA     []int     // A 占用的引脚
	PinsB     []int     // B 占用的引脚
}

// PinList 元件引脚占用情况
type PinList struct {
	Wires []WireID // 每个引脚连接的线路，FreeWireID 为空闲
	Sided bool     // 并联组合，两个引脚对应两侧
}

// Free 空闲引脚下标
func (pl *PinList) Free() []int {
	var free []int
	for i, w := range pl.Wires {
		if w == FreeWireID {
			free = append(free, i)
		}
	}
	return free
}

// clone 复制
func (pl *PinList) clone() *PinList {
	return &PinList{Wires: slices.Clone(pl.Wires), Sided: pl.Sided}
}

// WireLink 线路连接记录
type WireLink struct {
	WireList    map[WireID]*Wire       // 连接记录
	ElementPins map[ElementID]*PinList // 元件引脚
	WireCount   WireID                 // 自增数量
}

// NewWireLink 初始化
func NewWireLink() *WireLink {
	return &WireLink{
		WireList:    make(map[WireID]*Wire),
		ElementPins: make(map[ElementID]*PinList),
	}
}

// AddElement 登记元件引脚
func (wl *WireLink) AddElement(id ElementID, postCount int) {
	pl := &PinList{Wires: make([]WireID, postCount)}
	for i := range pl.Wires {
		pl.Wires[i] = FreeWireID
	}
	wl.ElementPins[id] = pl
}

// Connections 元件已占用的连接数量
func (wl *WireLink) Connections(id ElementID) int {
	pl, ok := wl.ElementPins[id]
	if !ok {
		return 0
	}
	return len(pl.Wires) - len(pl.Free())
}

// FreePin 第一个空闲引脚，没有返回 -1
func (wl *WireLink) FreePin(id ElementID) int {
	if pl, ok := wl.ElementPins[id]; ok {
		if free := pl.Free(); len(free) > 0 {
			return free[0]
		}
	}
	return -1
}

// Find 查找两个元件之间的连接(不分先后)
func (wl *WireLink) Find(a, b ElementID) *Wire {
	for _, w := range wl.WireList {
		if (w.A == a && w.B == b) || (w.A == b && w.B == a) {
			return w
		}
	}
	return nil
}

// FindComposite 查找产生指定组合的连接
func (wl *WireLink) FindComposite(id ElementID) *Wire {
	for _, w := range wl.WireList {
		if w.Composite == id {
			return w
		}
	}
	return nil
}

// need 组合方式需要的引脚数量：串联占一端，并联占两端
func need(mode Mode) int {
	if mode == ModeParallel {
		return 2
	}
	return 1
}

// checkPins 校验元件引脚容量
func (wl *WireLink) checkPins(id ElementID, mode Mode) ([]int, error) {
	pl, ok := wl.ElementPins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, id)
	}
	free := pl.Free()
	if len(free) >= need(mode) {
		return free[:need(mode)], nil
	}
	if pl.Sided && len(free) < len(pl.Wires) {
		return nil, fmt.Errorf("%w: 元件 %d", ErrSideOccupied, id)
	}
	return nil, fmt.Errorf("%w: 元件 %d 已连接 %d/%d", ErrCapacityExceeded, id, len(pl.Wires)-len(free), len(pl.Wires))
}

// CheckConnect 校验连接，不修改记录
func (wl *WireLink) CheckConnect(a, b ElementID, mode Mode) error {
	if a == b {
		return fmt.Errorf("%w: %d", ErrSameElement, a)
	}
	if w := wl.Find(a, b); w != nil {
		return fmt.Errorf("%w: %d-%d (连接 %d)", ErrDuplicateConnection, a, b, w.ID)
	}
	if _, err := wl.checkPins(a, mode); err != nil {
		return err
	}
	_, err := wl.checkPins(b, mode)
	return err
}

// Connect 记录连接并登记新组合的引脚
func (wl *WireLink) Connect(a, b ElementID, mode Mode, composite ElementID) (*Wire, error) {
	if err := wl.CheckConnect(a, b, mode); err != nil {
		return nil, err
	}
	pinsA, _ := wl.checkPins(a, mode)
	pinsB, _ := wl.checkPins(b, mode)
	wl.WireCount++
	w := &Wire{
		ID:        wl.WireCount,
		A:         a,
		B:         b,
		Mode:      mode,
		Composite: composite,
		PinsA:     slices.Clone(pinsA),
		PinsB:     slices.Clone(pinsB),
	}
	wl.occupy(w)
	return w, nil
}

// occupy 占用引脚并登记组合
func (wl *WireLink) occupy(w *Wire) {
	for _, p := range w.PinsA {
		wl.ElementPins[w.A].Wires[p] = w.ID
	}
	for _, p := range w.PinsB {
		wl.ElementPins[w.B].Wires[p] = w.ID
	}
	wl.WireList[w.ID] = w
	if w.Mode == ModeParallel {
		wl.AddElement(w.Composite, 2)
		wl.ElementPins[w.Composite].Sided = true
		return
	}
	// 串联组合的外部引脚为两端剩余的空闲引脚
	wl.AddElement(w.Composite, len(wl.ElementPins[w.A].Free())+len(wl.ElementPins[w.B].Free()))
}

// Disconnect 删除连接，释放引脚并注销组合
func (wl *WireLink) Disconnect(id WireID) (*Wire, error) {
	w, ok := wl.WireList[id]
	if !ok {
		return nil, fmt.Errorf("%w: 连接 %d", ErrUnknownElement, id)
	}
	for _, p := range w.PinsA {
		if pl, ok := wl.ElementPins[w.A]; ok {
			pl.Wires[p] = FreeWireID
		}
	}
	for _, p := range w.PinsB {
		if pl, ok := wl.ElementPins[w.B]; ok {
			pl.Wires[p] = FreeWireID
		}
	}
	delete(wl.ElementPins, w.Composite)
	delete(wl.WireList, id)
	return w, nil
}

// Restore 按原记录恢复连接(用于重做)
func (wl *WireLink) Restore(w *Wire) error {
	if _, ok := wl.WireList[w.ID]; ok {
		return fmt.Errorf("%w: 连接 %d", ErrDuplicateConnection, w.ID)
	}
	for _, side := range []struct {
		id   ElementID
		pins []int
	}{{w.A, w.PinsA}, {w.B, w.PinsB}} {
		pl, ok := wl.ElementPins[side.id]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownElement, side.id)
		}
		for _, p := range side.pins {
			if p >= len(pl.Wires) || pl.Wires[p] != FreeWireID {
				return fmt.Errorf("%w: 元件 %d 引脚 %d", ErrCapacityExceeded, side.id, p)
			}
		}
	}
	wl.occupy(w)
	if w.ID > wl.WireCount {
		wl.WireCount = w.ID
	}
	return nil
}

// Detached 摘除的连接记录
type Detached struct {
	Pins  map[ElementID]*PinList
	Wires []*Wire
}

// Detach 摘除一组元件的引脚记录和它们内部的连接
func (wl *WireLink) Detach(ids []ElementID) *Detached {
	d := &Detached{Pins: make(map[ElementID]*PinList)}
	for _, id := range ids {
		if pl, ok := wl.ElementPins[id]; ok {
			d.Pins[id] = pl
			delete(wl.ElementPins, id)
		}
	}
	for wid, w := range wl.WireList {
		if slices.Contains(ids, w.Composite) {
			d.Wires = append(d.Wires, w)
			delete(wl.WireList, wid)
		}
	}
	slices.SortFunc(d.Wires, func(a, b *Wire) int { return int(a.ID - b.ID) })
	return d
}

// Attach 恢复 Detach 摘除的记录
func (wl *WireLink) Attach(d *Detached) {
	for id, pl := range d.Pins {
		wl.ElementPins[id] = pl
	}
	for _, w := range d.Wires {
		wl.WireList[w.ID] = w
		if w.ID > wl.WireCount {
			wl.WireCount = w.ID
		}
	}
}

// Clone 深拷贝
func (wl *WireLink) Clone() *WireLink {
	n := &WireLink{
		WireList:    make(map[WireID]*Wire, len(wl.WireList)),
		ElementPins: make(map[ElementID]*PinList, len(wl.ElementPins)),
		WireCount:   wl.WireCount,
	}
	for id, w := range wl.WireList {
		c := *w
		c.PinsA = slices.Clone(w.PinsA)
		c.PinsB = slices.Clone(w.PinsB)
		n.WireList[id] = &c
	}
	for id, pl := range wl.ElementPins {
		n.ElementPins[id] = pl.clone()
	}
	return n
}

// Wires 按ID排序的连接列表
func (wl *WireLink) Wires() []*Wire {
	ids := slices.Sorted(maps.Keys(wl.WireList))
	list := make([]*Wire, len(ids))
	for i, id := range ids {
		list[i] = wl.WireList[id]
	}
	return list
}
