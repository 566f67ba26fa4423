package circuitlab

import (
	"fmt"
	"slices"

	"circuitlab/element/terminal"
	"circuitlab/simulate"
	"circuitlab/types"

	_ "circuitlab/element"
)

// Circuit 电路：顶层元件列表是唯一的成员来源，根组合由它派生
type Circuit struct {
	*types.WireLink
	Thresholds types.Thresholds // 组合元件使用的阈值

	elements  []types.Element  // 顶层元件
	root      *types.Composite // 根组合，空电路为nil
	NodeCount types.ElementID  // 自增ID
}

// NewCircuit 使用默认阈值初始化
func NewCircuit() *Circuit {
	return NewCircuitWith(types.DefaultThresholds())
}

// NewCircuitWith 使用指定阈值初始化
func NewCircuitWith(th types.Thresholds) *Circuit {
	return &Circuit{WireLink: types.NewWireLink(), Thresholds: th}
}

// NewElement 创建元件并加入电路
func (cir *Circuit) NewElement(t types.ElementType, params ...float64) (types.Element, error) {
	e, err := types.NewElement(t, cir.NodeCount+1, params...)
	if err != nil {
		return nil, err
	}
	if err := cir.AddElement(e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddElement 追加顶层元件
func (cir *Circuit) AddElement(e types.Element) error {
	return cir.InsertElement(len(cir.elements), e)
}

// InsertElement 在指定位置插入顶层元件
func (cir *Circuit) InsertElement(index int, e types.Element) error {
	if e == nil {
		return fmt.Errorf("%w: 空元件", types.ErrInvalidParameter)
	}
	ids := types.IDsOf(e)
	for _, id := range ids {
		if cir.Find(id) != nil {
			return fmt.Errorf("%w: %d", types.ErrDuplicateElement, id)
		}
	}
	if c, ok := e.(*types.Composite); ok {
		c.Walk(func(sub types.Element, _ int) {
			cir.register(sub)
		})
	} else {
		cir.register(e)
	}
	index = max(0, min(index, len(cir.elements)))
	cir.elements = slices.Insert(cir.elements, index, e)
	cir.rebuild()
	return nil
}

// register 登记引脚并推进自增ID
func (cir *Circuit) register(e types.Element) {
	id := e.Base().ID
	if _, ok := cir.ElementPins[id]; !ok {
		cir.WireLink.AddElement(id, e.Type().GetPostCount())
	}
	if id > cir.NodeCount {
		cir.NodeCount = id
	}
}

// Removal 删除记录，用于恢复
type Removal struct {
	Element  types.Element   // 被删除的元件(含子树)
	Index    int             // 原顶层位置
	Detached *types.Detached // 摘除的连接记录
}

// RemoveElement 删除顶层元件及其子树
func (cir *Circuit) RemoveElement(id types.ElementID) (*Removal, error) {
	index, err := cir.topLevel(id)
	if err != nil {
		return nil, err
	}
	e := cir.elements[index]
	r := &Removal{
		Element:  e,
		Index:    index,
		Detached: cir.Detach(types.IDsOf(e)),
	}
	cir.elements = slices.Delete(cir.elements, index, index+1)
	cir.rebuild()
	return r, nil
}

// Reinstate 恢复被删除的元件
func (cir *Circuit) Reinstate(r *Removal) error {
	for _, id := range types.IDsOf(r.Element) {
		if cir.Find(id) != nil {
			return fmt.Errorf("%w: %d", types.ErrDuplicateElement, id)
		}
	}
	index := max(0, min(r.Index, len(cir.elements)))
	cir.elements = slices.Insert(cir.elements, index, r.Element)
	cir.Attach(r.Detached)
	cir.rebuild()
	return nil
}

// Connect 把两个顶层元件折叠为新的组合元件
// 这是一次折叠操作，只能通过 Ungroup 或撤销恢复
func (cir *Circuit) Connect(a, b types.ElementID, mode types.Mode) (*types.Composite, error) {
	if a == b {
		return nil, fmt.Errorf("%w: %d", types.ErrSameElement, a)
	}
	if w := cir.WireLink.Find(a, b); w != nil {
		return nil, fmt.Errorf("%w: %d-%d", types.ErrDuplicateConnection, a, b)
	}
	ia, err := cir.topLevel(a)
	if err != nil {
		return nil, err
	}
	ib, err := cir.topLevel(b)
	if err != nil {
		return nil, err
	}
	ea, eb := cir.elements[ia], cir.elements[ib]
	for _, e := range []types.Element{ea, eb} {
		if types.Search(e, isSource) != nil {
			return nil, fmt.Errorf("%w: %d", types.ErrSourceGrouped, e.Base().ID)
		}
	}
	if mode != types.ModeSeries && (ea.Type() == terminal.Type || eb.Type() == terminal.Type) {
		return nil, fmt.Errorf("%w: %d-%d %s", types.ErrTerminalMode, a, b, mode)
	}
	id := cir.NodeCount + 1
	if _, err := cir.WireLink.Connect(a, b, mode, id); err != nil {
		return nil, err
	}
	cir.NodeCount = id
	comp := types.NewComposite(id, mode, cir.Thresholds, ea, eb)
	comp.Position = ea.Base().Position
	cir.fold(comp, ia, ib)
	return comp, nil
}

// fold 用组合替换顶层的子元件，组合放在子元件的最小位置
func (cir *Circuit) fold(comp *types.Composite, indexes ...int) {
	lo := slices.Min(indexes)
	list := make([]types.Element, 0, len(cir.elements)-len(indexes)+1)
	for i, e := range cir.elements {
		if i == lo {
			list = append(list, comp)
		}
		if !slices.Contains(indexes, i) {
			list = append(list, e)
		}
	}
	cir.elements = list
	cir.rebuild()
}

// Grouping 拆分记录
type Grouping struct {
	Composite *types.Composite // 被拆分的组合
	Index     int              // 组合原顶层位置
	Wire      *types.Wire      // 组合对应的连接记录
}

// Ungroup 拆分顶层组合，子元件回到组合原位置
func (cir *Circuit) Ungroup(id types.ElementID) (*Grouping, error) {
	index, err := cir.topLevel(id)
	if err != nil {
		return nil, err
	}
	comp, ok := cir.elements[index].(*types.Composite)
	if !ok {
		return nil, fmt.Errorf("%w: %d", types.ErrNotComposite, id)
	}
	g := &Grouping{Composite: comp, Index: index}
	if w := cir.FindComposite(id); w != nil {
		if g.Wire, err = cir.Disconnect(w.ID); err != nil {
			return nil, err
		}
	} else {
		delete(cir.ElementPins, id)
	}
	cir.elements = slices.Replace(cir.elements, index, index+1, comp.Children()...)
	cir.rebuild()
	return g, nil
}

// Regroup 按拆分记录重新折叠
func (cir *Circuit) Regroup(g *Grouping) error {
	if cir.Find(g.Composite.ID) != nil {
		return fmt.Errorf("%w: %d", types.ErrDuplicateElement, g.Composite.ID)
	}
	var indexes []int
	for _, e := range g.Composite.Children() {
		i, err := cir.topLevel(e.Base().ID)
		if err != nil {
			return err
		}
		indexes = append(indexes, i)
	}
	if g.Wire != nil {
		if err := cir.WireLink.Restore(g.Wire); err != nil {
			return err
		}
	} else {
		cir.WireLink.AddElement(g.Composite.ID, types.TypeComposite.GetPostCount())
	}
	if len(indexes) == 0 {
		cir.elements = slices.Insert(cir.elements, max(0, min(g.Index, len(cir.elements))), types.Element(g.Composite))
		cir.rebuild()
		return nil
	}
	cir.fold(g.Composite, indexes...)
	return nil
}

// topLevel 顶层位置，区分不存在和非顶层
func (cir *Circuit) topLevel(id types.ElementID) (int, error) {
	if i := cir.IndexOf(id); i >= 0 {
		return i, nil
	}
	if cir.Find(id) != nil {
		return -1, fmt.Errorf("%w: %d", types.ErrNotTopLevel, id)
	}
	return -1, fmt.Errorf("%w: %d", types.ErrUnknownElement, id)
}

// rebuild 用顶层元件重建串联根组合
func (cir *Circuit) rebuild() {
	if len(cir.elements) == 0 {
		cir.root = nil
		return
	}
	cir.root = types.NewComposite(types.RootID, types.ModeSeries, cir.Thresholds, cir.elements...)
}

// Root 根组合，空电路为nil
func (cir *Circuit) Root() *types.Composite { return cir.root }

// Elements 顶层元件(副本)
func (cir *Circuit) Elements() []types.Element {
	return slices.Clone(cir.elements)
}

// Len 顶层元件数量
func (cir *Circuit) Len() int { return len(cir.elements) }

// IndexOf 顶层位置，不是顶层返回 -1
func (cir *Circuit) IndexOf(id types.ElementID) int {
	return slices.IndexFunc(cir.elements, func(e types.Element) bool {
		return e.Base().ID == id
	})
}

// Find 在整棵树中查找元件
func (cir *Circuit) Find(id types.ElementID) types.Element {
	for _, e := range cir.elements {
		if e.Base().ID == id {
			return e
		}
		if c, ok := e.(*types.Composite); ok {
			if f := c.Find(id); f != nil {
				return f
			}
		}
	}
	return nil
}

// Snapshot 电路快照，与电路完全独立
type Snapshot struct {
	elements  []types.Element
	wires     *types.WireLink
	nodeCount types.ElementID
}

// Len 快照中的顶层元件数量
func (s *Snapshot) Len() int { return len(s.elements) }

func cloneElements(list []types.Element) []types.Element {
	out := make([]types.Element, len(list))
	for i, e := range list {
		out[i] = e.Clone()
	}
	return out
}

// Snapshot 深拷贝当前拓扑
func (cir *Circuit) Snapshot() *Snapshot {
	return &Snapshot{
		elements:  cloneElements(cir.elements),
		wires:     cir.WireLink.Clone(),
		nodeCount: cir.NodeCount,
	}
}

// RestoreSnapshot 用快照整体替换电路状态，快照可重复使用
func (cir *Circuit) RestoreSnapshot(s *Snapshot) {
	cir.elements = cloneElements(s.elements)
	cir.WireLink = s.wires.Clone()
	cir.NodeCount = s.nodeCount
	cir.rebuild()
}

// Clone 复制整个电路
func (cir *Circuit) Clone() *Circuit {
	n := NewCircuitWith(cir.Thresholds)
	n.RestoreSnapshot(cir.Snapshot())
	return n
}

func isSource(e types.Element) bool {
	_, ok := types.AsPowerSource(e)
	return ok
}

func isIndicator(e types.Element) bool {
	_, ok := types.AsIndicator(e)
	return ok
}

// Split 按能力查找电源和指示灯，其余元件组成负载
// 顶层没有指示灯时在组合内部查找，此时指示灯留在负载中
func (cir *Circuit) Split() (types.PowerSource, types.Indicator, *types.Composite, error) {
	var (
		src  types.PowerSource
		ind  types.Indicator
		rest []types.Element
	)
	for _, e := range cir.elements {
		if s, ok := types.AsPowerSource(e); ok {
			if src != nil {
				return nil, nil, nil, fmt.Errorf("%w: 只支持单个电源", types.ErrInvalidParameter)
			}
			src = s
			continue
		}
		if i, ok := types.AsIndicator(e); ok && ind == nil {
			ind = i
			continue
		}
		rest = append(rest, e)
	}
	if src == nil {
		return nil, nil, nil, types.ErrNoSource
	}
	if ind == nil {
		for _, e := range rest {
			if found := types.Search(e, isIndicator); found != nil {
				ind, _ = types.AsIndicator(found)
				break
			}
		}
	}
	if ind == nil {
		return nil, nil, nil, types.ErrNoIndicator
	}
	return src, ind, types.NewComposite(types.LoadID, types.ModeSeries, cir.Thresholds, rest...), nil
}

// Simulate 使用电路中的电源参数仿真
func (cir *Circuit) Simulate(o *simulate.Orchestrator, coupling simulate.Coupling) (simulate.Result, error) {
	src, _, _, err := cir.Split()
	if err != nil {
		return simulate.Result{}, err
	}
	return cir.SimulateSource(o, coupling, simulate.Source{
		Voltage:   src.SourceVoltage(),
		Frequency: src.SourceFrequency(),
	})
}

// SimulateSource 使用指定电源参数仿真(不修改电源元件的参数)
// 指示灯已组合在负载内部时忽略 coupling
func (cir *Circuit) SimulateSource(o *simulate.Orchestrator, coupling simulate.Coupling, source simulate.Source) (simulate.Result, error) {
	src, ind, load, err := cir.Split()
	if err != nil {
		return simulate.Result{}, err
	}
	if load.Find(ind.Base().ID) != nil {
		coupling = simulate.EmbeddedIndicator
	}
	res, err := o.Run(source, load, ind, coupling)
	if err != nil {
		return res, err
	}
	src.Distribute(source.Voltage, res.TotalCurrent, res.Frequency)
	return res, nil
}
