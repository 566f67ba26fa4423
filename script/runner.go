package script

import (
	"fmt"
	"maps"
	"math"

	"circuitlab"
	"circuitlab/history"
	"circuitlab/simulate"
	"circuitlab/sweep"
	"circuitlab/types"
	"circuitlab/utils"
)

// Runner 脚本执行器，名称到元件ID的映射只在执行器内有效
type Runner struct {
	History      *history.Manager
	Orchestrator *simulate.Orchestrator
	Coupling     simulate.Coupling // 默认连接方式

	OnRun   func(res simulate.Result)  // 每次 run 之后调用
	OnSweep func(points []sweep.Point) // 每次 sweep 之后调用

	parser *Parser
	names  map[string]types.ElementID
}

// NewRunner 创建执行器
func NewRunner(cir *circuitlab.Circuit, o *simulate.Orchestrator) (*Runner, error) {
	p, err := NewParser()
	if err != nil {
		return nil, err
	}
	return &Runner{
		History:      history.NewManager(cir, history.DefaultCapacity),
		Orchestrator: o,
		parser:       p,
		names:        map[string]types.ElementID{},
	}, nil
}

// Circuit 当前电路
func (r *Runner) Circuit() *circuitlab.Circuit { return r.History.Circuit() }

// Lookup 按名称查找元件ID
func (r *Runner) Lookup(name string) (types.ElementID, bool) {
	id, ok := r.names[name]
	return id, ok
}

// Name 按元件ID查找名称
func (r *Runner) Name(id types.ElementID) string {
	for name, v := range r.names {
		if v == id {
			return name
		}
	}
	return fmt.Sprintf("#%d", id)
}

// Names 全部名称
func (r *Runner) Names() map[string]types.ElementID { return maps.Clone(r.names) }

// RunString 解析并执行
func (r *Runner) RunString(input string) error {
	s, err := r.parser.ParseString(input)
	if err != nil {
		return err
	}
	return r.Exec(s)
}

// RunFile 解析并执行文件
func (r *Runner) RunFile(filename string) error {
	s, err := r.parser.ParseFile(filename)
	if err != nil {
		return err
	}
	return r.Exec(s)
}

// Exec 顺序执行，遇到错误立即停止
func (r *Runner) Exec(s *Script) error {
	for _, st := range s.Statements {
		if err := r.statement(st); err != nil {
			return fmt.Errorf("%s: %w", st.Pos, err)
		}
	}
	return nil
}

func (r *Runner) statement(st *Statement) error {
	switch {
	case st.Add != nil:
		return r.add(st.Add)
	case st.Connect != nil:
		return r.connect(st.Connect)
	case st.Ungroup != nil:
		id, err := r.resolve(*st.Ungroup)
		if err != nil {
			return err
		}
		return r.History.Ungroup(id)
	case st.Remove != nil:
		id, err := r.resolve(*st.Remove)
		if err != nil {
			return err
		}
		return r.History.RemoveElement(id)
	case st.Set != nil:
		e, err := r.element(st.Set.Name)
		if err != nil {
			return err
		}
		return r.set(e, st.Set.Params)
	case st.Replace != nil:
		e, err := r.element(*st.Replace)
		if err != nil {
			return err
		}
		b, ok := e.(interface{ Replace() })
		if !ok {
			return fmt.Errorf("%w: %s 不是指示元件", types.ErrInvalidParameter, *st.Replace)
		}
		b.Replace()
		return nil
	case st.Undo:
		return r.History.Undo()
	case st.Redo:
		return r.History.Redo()
	case st.Source != nil:
		return r.source(st.Source)
	case st.Run != nil:
		return r.run(st.Run)
	case st.Sweep != nil:
		return r.sweep(st.Sweep)
	}
	return nil
}

// resolve 名称转为ID
func (r *Runner) resolve(name string) (types.ElementID, error) {
	id, ok := r.names[name]
	if !ok {
		return types.UnknownID, fmt.Errorf("%w: %s", types.ErrUnknownElement, name)
	}
	return id, nil
}

// element 名称转为电路中的元件
func (r *Runner) element(name string) (types.Element, error) {
	id, err := r.resolve(name)
	if err != nil {
		return nil, err
	}
	e := r.Circuit().Find(id)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownElement, name)
	}
	return e, nil
}

// taken 名称是否被电路中的元件占用，已删除元件的名称可以重用
func (r *Runner) taken(name string) error {
	if old, ok := r.names[name]; ok && r.Circuit().Find(old) != nil {
		return fmt.Errorf("%w: 名称 %s", types.ErrDuplicateElement, name)
	}
	return nil
}

func (r *Runner) add(st *AddStmt) error {
	if err := r.taken(st.Name); err != nil {
		return err
	}
	typeName := st.Type
	if typeName == "" {
		typeName, _ = utils.NetList{st.Name}.SeparationPrick(0)
	}
	et := types.GetNameType(typeName)
	if et == types.TypeUnknown || et == types.TypeComposite {
		return fmt.Errorf("%w: %s", types.ErrUnknownType, typeName)
	}
	params, err := utils.NetList(st.Params).Floats(0)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidParameter, err)
	}
	e, err := r.History.NewElement(et, params...)
	if err != nil {
		return err
	}
	r.names[st.Name] = e.Base().ID
	return nil
}

func (r *Runner) connect(st *ConnectStmt) error {
	a, err := r.resolve(st.A)
	if err != nil {
		return err
	}
	b, err := r.resolve(st.B)
	if err != nil {
		return err
	}
	mode, err := types.ParseMode(st.Mode)
	if err != nil {
		return err
	}
	name := st.As
	if name == "" {
		name = st.A + "_" + st.B
	}
	if err := r.taken(name); err != nil {
		return err
	}
	comp, err := r.History.Connect(a, b, mode)
	if err != nil {
		return err
	}
	r.names[name] = comp.ID
	return nil
}

// set 按参数顺序写入元件值，校验失败时恢复原值
func (r *Runner) set(e types.Element, params []string) error {
	values, err := utils.NetList(params).Floats(0)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidParameter, err)
	}
	config := e.Type().Config()
	if config == nil {
		return fmt.Errorf("%w: %s 没有参数", types.ErrInvalidParameter, e.Type())
	}
	keys := config.ValueKeys()
	if len(values) > len(keys) {
		return fmt.Errorf("%w: %s 最多 %d 个参数", types.ErrInvalidParameter, e.Type(), len(keys))
	}
	base := e.Base()
	old := maps.Clone(base.ValueMap)
	for i, v := range values {
		base.SetKeyValue(keys[i], v)
	}
	if err := e.Reset(); err != nil {
		base.ValueMap = old
		if rerr := e.Reset(); rerr != nil {
			return fmt.Errorf("%w (恢复原值失败: %v)", err, rerr)
		}
		return err
	}
	return nil
}

func (r *Runner) source(st *SourceStmt) error {
	var src types.Element
	for _, e := range r.Circuit().Elements() {
		if s, ok := types.AsPowerSource(e); ok {
			src = s
			break
		}
	}
	if src == nil {
		return types.ErrNoSource
	}
	params := []string{st.Voltage}
	if st.Frequency != nil {
		params = append(params, *st.Frequency)
	}
	return r.set(src, params)
}

// coupling 解析连接方式，为空时使用默认值
func (r *Runner) coupling(s string) (simulate.Coupling, error) {
	if s == "" {
		return r.Coupling, nil
	}
	return simulate.ParseCoupling(s)
}

func (r *Runner) run(st *RunStmt) error {
	coupling, err := r.coupling(st.Coupling)
	if err != nil {
		return err
	}
	res, err := r.Circuit().Simulate(r.Orchestrator, coupling)
	if err != nil {
		return err
	}
	if r.OnRun != nil {
		r.OnRun(res)
	}
	return nil
}

func (r *Runner) sweep(st *SweepStmt) error {
	values, err := utils.NetList{st.Start, st.Stop, st.Points}.Floats(0)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidParameter, err)
	}
	if points := values[2]; points != math.Trunc(points) || points < 1 || points > sweep.MaxPoints {
		return fmt.Errorf("%w: 点数 %s 必须是 1-%d 的整数", types.ErrInvalidParameter, st.Points, sweep.MaxPoints)
	}
	spec := sweep.Spec{Start: values[0], Stop: values[1], Points: int(values[2]), Scale: sweep.ScaleDecade}
	if st.Scale != "" {
		if spec.Scale, err = sweep.ParseScale(st.Scale); err != nil {
			return err
		}
	}
	points, err := sweep.Run(r.Circuit(), r.Orchestrator, r.Coupling, spec)
	if err != nil {
		return err
	}
	if r.OnSweep != nil {
		r.OnSweep(points)
	}
	return nil
}
