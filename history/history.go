// Package history 电路编辑的撤销/重做
//
// Manager 记录每次修改的逆操作，撤销和重做都是 O(1) 的结构操作；
// SnapshotManager 在每次修改前保存整个拓扑的深拷贝，两者对外行为一致。
package history

import (
	"fmt"

	"circuitlab"
	"circuitlab/types"
)

// DefaultCapacity 默认历史容量
const DefaultCapacity = 50

// ActionKind 操作类型
type ActionKind uint8

// 操作类型
const (
	ActionAddElement       ActionKind = iota // 添加元件
	ActionRemoveElement                      // 删除元件
	ActionAddConnection                      // 连接(生成组合)
	ActionRemoveConnection                   // 拆分组合
)

// String 名称
func (k ActionKind) String() string {
	switch k {
	case ActionAddElement:
		return "AddElement"
	case ActionRemoveElement:
		return "RemoveElement"
	case ActionAddConnection:
		return "AddConnection"
	case ActionRemoveConnection:
		return "RemoveConnection"
	}
	return "Unknown"
}

// Action 一次可撤销的修改
type Action struct {
	Kind ActionKind      // 类型
	ID   types.ElementID // 元件或组合ID

	removal  *circuitlab.Removal  // 删除记录
	grouping *circuitlab.Grouping // 拆分记录
}

// String 描述
func (a *Action) String() string {
	return fmt.Sprintf("%s(%d)", a.Kind, a.ID)
}

// undo 应用逆操作
func (a *Action) undo(cir *circuitlab.Circuit) (err error) {
	switch a.Kind {
	case ActionAddElement:
		a.removal, err = cir.RemoveElement(a.ID)
	case ActionRemoveElement:
		err = cir.Reinstate(a.removal)
	case ActionAddConnection:
		// 撤销连接时两个子元件恢复为独立的顶层元件
		a.grouping, err = cir.Ungroup(a.ID)
	case ActionRemoveConnection:
		err = cir.Regroup(a.grouping)
	}
	return err
}

// redo 重新应用
func (a *Action) redo(cir *circuitlab.Circuit) (err error) {
	switch a.Kind {
	case ActionAddElement:
		err = cir.Reinstate(a.removal)
	case ActionRemoveElement:
		a.removal, err = cir.RemoveElement(a.ID)
	case ActionAddConnection:
		err = cir.Regroup(a.grouping)
	case ActionRemoveConnection:
		a.grouping, err = cir.Ungroup(a.ID)
	}
	return err
}

// Manager 基于命令的历史管理
type Manager struct {
	cir  *circuitlab.Circuit
	undo *stack[*Action]
	redo *stack[*Action]
}

// NewManager 创建历史管理，capacity 不大于0时使用默认容量
func NewManager(cir *circuitlab.Circuit, capacity int) *Manager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Manager{cir: cir, undo: newStack[*Action](capacity), redo: newStack[*Action](capacity)}
}

// Circuit 被管理的电路
func (m *Manager) Circuit() *circuitlab.Circuit { return m.cir }

// record 记录新操作，清空重做栈
func (m *Manager) record(a *Action) {
	m.undo.push(a)
	m.redo.clear()
}

// NewElement 创建并添加元件
func (m *Manager) NewElement(t types.ElementType, params ...float64) (types.Element, error) {
	e, err := m.cir.NewElement(t, params...)
	if err != nil {
		return nil, err
	}
	m.record(&Action{Kind: ActionAddElement, ID: e.Base().ID})
	return e, nil
}

// AddElement 添加已有元件
func (m *Manager) AddElement(e types.Element) error {
	if err := m.cir.AddElement(e); err != nil {
		return err
	}
	m.record(&Action{Kind: ActionAddElement, ID: e.Base().ID})
	return nil
}

// RemoveElement 删除顶层元件
func (m *Manager) RemoveElement(id types.ElementID) error {
	r, err := m.cir.RemoveElement(id)
	if err != nil {
		return err
	}
	m.record(&Action{Kind: ActionRemoveElement, ID: id, removal: r})
	return nil
}

// Connect 连接两个顶层元件
func (m *Manager) Connect(a, b types.ElementID, mode types.Mode) (*types.Composite, error) {
	comp, err := m.cir.Connect(a, b, mode)
	if err != nil {
		return nil, err
	}
	m.record(&Action{Kind: ActionAddConnection, ID: comp.ID})
	return comp, nil
}

// Ungroup 拆分顶层组合
func (m *Manager) Ungroup(id types.ElementID) error {
	g, err := m.cir.Ungroup(id)
	if err != nil {
		return err
	}
	m.record(&Action{Kind: ActionRemoveConnection, ID: id, grouping: g})
	return nil
}

// Undo 撤销最近一次操作
func (m *Manager) Undo() error {
	a, ok := m.undo.pop()
	if !ok {
		return types.ErrNothingToUndo
	}
	if err := a.undo(m.cir); err != nil {
		m.undo.push(a)
		return fmt.Errorf("撤销 %s: %w", a, err)
	}
	m.redo.push(a)
	return nil
}

// Redo 重做最近一次撤销的操作
func (m *Manager) Redo() error {
	a, ok := m.redo.pop()
	if !ok {
		return types.ErrNothingToRedo
	}
	if err := a.redo(m.cir); err != nil {
		m.redo.push(a)
		return fmt.Errorf("重做 %s: %w", a, err)
	}
	m.undo.push(a)
	return nil
}

// CanUndo 是否可以撤销
func (m *Manager) CanUndo() bool { return m.undo.len() > 0 }

// CanRedo 是否可以重做
func (m *Manager) CanRedo() bool { return m.redo.len() > 0 }

// Len 可撤销的操作数量
func (m *Manager) Len() int { return m.undo.len() }

// History 可撤销的操作，最早的在前
func (m *Manager) History() []Action {
	out := make([]Action, 0, m.undo.len())
	for _, a := range m.undo.items {
		out = append(out, Action{Kind: a.Kind, ID: a.ID})
	}
	return out
}

// Clear 清空历史
func (m *Manager) Clear() {
	m.undo.clear()
	m.redo.clear()
}
