package history

import (
	"circuitlab"
	"circuitlab/types"
)

// SnapshotManager 基于快照的历史管理，每次修改前保存整个拓扑
type SnapshotManager struct {
	cir  *circuitlab.Circuit
	undo *stack[*circuitlab.Snapshot]
	redo *stack[*circuitlab.Snapshot]
}

// NewSnapshotManager 创建快照历史，capacity 不大于0时使用默认容量
func NewSnapshotManager(cir *circuitlab.Circuit, capacity int) *SnapshotManager {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SnapshotManager{
		cir:  cir,
		undo: newStack[*circuitlab.Snapshot](capacity),
		redo: newStack[*circuitlab.Snapshot](capacity),
	}
}

// Do 执行修改，成功后记录修改前的快照
// 电路的修改操作失败时不改变状态
func (m *SnapshotManager) Do(fn func(cir *circuitlab.Circuit) error) error {
	before := m.cir.Snapshot()
	if err := fn(m.cir); err != nil {
		return err
	}
	m.undo.push(before)
	m.redo.clear()
	return nil
}

// NewElement 创建并添加元件
func (m *SnapshotManager) NewElement(t types.ElementType, params ...float64) (e types.Element, err error) {
	err = m.Do(func(cir *circuitlab.Circuit) error {
		e, err = cir.NewElement(t, params...)
		return err
	})
	return e, err
}

// RemoveElement 删除顶层元件
func (m *SnapshotManager) RemoveElement(id types.ElementID) error {
	return m.Do(func(cir *circuitlab.Circuit) error {
		_, err := cir.RemoveElement(id)
		return err
	})
}

// Connect 连接两个顶层元件
func (m *SnapshotManager) Connect(a, b types.ElementID, mode types.Mode) (comp *types.Composite, err error) {
	err = m.Do(func(cir *circuitlab.Circuit) error {
		comp, err = cir.Connect(a, b, mode)
		return err
	})
	return comp, err
}

// Ungroup 拆分顶层组合
func (m *SnapshotManager) Ungroup(id types.ElementID) error {
	return m.Do(func(cir *circuitlab.Circuit) error {
		_, err := cir.Ungroup(id)
		return err
	})
}

// Undo 恢复到上一次修改前
func (m *SnapshotManager) Undo() error {
	s, ok := m.undo.pop()
	if !ok {
		return types.ErrNothingToUndo
	}
	m.redo.push(m.cir.Snapshot())
	m.cir.RestoreSnapshot(s)
	return nil
}

// Redo 重做最近一次撤销的修改
func (m *SnapshotManager) Redo() error {
	s, ok := m.redo.pop()
	if !ok {
		return types.ErrNothingToRedo
	}
	m.undo.push(m.cir.Snapshot())
	m.cir.RestoreSnapshot(s)
	return nil
}

// CanUndo 是否可以撤销
func (m *SnapshotManager) CanUndo() bool { return m.undo.len() > 0 }

// CanRedo 是否可以重做
func (m *SnapshotManager) CanRedo() bool { return m.redo.len() > 0 }

// Len 可撤销的修改数量
func (m *SnapshotManager) Len() int { return m.undo.len() }
