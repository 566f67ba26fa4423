package types

import "errors"

// 校验失败。调用方通过 errors.Is 判断类别，错误文本给出原因
var (
	ErrUnknownType         = errors.New("未知元件类型")
	ErrInvalidParameter    = errors.New("元件参数无效")
	ErrInvalidFrequency    = errors.New("频率无效")
	ErrUnknownElement      = errors.New("元件不存在")
	ErrDuplicateElement    = errors.New("元件ID重复")
	ErrSameElement         = errors.New("不能连接元件自身")
	ErrNotTopLevel         = errors.New("元件不是顶层元件")
	ErrDuplicateConnection = errors.New("重复连接")
	ErrCapacityExceeded    = errors.New("元件连接已满")
	ErrSideOccupied        = errors.New("并联组合该侧已被占用")
	ErrTerminalMode        = errors.New("端子只支持串联")
	ErrNotComposite        = errors.New("元件不是组合")
	ErrNoSource            = errors.New("电路中没有电源")
	ErrNoIndicator         = errors.New("电路中没有指示灯")
	ErrSourceGrouped       = errors.New("电源不能参与组合")
	ErrNothingToUndo       = errors.New("没有可撤销的操作")
	ErrNothingToRedo       = errors.New("没有可重做的操作")
)
