package types

import (
	"fmt"
	"strings"
)

// ElementType 元件类型
type ElementType uint8

// 电路元件类型常量定义
const (
	TypeUnknown   ElementType = iota // 未知类型
	TypeComposite                    // 串并联组合，仅由连接操作创建
)

// ElementConfig 元件类型配置
type ElementConfig interface {
	Init(base *ElementBase) (Element, error) // 由基础数据创建元件
	InitValue() ValueMap                     // 参数默认值
	ValueKeys() []string                     // 按位置排列的参数名
	GetPostCount() int                       // 获取引脚数量
}

// elementTypeInfo 注册记录
type elementTypeInfo struct {
	Name          string
	ElementConfig ElementConfig
}

// elementTypeList 元件映射
var elementTypeList = map[ElementType]elementTypeInfo{
	TypeUnknown:   {Name: "Unknown"},
	TypeComposite: {Name: "Group"},
}

// mapName 名称索引(大写)
var mapName = map[string]ElementType{
	"UNKNOWN": TypeUnknown,
	"GROUP":   TypeComposite,
}

// ElementRegister 注册元件类型
func ElementRegister(et ElementType, name string, config ElementConfig) {
	if _, ok := elementTypeList[et]; ok {
		panic(fmt.Errorf("指定元件类型已经注册: %s:%d", name, et))
	}
	if _, ok := mapName[strings.ToUpper(name)]; ok {
		panic(fmt.Errorf("指定元件名称已经注册: %s:%d", name, et))
	}
	mapName[strings.ToUpper(name)] = et
	elementTypeList[et] = elementTypeInfo{Name: name, ElementConfig: config}
}

// GetNameType 通过名称获取类型，不区分大小写
func GetNameType(name string) ElementType {
	return mapName[strings.ToUpper(name)]
}

// String 返回元件类型的字符串表示
func (t ElementType) String() string {
	if et, ok := elementTypeList[t]; ok {
		return et.Name
	}
	return "Unknown"
}

// Config 获取类型配置，未注册返回nil
func (t ElementType) Config() ElementConfig {
	return elementTypeList[t].ElementConfig
}

// GetPostCount 获取引脚数量
func (t ElementType) GetPostCount() int {
	if t == TypeComposite {
		return 2
	}
	if config := t.Config(); config != nil {
		return config.GetPostCount()
	}
	return 0
}

// NewElement 按类型创建元件，params 按 ValueKeys 顺序覆盖默认参数
func NewElement(t ElementType, id ElementID, params ...float64) (Element, error) {
	config := t.Config()
	if config == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	keys := config.ValueKeys()
	if len(params) > len(keys) {
		return nil, fmt.Errorf("%w: %s 最多 %d 个参数, 实际 %d", ErrInvalidParameter, t, len(keys), len(params))
	}
	base := &ElementBase{
		ID:       id,
		ValueMap: config.InitValue(),
	}
	for i, v := range params {
		base.ValueMap[keys[i]] = v
	}
	return config.Init(base)
}
