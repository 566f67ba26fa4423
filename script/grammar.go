// Package script 电路脚本：按行描述元件、连接和仿真操作
//
//	add R1 R 100        # 添加元件: 名称 类型 参数...
//	add L1 B 220 50
//	add C2 10u          # 省略类型时取名称的字母前缀
//	connect R1 R2 parallel as G1
//	source 220 50       # 电源电压和频率
//	run series          # 负载与指示灯的连接方式
//	sweep 10 1k 20 dec
//	undo
package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Script 脚本
type Script struct {
	Statements []*Statement `parser:"( @@ Semicolon? )*"`
}

// Statement 单条语句
type Statement struct {
	Pos lexer.Position

	Add     *AddStmt     `parser:"  @@"`
	Connect *ConnectStmt `parser:"| @@"`
	Ungroup *string      `parser:"| KwUngroup @Ident"`
	Remove  *string      `parser:"| KwRemove @Ident"`
	Set     *SetStmt     `parser:"| @@"`
	Replace *string      `parser:"| KwReplace @Ident"`
	Undo    bool         `parser:"| @KwUndo"`
	Redo    bool         `parser:"| @KwRedo"`
	Source  *SourceStmt  `parser:"| @@"`
	Run     *RunStmt     `parser:"| @@"`
	Sweep   *SweepStmt   `parser:"| @@"`
}

// AddStmt 添加元件
type AddStmt struct {
	Name   string   `parser:"KwAdd @Ident"`
	Type   string   `parser:"@Ident?"`
	Params []string `parser:"@Value*"`
}

// ConnectStmt 连接两个元件
type ConnectStmt struct {
	A    string `parser:"KwConnect @Ident"`
	B    string `parser:"@Ident"`
	Mode string `parser:"@Ident"`
	As   string `parser:"( KwAs @Ident )?"`
}

// SetStmt 按参数顺序修改元件值
type SetStmt struct {
	Name   string   `parser:"KwSet @Ident"`
	Params []string `parser:"@Value+"`
}

// SourceStmt 修改电源参数
type SourceStmt struct {
	Voltage   string  `parser:"KwSource @Value"`
	Frequency *string `parser:"@Value?"`
}

// RunStmt 执行仿真
type RunStmt struct {
	Coupling string `parser:"KwRun @Ident?"`
}

// SweepStmt 频率扫描
type SweepStmt struct {
	Start  string `parser:"KwSweep @Value"`
	Stop   string `parser:"@Value"`
	Points string `parser:"@Value"`
	Scale  string `parser:"@Ident?"`
}
