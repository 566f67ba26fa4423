package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer 电路脚本词法
// 关键字不区分大小写，# 到行尾为注释
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// 编辑
	{Name: "KwAdd", Pattern: `(?i)\badd\b`},
	{Name: "KwConnect", Pattern: `(?i)\bconnect\b`},
	{Name: "KwAs", Pattern: `(?i)\bas\b`},
	{Name: "KwUngroup", Pattern: `(?i)\bungroup\b`},
	{Name: "KwRemove", Pattern: `(?i)\bremove\b`},
	{Name: "KwSet", Pattern: `(?i)\bset\b`},
	{Name: "KwReplace", Pattern: `(?i)\breplace\b`},
	{Name: "KwUndo", Pattern: `(?i)\bundo\b`},
	{Name: "KwRedo", Pattern: `(?i)\bredo\b`},

	// 仿真
	{Name: "KwSource", Pattern: `(?i)\bsource\b`},
	{Name: "KwRun", Pattern: `(?i)\brun\b`},
	{Name: "KwSweep", Pattern: `(?i)\bsweep\b`},

	{Name: "Semicolon", Pattern: `;`},

	// 数值，允许工程后缀和单位，例如 4.7k、10uF、2meg
	{Name: "Value", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?[a-zA-ZµΩ]*`},

	// 名称(必须在关键字之后)
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
})
