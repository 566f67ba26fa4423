package script

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
)

// Parser 脚本解析器
type Parser struct {
	parser *participle.Parser[Script]
}

// NewParser 创建解析器
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Script](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("创建解析器失败: %w", err)
	}
	return &Parser{parser: parser}, nil
}

// Parse 从 Reader 解析
func (p *Parser) Parse(r io.Reader) (*Script, error) {
	s, err := p.parser.Parse("", r)
	if err != nil {
		return nil, fmt.Errorf("解析失败: %w", err)
	}
	return s, nil
}

// ParseString 解析字符串
func (p *Parser) ParseString(input string) (*Script, error) {
	s, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("解析失败: %w", err)
	}
	return s, nil
}

// ParseFile 解析文件
func (p *Parser) ParseFile(filename string) (*Script, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	s, err := p.parser.Parse(filename, file)
	if err != nil {
		return nil, fmt.Errorf("解析失败: %w", err)
	}
	return s, nil
}
