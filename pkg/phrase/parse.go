package phrase

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// eof 标记输入结束，不会与任何有效字节冲突。
const eof = -1

type tokenKind uint8

const (
	textToken  tokenKind = iota // 普通文本，原样保留
	braceToken                  // "{{" → "{"
	keyToken                    // "{key}" → 绑定值
)

// token 是模式串中的一个不可变片段。
type token struct {
	kind   tokenKind
	length int // textToken 的字节数
	key    string
}

// inputLen 返回 token 在原始模式串中占用的字节数。
func (t token) inputLen() int {
	switch t.kind {
	case braceToken:
		return 2
	case keyToken:
		// 加上首尾两个花括号
		return len(t.key) + 2
	default:
		return t.length
	}
}

// parser 是手写的单遍扫描器：从左到右，一个字节前瞻，不回溯。
type parser struct {
	src    string
	pos    int
	cur    int // 当前字节，或 eof
	tokens []token
	keys   map[string]struct{}
}

// parse 把模式串切分为 token 序列，并收集出现过的 key。
func parse(src string) ([]token, map[string]struct{}, error) {
	p := &parser{src: src, keys: make(map[string]struct{})}
	p.cur = p.at(0)

	for p.cur != eof {
		if p.cur != '{' {
			p.text()

			continue
		}

		next := p.lookahead()
		switch {
		case next == '{':
			p.escapedBrace()
		case next == '}':
			return nil, nil, p.errorf(p.pos, "empty key: {} at offset %d", p.pos)
		case isKeyStart(next):
			if err := p.key(); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, p.errorf(p.pos+1, "unexpected first character %s at offset %d; must be lower case a-z",
				p.describe(p.pos+1), p.pos+1)
		}
	}

	return p.tokens, p.keys, nil
}

// key 解析 "{some_key}"。
func (p *parser) key() error {
	p.consume() // '{'

	start := p.pos
	for isKeyChar(p.cur) {
		p.consume()
	}
	if p.cur != '}' {
		return p.errorf(p.pos, "unexpected character %s at offset %d; expecting lower case a-z, '_', or '}'",
			p.describe(p.pos), p.pos)
	}
	name := p.src[start:p.pos]
	p.consume() // '}'

	p.keys[name] = struct{}{}
	p.tokens = append(p.tokens, token{kind: keyToken, key: name})

	return nil
}

// text 消费到下一个 '{' 或输入末尾。
func (p *parser) text() {
	start := p.pos
	for p.cur != '{' && p.cur != eof {
		p.consume()
	}
	p.tokens = append(p.tokens, token{kind: textToken, length: p.pos - start})
}

func (p *parser) escapedBrace() {
	p.consume()
	p.consume()
	p.tokens = append(p.tokens, token{kind: braceToken})
}

func (p *parser) lookahead() int { return p.at(p.pos + 1) }

func (p *parser) consume() {
	p.pos++
	p.cur = p.at(p.pos)
}

func (p *parser) at(i int) int {
	if i >= len(p.src) {
		return eof
	}

	return int(p.src[i])
}

// describe 返回偏移处字符的可读形式；多字节字符按完整 rune 输出。
func (p *parser) describe(i int) string {
	if i >= len(p.src) {
		return "<end of input>"
	}
	r, _ := utf8.DecodeRuneInString(p.src[i:])

	return strconv.QuoteRune(r)
}

func (p *parser) errorf(offset int, format string, args ...any) *SyntaxError {
	char := rune(eof)
	if offset < len(p.src) {
		char, _ = utf8.DecodeRuneInString(p.src[offset:])
	}

	return &SyntaxError{Offset: offset, Char: char, Msg: fmt.Sprintf(format, args...)}
}

func isKeyStart(c int) bool { return c >= 'a' && c <= 'z' }

func isKeyChar(c int) bool { return isKeyStart(c) || c == '_' }
