package phrase

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"github.com/lwmacct/251207-go-pkg-phrase/pkg/spantext"
)

// renderState 是渲染缓存的状态。
type renderState uint8

const (
	stateDirty    renderState = iota // 绑定有变化，需要重新渲染
	stateRendered                    // formatted 有效
)

// TextView 接收渲染结果，通常是 UI 文本组件的适配器。
type TextView interface {
	SetText(text spantext.Text)
}

// Phrase 是解析后的模式串及其绑定。
//
// 同一个 Phrase 不能在多个 goroutine 间并发使用，需由调用方自行加锁；
// 不同 Phrase 实例之间互不影响。
type Phrase struct {
	pattern   spantext.Text
	tokens    []token
	keys      map[string]struct{}
	values    map[string]spantext.Text
	newBuffer spantext.Factory

	state     renderState
	formatted spantext.Text
}

// From 解析模式串，语法错误时返回 [*SyntaxError]。
//
// 示例：
//
//	p, err := phrase.From("Hi {first_name}, you are {age} years old.")
func From(pattern string, opts ...Option) (*Phrase, error) {
	return FromText(spantext.Plain(pattern), opts...)
}

// FromText 解析带 span 的模式串，渲染结果会保留未被替换部分的 span。
func FromText(pattern spantext.Text, opts ...Option) (*Phrase, error) {
	if isNil(pattern) {
		return nil, ErrNilPattern
	}

	o := &options{newBuffer: spantext.NewSpanBuffer}
	for _, opt := range opts {
		opt(o)
	}

	tokens, keys, err := parse(pattern.String())
	if err != nil {
		return nil, err
	}

	return &Phrase{
		pattern:   pattern,
		tokens:    tokens,
		keys:      keys,
		values:    make(map[string]spantext.Text, len(keys)),
		newBuffer: o.newBuffer,
	}, nil
}

// MustFrom 调用 [From] 并在失败时 panic，适合常量模式串。
func MustFrom(pattern string, opts ...Option) *Phrase {
	p, err := From(pattern, opts...)
	if err != nil {
		panic(fmt.Sprintf("phrase: failed to parse pattern: %v", err))
	}

	return p
}

// Bind 为 key 绑定值，覆盖之前的绑定。
//
// key 不在模式串中时返回 [*UnknownKeyError]，value 为 nil 时返回 [*NilValueError]。
func (p *Phrase) Bind(key string, value spantext.Text) error {
	if !p.HasKey(key) {
		return &UnknownKeyError{Key: key}
	}
	if isNil(value) {
		return &NilValueError{Key: key}
	}
	p.values[key] = value
	p.state = stateDirty

	return nil
}

// BindString 是 [Phrase.Bind] 的字符串版本。
func (p *Phrase) BindString(key, value string) error {
	return p.Bind(key, spantext.Plain(value))
}

// BindInt 以十进制字符串绑定整数。
func (p *Phrase) BindInt(key string, value int) error {
	return p.Bind(key, spantext.Plain(strconv.Itoa(value)))
}

// BindOptional 与 [Phrase.Bind] 相同，但 key 不在模式串中时静默忽略。
func (p *Phrase) BindOptional(key string, value spantext.Text) error {
	if !p.HasKey(key) {
		return nil
	}

	return p.Bind(key, value)
}

// BindOptionalString 是 [Phrase.BindOptional] 的字符串版本。
func (p *Phrase) BindOptionalString(key, value string) error {
	return p.BindOptional(key, spantext.Plain(value))
}

// BindOptionalInt 是 [Phrase.BindOptional] 的整数版本。
func (p *Phrase) BindOptionalInt(key string, value int) error {
	return p.BindOptional(key, spantext.Plain(strconv.Itoa(value)))
}

// HasKey 报告 key 是否出现在模式串中。
func (p *Phrase) HasKey(key string) bool {
	_, ok := p.keys[key]

	return ok
}

// Keys 返回模式串中出现过的全部 key，已排序、去重。
func (p *Phrase) Keys() []string {
	keys := make([]string, 0, len(p.keys))
	for k := range p.keys {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

// Render 返回替换全部 key 后的文本。
//
// 结果会被缓存，直到下一次绑定。存在未绑定的 key 时返回 [*MissingKeysError]，
// 此时缓存状态不变。
func (p *Phrase) Render() (spantext.Text, error) {
	if p.state == stateRendered {
		return p.formatted, nil
	}

	if missing := p.missingKeys(); len(missing) > 0 {
		return nil, &MissingKeysError{Keys: missing}
	}

	// 复制原始模式串以保留 span，再按顺序展开每个 token。
	// 每个 token 的起点依赖前面所有 token 展开后的长度。
	buf := p.newBuffer(p.pattern)
	offset := 0
	for _, t := range p.tokens {
		switch t.kind {
		case textToken:
			offset += t.length
		case braceToken:
			buf.Replace(offset, offset+t.inputLen(), spantext.Plain("{"))
			offset++
		case keyToken:
			value := p.values[t.key]
			buf.Replace(offset, offset+t.inputLen(), value)
			offset += value.Len()
		}
	}

	p.formatted = buf.Text()
	p.state = stateRendered

	return p.formatted, nil
}

// RenderString 是 [Phrase.Render] 的字符串版本，丢弃 span。
func (p *Phrase) RenderString() (string, error) {
	text, err := p.Render()
	if err != nil {
		return "", err
	}

	return text.String(), nil
}

// Into 渲染并把结果交给 view。view 为 nil（包括 nil 指针）时返回 [ErrNilTarget]。
func (p *Phrase) Into(view TextView) error {
	if isNilView(view) {
		return ErrNilTarget
	}
	text, err := p.Render()
	if err != nil {
		return err
	}
	view.SetText(text)

	return nil
}

// String 返回未展开的原始模式串，仅用于调试。
func (p *Phrase) String() string {
	return p.pattern.String()
}

func isNil(t spantext.Text) bool {
	if t == nil {
		return true
	}
	s, ok := t.(*spantext.Spanned)

	return ok && s == nil
}

func isNilView(view TextView) bool {
	if view == nil {
		return true
	}
	v := reflect.ValueOf(view)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

func (p *Phrase) missingKeys() []string {
	var missing []string
	for k := range p.keys {
		if _, ok := p.values[k]; !ok {
			missing = append(missing, k)
		}
	}
	slices.Sort(missing)

	return missing
}
