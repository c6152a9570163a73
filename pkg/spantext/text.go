package spantext

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrSpanRange 表示 span 的区间超出文本范围或首尾颠倒。
var ErrSpanRange = errors.New("spantext: span out of range")

// Span 是覆盖 [Start, End) 的标签区间。
type Span struct {
	Tag   string `json:"tag"   yaml:"tag"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end"   yaml:"end"`
}

// Len 返回区间长度。
func (s Span) Len() int { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%s[%d,%d)", s.Tag, s.Start, s.End)
}

// Text 是只读的、可能携带 span 的文本。
type Text interface {
	String() string
	Len() int
	// Spans 返回 span 的副本，调用方可以自由修改。
	Spans() []Span
}

// Plain 是不带 span 的文本。
type Plain string

func (p Plain) String() string { return string(p) }

// Len 返回字节长度。
func (p Plain) Len() int { return len(p) }

// Spans 总是返回 nil。
func (p Plain) Spans() []Span { return nil }

// Spanned 是携带 span 的不可变文本。
type Spanned struct {
	text  string
	spans []Span
}

// New 创建带 span 的文本。
//
// 每个 span 必须满足 0 <= Start <= End <= len(text)，否则返回 [ErrSpanRange]。
func New(text string, spans ...Span) (*Spanned, error) {
	for _, s := range spans {
		if s.Start < 0 || s.End < s.Start || s.End > len(text) {
			return nil, fmt.Errorf("%w: %s over %d bytes", ErrSpanRange, s, len(text))
		}
	}

	return &Spanned{text: text, spans: sortSpans(slices.Clone(spans))}, nil
}

// MustNew 调用 [New] 并在失败时 panic，适合字面量。
func MustNew(text string, spans ...Span) *Spanned {
	s, err := New(text, spans...)
	if err != nil {
		panic(err)
	}

	return s
}

func (s *Spanned) String() string { return s.text }

// Len 返回字节长度。
func (s *Spanned) Len() int { return len(s.text) }

// Spans 返回按起点排序的 span 副本。
func (s *Spanned) Spans() []Span { return slices.Clone(s.spans) }

// HasSpans 报告 t 是否携带至少一个 span。
func HasSpans(t Text) bool {
	if _, ok := t.(Plain); ok {
		return false
	}

	return len(t.Spans()) > 0
}

// Concat 拼接多段文本，保留各段的 span。
func Concat(parts ...Text) Text {
	var b Builder
	for _, p := range parts {
		b.Append(p)
	}

	return b.Text()
}

// sortSpans 按 (Start, End, Tag) 稳定排序，保证输出可比较。
func sortSpans(spans []Span) []Span {
	slices.SortStableFunc(spans, func(a, b Span) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.End, b.End); c != 0 {
			return c
		}

		return cmp.Compare(a.Tag, b.Tag)
	})

	return spans
}
