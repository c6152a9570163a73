package spantext

import (
	"fmt"
	"slices"
	"strings"
)

// Editable 是可原地替换的文本缓冲区。
//
// Replace 的区间越界属于调用方的编程错误，会 panic。
type Editable interface {
	Replace(start, end int, with Text)
	Len() int
	// Text 返回当前内容的快照，后续 Replace 不会影响已返回的值。
	Text() Text
}

// Factory 以原始文本为初始内容创建缓冲区。
type Factory func(initial Text) Editable

var (
	_ Factory = NewPlainBuffer
	_ Factory = NewSpanBuffer
)

// ═══════════════════════════════════════════════════════════════════════════
// 纯文本缓冲区
// ═══════════════════════════════════════════════════════════════════════════

type plainBuffer struct {
	text string
}

// NewPlainBuffer 创建丢弃所有 span 的缓冲区。
func NewPlainBuffer(initial Text) Editable {
	return &plainBuffer{text: initial.String()}
}

func (b *plainBuffer) Replace(start, end int, with Text) {
	checkRange(start, end, len(b.text))
	b.text = b.text[:start] + with.String() + b.text[end:]
}

func (b *plainBuffer) Len() int { return len(b.text) }

func (b *plainBuffer) Text() Text { return Plain(b.text) }

// ═══════════════════════════════════════════════════════════════════════════
// 带 span 的缓冲区
// ═══════════════════════════════════════════════════════════════════════════

type spanBuffer struct {
	text  string
	spans []Span
}

// NewSpanBuffer 创建保留并重新映射 span 的缓冲区。
func NewSpanBuffer(initial Text) Editable {
	return &spanBuffer{text: initial.String(), spans: initial.Spans()}
}

func (b *spanBuffer) Replace(start, end int, with Text) {
	checkRange(start, end, len(b.text))

	newEnd := start + with.Len()
	delta := newEnd - end

	kept := b.spans[:0]
	for _, s := range b.spans {
		moved, ok := remap(s, start, end, newEnd, delta)
		if ok {
			kept = append(kept, moved)
		}
	}
	for _, s := range with.Spans() {
		kept = append(kept, Span{Tag: s.Tag, Start: s.Start + start, End: s.End + start})
	}

	b.spans = sortSpans(kept)
	b.text = b.text[:start] + with.String() + b.text[end:]
}

// remap 计算 span 在 [start, end) 被替换为 [start, newEnd) 之后的位置。
func remap(s Span, start, end, newEnd, delta int) (Span, bool) {
	switch {
	case s.End <= start:
		return s, true
	case s.Start >= end:
		return Span{Tag: s.Tag, Start: s.Start + delta, End: s.End + delta}, true
	case s.Len() == 0:
		// 落在替换范围内部的零宽 span 保持零宽
		return Span{Tag: s.Tag, Start: start, End: start}, true
	}

	out := Span{Tag: s.Tag, Start: s.Start, End: s.End + delta}
	if s.Start > start {
		out.Start = start
	}
	if s.End < end {
		out.End = newEnd
	}
	if out.Len() == 0 && s.Len() > 0 {
		return Span{}, false
	}

	return out, true
}

func (b *spanBuffer) Len() int { return len(b.text) }

func (b *spanBuffer) Text() Text {
	if len(b.spans) == 0 {
		return Plain(b.text)
	}

	return &Spanned{text: b.text, spans: slices.Clone(b.spans)}
}

func checkRange(start, end, n int) {
	if start < 0 || end < start || end > n {
		panic(fmt.Sprintf("spantext: replace range [%d,%d) out of bounds for length %d", start, end, n))
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 拼接
// ═══════════════════════════════════════════════════════════════════════════

// Builder 按顺序拼接文本并保留 span，零值可用。
type Builder struct {
	sb    strings.Builder
	spans []Span
}

// Append 追加 t，t 的 span 平移到追加位置。
func (b *Builder) Append(t Text) {
	offset := b.sb.Len()
	for _, s := range t.Spans() {
		b.spans = append(b.spans, Span{Tag: s.Tag, Start: s.Start + offset, End: s.End + offset})
	}
	b.sb.WriteString(t.String())
}

// AppendString 追加不带 span 的字符串。
func (b *Builder) AppendString(s string) {
	b.sb.WriteString(s)
}

// Len 返回已写入的字节数。
func (b *Builder) Len() int { return b.sb.Len() }

// Text 返回拼接结果；没有任何 span 时返回 [Plain]。
func (b *Builder) Text() Text {
	if len(b.spans) == 0 {
		return Plain(b.sb.String())
	}

	return &Spanned{text: b.sb.String(), spans: sortSpans(slices.Clone(b.spans))}
}
