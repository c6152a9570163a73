// Package listjoin 按列表长度选择分隔符，把元素拼接成自然语言风格的字符串。
//
// 三种分隔符：
//   - 两个元素时使用 twoElement，例如 "one and two"
//   - 三个及以上元素时，除最后两个之间外使用 nonFinal，例如 "one, two, …"
//   - 三个及以上元素时，倒数第二与最后一个之间使用 final，例如 "…, two, and three"
//
// 示例：
//
//	j := listjoin.NewSeparators(" and ", ", ", ", and ")
//	s, _ := j.JoinStrings("one", "two", "three") // one, two, and three
package listjoin

import (
	"errors"
	"fmt"
	"iter"
	"reflect"

	"github.com/lwmacct/251207-go-pkg-phrase/pkg/spantext"
)

var (
	// ErrInvalidArgument 是所有参数错误的根。
	ErrInvalidArgument = errors.New("listjoin: invalid argument")
	ErrNilList         = fmt.Errorf("%w: list cannot be nil", ErrInvalidArgument)
	ErrEmptyList       = fmt.Errorf("%w: list cannot be empty", ErrInvalidArgument)
	ErrNilJoiner       = fmt.Errorf("%w: joiner cannot be nil", ErrInvalidArgument)
)

// ElementError 指出出错元素的下标。
type ElementError struct {
	Index  int
	Reason string
}

// Error implements the error interface.
func (e *ElementError) Error() string {
	return fmt.Sprintf("listjoin: %s at index %d", e.Reason, e.Index)
}

// Is 使 errors.Is(err, ErrInvalidArgument) 成立。
func (e *ElementError) Is(target error) bool { return target == ErrInvalidArgument }

// Formatter 把元素转换为文本。
type Formatter[T any] func(item T) spantext.Text

// Joiner 保存三种分隔符，构造后不可变，可并发使用。
type Joiner struct {
	twoElement string
	nonFinal   string
	final      string
}

// New 返回对所有长度都使用同一分隔符的 Joiner。
func New(separator string) *Joiner {
	return NewSeparators(separator, separator, separator)
}

// NewSeparators 返回使用三种分隔符的 Joiner。
func NewSeparators(twoElement, nonFinal, final string) *Joiner {
	return &Joiner{twoElement: twoElement, nonFinal: nonFinal, final: final}
}

// Join 拼接 items。format 为 nil 时使用默认转换：
// [spantext.Text] 原样使用，其他类型使用 fmt.Sprint。
//
// 所有元素在拼接前完成校验与格式化；j 或 items 为 nil、items 为空、含 nil 元素，
// 或格式化结果为 nil/空字符串时返回错误。
func Join[T any](j *Joiner, items []T, format Formatter[T]) (spantext.Text, error) {
	if j == nil {
		return nil, ErrNilJoiner
	}
	if items == nil {
		return nil, ErrNilList
	}
	if len(items) == 0 {
		return nil, ErrEmptyList
	}

	parts := make([]spantext.Text, len(items))
	for i, item := range items {
		text, err := formatOrError(item, i, format)
		if err != nil {
			return nil, err
		}
		parts[i] = text
	}

	return j.concat(parts), nil
}

// JoinSeq 拼接序列。分隔符的选择取决于总长度，因此会先遍历一次计数。
func JoinSeq[T any](j *Joiner, items iter.Seq[T], format Formatter[T]) (spantext.Text, error) {
	if j == nil {
		return nil, ErrNilJoiner
	}
	if items == nil {
		return nil, ErrNilList
	}

	size := 0
	for range items {
		size++
	}
	if size == 0 {
		return nil, ErrEmptyList
	}

	parts := make([]spantext.Text, 0, size)
	for item := range items {
		text, err := formatOrError(item, len(parts), format)
		if err != nil {
			return nil, err
		}
		parts = append(parts, text)
		if len(parts) == size {
			break
		}
	}
	if len(parts) != size {
		return nil, fmt.Errorf("%w: sequence yielded %d items on the first pass and %d on the second", ErrInvalidArgument, size, len(parts))
	}

	return j.concat(parts), nil
}

// JoinValues 拼接两个及以上的元素，使用默认转换。
func JoinValues[T any](j *Joiner, first, second T, rest ...T) (spantext.Text, error) {
	items := make([]T, 0, len(rest)+2)
	items = append(items, first, second)

	return Join(j, append(items, rest...), nil)
}

// JoinStrings 拼接字符串，结果不带 span。
func (j *Joiner) JoinStrings(items ...string) (string, error) {
	if items == nil {
		items = []string{}
	}
	text, err := Join(j, items, nil)
	if err != nil {
		return "", err
	}

	return text.String(), nil
}

// concat 按长度选择分隔符，parts 已保证非空。
func (j *Joiner) concat(parts []spantext.Text) spantext.Text {
	if len(parts) == 1 {
		return parts[0]
	}

	var b spantext.Builder
	if len(parts) == 2 {
		b.Append(parts[0])
		b.AppendString(j.twoElement)
		b.Append(parts[1])

		return b.Text()
	}

	secondLast := len(parts) - 2
	for i, part := range parts {
		b.Append(part)
		switch {
		case i < secondLast:
			b.AppendString(j.nonFinal)
		case i == secondLast:
			b.AppendString(j.final)
		}
	}

	return b.Text()
}

func formatOrError[T any](item T, index int, format Formatter[T]) (spantext.Text, error) {
	if isNil(item) {
		return nil, &ElementError{Index: index, Reason: "list element cannot be nil"}
	}

	var text spantext.Text
	if format != nil {
		text = format(item)
	} else {
		text = defaultFormat(item)
	}

	if isNil(text) {
		return nil, &ElementError{Index: index, Reason: "formatted list element cannot be nil"}
	}
	if text.Len() == 0 {
		return nil, &ElementError{Index: index, Reason: "formatted list element cannot be empty"}
	}

	return text, nil
}

func defaultFormat(item any) spantext.Text {
	if text, ok := item.(spantext.Text); ok {
		return text
	}

	return spantext.Plain(fmt.Sprint(item))
}

// isNil 同时识别 nil 接口与装在接口中的 nil 指针、map、切片等。
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
