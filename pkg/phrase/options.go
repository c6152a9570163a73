package phrase

import "github.com/lwmacct/251207-go-pkg-phrase/pkg/spantext"

// options 模板构造选项。
type options struct {
	newBuffer spantext.Factory // 渲染缓冲区，决定是否保留 span
}

// Option 模板构造选项函数。
type Option func(*options)

// WithPlainText 使用纯文本缓冲区渲染，输出不带 span。
func WithPlainText() Option {
	return func(o *options) {
		o.newBuffer = spantext.NewPlainBuffer
	}
}

// WithBuffer 指定自定义渲染缓冲区。
//
// 默认使用 [spantext.NewSpanBuffer]；传入 nil 时保持默认。
func WithBuffer(factory spantext.Factory) Option {
	return func(o *options) {
		if factory != nil {
			o.newBuffer = factory
		}
	}
}
