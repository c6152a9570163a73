// Package spantext 提供带格式区间 (span) 的文本抽象。
//
// span 是覆盖一段文本的标签区间，与字符本身无关，例如 "bold" 覆盖 [5, 28)。
// 偏移量以字节计，区间左闭右开。
//
// # 两种实现
//
//   - [Plain]：纯文本，没有 span，替换即字符串拼接
//   - [Spanned]：携带 span，替换时按规则重新映射区间
//
// 渲染器只依赖 [Editable] 接口，由 [Factory] 在构造时选择具体实现。
//
// # 替换规则
//
// [NewSpanBuffer] 返回的缓冲区在 Replace(start, end, with) 时：
//
//  1. 完全位于 start 之前的 span 保持不变
//  2. 位于 end 之后的 span 平移 len(with) - (end - start)
//  3. 与替换区间相交的 span，落在区间内的端点收缩到新文本边界
//  4. 原本非空、替换后长度为 0 的 span 被丢弃
//  5. with 自带的 span 平移 start 后加入
//
// # 快速开始
//
//	text := spantext.MustNew("Hello {name}", spantext.Span{Tag: "bold", Start: 0, End: 5})
//	buf := spantext.NewSpanBuffer(text)
//	buf.Replace(6, 12, spantext.Plain("Ann"))
//	fmt.Println(buf.Text()) // Hello Ann
package spantext
