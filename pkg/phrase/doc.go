// Package phrase 提供带命名占位符的字符串模板。
//
// 模式串中用花括号包围 key，例如 "Hi {first_name}"。构造时一次性解析，
// 之后可以反复绑定与渲染。渲染会保留原始模式串上未被替换部分的 span。
//
// # 语法
//
//  1. "{key}"：key 以小写字母 a-z 开头，后续为小写字母或下划线
//  2. "{{"：输出一个字面量 "{"
//  3. 其他字符原样输出，单独的 "}" 也是普通字符
//
// 以下写法在构造时直接失败，返回 [*SyntaxError]：
//   - "{}"：空 key
//   - "{Name}"、"{_foo}"、末尾的单个 "{"：首字符不是 a-z
//   - "{aName}"、"{name"：key 中出现非法字符或缺少 "}"
//
// # 绑定与渲染
//
//   - [Phrase.Bind] 只接受模式串中出现过的 key，否则返回 [*UnknownKeyError]
//   - [Phrase.BindOptional] 对未知 key 静默忽略
//   - [Phrase.Render] 要求所有 key 都已绑定，否则返回 [*MissingKeysError]，列出全部缺失的 key
//   - 渲染结果会缓存，任何绑定都会使缓存失效
//
// # 快速开始
//
//	p, err := phrase.From("Hi {first_name}, you are {age} years old.")
//	if err != nil {
//	    return err
//	}
//	_ = p.BindString("first_name", "Ann")
//	_ = p.BindInt("age", 5)
//	text, err := p.RenderString() // Hi Ann, you are 5 years old.
//
// # 并发
//
// 单个 [Phrase] 不是并发安全的，同一实例上的 Bind/Render 需要调用方加锁。
// 不同实例可以在不同 goroutine 中独立使用。
package phrase
