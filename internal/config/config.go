// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - --config 指定，或按 DefaultPaths 搜索
//  3. 环境变量 - 前缀 PHRASE_
//  4. CLI flags - 仅用户显式设置的 flag
package config

import (
	"fmt"
	"slices"
)

// 输出格式。
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// 列表元素的大小写转换。
const (
	CaseNone  = "none"
	CaseUpper = "upper"
	CaseLower = "lower"
	CaseTitle = "title"
)

// Config 应用配置。
type Config struct {
	Render RenderConfig `json:"render" desc:"模板渲染配置"`
	List   ListConfig   `json:"list" desc:"列表拼接配置"`
	Output OutputConfig `json:"output" desc:"输出配置"`
}

// RenderConfig 模板渲染配置。
type RenderConfig struct {
	Plain bool `json:"plain" desc:"按纯文本渲染，丢弃 span"`
}

// ListConfig 列表拼接配置。
//
//nolint:tagliatelle
type ListConfig struct {
	TwoElement string `json:"two-element" desc:"两个元素之间的分隔符"`
	NonFinal   string `json:"non-final" desc:"三个及以上元素时的非末尾分隔符"`
	Final      string `json:"final" desc:"三个及以上元素时最后两个元素之间的分隔符"`
	Case       string `json:"case" desc:"元素大小写转换 (none|upper|lower|title)"`
}

// OutputConfig 输出配置。
type OutputConfig struct {
	Format string `json:"format" desc:"输出格式 (text|json|yaml)"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		List: ListConfig{
			TwoElement: " and ",
			NonFinal:   ", ",
			Final:      ", and ",
			Case:       CaseNone,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// Validate 校验枚举类配置项。
func (c *Config) Validate() error {
	if !slices.Contains([]string{FormatText, FormatJSON, FormatYAML}, c.Output.Format) {
		return fmt.Errorf("invalid output.format %q: expecting text, json or yaml", c.Output.Format)
	}
	if !slices.Contains([]string{CaseNone, CaseUpper, CaseLower, CaseTitle}, c.List.Case) {
		return fmt.Errorf("invalid list.case %q: expecting none, upper, lower or title", c.List.Case)
	}

	return nil
}
