// Package render 提供模板渲染命令。
package render

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-phrase/internal/command"
)

// Command 渲染命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "解析模板并替换 {key} 占位符",
		ArgsUsage: "[pattern]",
		Action:    action,

		// --set greeting=Hi, you 中的逗号属于值本身
		DisableSliceFlagSeparator: true,

		Flags: append(append(command.CommonFlags(), command.ListFlags()...),
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "从文件读取模板，\"-\" 表示标准输入",
			},
			&cli.StringSliceFlag{
				Name:    "set",
				Aliases: []string{"s"},
				Usage:   "绑定 key=value，可重复",
			},
			&cli.StringSliceFlag{
				Name:  "list",
				Usage: "绑定 key=a,b,c，按 list 配置拼接后作为值，可重复",
			},
			&cli.StringSliceFlag{
				Name:  "span",
				Usage: "模板上的 span，格式 tag:start:end，可重复",
			},
			&cli.BoolFlag{
				Name:  "optional",
				Usage: "忽略模板中不存在的 key",
			},
			&cli.BoolFlag{
				Name:  "keys",
				Usage: "只列出模板中的 key，不渲染",
			},
			&cli.BoolFlag{
				Name:  "render-plain",
				Value: command.Defaults.Render.Plain,
				Usage: "按纯文本渲染，丢弃 span",
			},
		),
	}
}
