// Package command 提供 render 与 join 命令共用的配置、flag 与输出。
package command

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-phrase/internal/config"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// CommonFlags 返回各命令共用的 flags。
//
// 每次调用都返回新的实例，flag 会保存解析状态，不能在命令之间共享。
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径 (默认搜索 .phrase.yaml 等)",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "输出调试日志",
		},
		&cli.StringFlag{
			Name:    "output-format",
			Aliases: []string{"o"},
			Value:   Defaults.Output.Format,
			Usage:   "输出格式 (text|json|yaml)",
		},
	}
}

// ListFlags 返回列表拼接相关的 flags。
func ListFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "list-two-element",
			Value: Defaults.List.TwoElement,
			Usage: "两个元素之间的分隔符",
		},
		&cli.StringFlag{
			Name:  "list-non-final",
			Value: Defaults.List.NonFinal,
			Usage: "三个及以上元素时的非末尾分隔符",
		},
		&cli.StringFlag{
			Name:  "list-final",
			Value: Defaults.List.Final,
			Usage: "三个及以上元素时最后两个元素之间的分隔符",
		},
		&cli.StringFlag{
			Name:  "list-case",
			Value: Defaults.List.Case,
			Usage: "元素大小写转换 (none|upper|lower|title)",
		},
	}
}

// Setup 按 --debug 设置默认 logger 并加载配置。
func Setup(cmd *cli.Command) (*config.Config, error) {
	if cmd.Bool("debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	return config.LoadCmd(cmd)
}

// Writer 返回根命令的输出，未设置时为标准输出。
func Writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}
