// Package join 提供列表拼接命令。
package join

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-phrase/internal/command"
)

// Command 列表拼接命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "join",
		Usage:     "按元素个数选择分隔符拼接列表，例如 \"a, b, and c\"",
		ArgsUsage: "item...",
		Action:    action,
		Flags:     append(command.CommonFlags(), command.ListFlags()...),
	}
}
