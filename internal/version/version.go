// Package version 提供版本信息与 version 子命令。
//
// 构建时通过 -ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/251207-go-pkg-phrase/internal/version.Version=v1.2.0"
package version

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称。
const AppRawName = "phrase"

// 构建信息，由 -ldflags 覆盖。
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// GetVersion 返回版本号。
func GetVersion() string {
	return Version
}

// String 返回完整的版本描述。
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", AppRawName, Version, Commit, BuildTime, runtime.Version())
}

// Command 版本命令
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer
		if w == nil {
			w = os.Stdout
		}
		_, err := fmt.Fprintln(w, String())

		return err
	},
}
