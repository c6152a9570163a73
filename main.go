package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-phrase/internal/command/join"
	"github.com/lwmacct/251207-go-pkg-phrase/internal/command/render"
	"github.com/lwmacct/251207-go-pkg-phrase/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "带 span 的短语模板与列表拼接工具",
		Version: version.GetVersion(),

		DisableSliceFlagSeparator: true,

		Commands: []*cli.Command{
			version.Command,
			render.Command,
			join.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
