package join

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-phrase/internal/command"
)

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	text, err := command.JoinItems(cfg.List, cmd.Args().Slice())
	if err != nil {
		return fmt.Errorf("join: %w", err)
	}

	out := command.NewOutput(command.Writer(cmd), cfg.Output.Format)
	out.SetText(text)

	return out.Err()
}
