package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-phrase/internal/command"
	"github.com/lwmacct/251207-go-pkg-phrase/internal/config"
	"github.com/lwmacct/251207-go-pkg-phrase/pkg/phrase"
	"github.com/lwmacct/251207-go-pkg-phrase/pkg/spantext"
)

func action(_ context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	pattern, err := readPattern(cmd)
	if err != nil {
		return err
	}
	spans, err := parseSpans(cmd.StringSlice("span"))
	if err != nil {
		return err
	}
	text, err := spantext.New(pattern, spans...)
	if err != nil {
		return err
	}

	var opts []phrase.Option
	if cfg.Render.Plain {
		opts = append(opts, phrase.WithPlainText())
	}
	p, err := phrase.FromText(text, opts...)
	if err != nil {
		return err
	}

	w := command.Writer(cmd)
	if cmd.Bool("keys") {
		for _, key := range p.Keys() {
			if _, err := fmt.Fprintln(w, key); err != nil {
				return err
			}
		}

		return nil
	}

	if err := bindAll(cmd, cfg, p); err != nil {
		return err
	}

	out := command.NewOutput(w, cfg.Output.Format)
	if err := p.Into(out); err != nil {
		return err
	}

	return out.Err()
}

// bindAll 依次绑定 --set 与 --list，后出现的同名 key 覆盖前者。
func bindAll(cmd *cli.Command, cfg *config.Config, p *phrase.Phrase) error {
	bind := p.Bind
	if cmd.Bool("optional") {
		bind = p.BindOptional
	}

	for _, raw := range cmd.StringSlice("set") {
		key, value, err := parseBinding(raw)
		if err != nil {
			return err
		}
		if err := bind(key, spantext.Plain(value)); err != nil {
			return err
		}
	}

	for _, raw := range cmd.StringSlice("list") {
		key, value, err := parseBinding(raw)
		if err != nil {
			return err
		}
		joined, err := command.JoinItems(cfg.List, strings.Split(value, ","))
		if err != nil {
			return fmt.Errorf("--list %s: %w", key, err)
		}
		if err := bind(key, joined); err != nil {
			return err
		}
	}

	return nil
}

func readPattern(cmd *cli.Command) (string, error) {
	path := cmd.String("file")
	if path == "" {
		if cmd.Args().Len() != 1 {
			return "", errors.New("expecting exactly one pattern argument or --file")
		}

		return cmd.Args().First(), nil
	}
	if cmd.Args().Len() > 0 {
		return "", errors.New("pattern argument and --file are mutually exclusive")
	}

	var r io.Reader
	if path == "-" {
		r = cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
	} else {
		f, err := os.Open(path) //nolint:gosec // path is provided by the user
		if err != nil {
			return "", fmt.Errorf("open pattern file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pattern: %w", err)
	}

	return strings.TrimSuffix(string(content), "\n"), nil
}

// parseBinding 解析 key=value，value 可以为空或包含 "="。
func parseBinding(raw string) (string, string, error) {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid binding %q: expecting key=value", raw)
	}

	return key, value, nil
}

// parseSpans 解析 tag:start:end。
func parseSpans(raw []string) ([]spantext.Span, error) {
	spans := make([]spantext.Span, 0, len(raw))
	for _, r := range raw {
		parts := strings.Split(r, ":")
		if len(parts) != 3 || parts[0] == "" {
			return nil, fmt.Errorf("invalid span %q: expecting tag:start:end", r)
		}
		start, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid span %q: %w", r, err)
		}
		end, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("invalid span %q: %w", r, err)
		}
		spans = append(spans, spantext.Span{Tag: parts[0], Start: start, End: end})
	}

	return spans, nil
}
