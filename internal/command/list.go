package command

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lwmacct/251207-go-pkg-phrase/internal/config"
	"github.com/lwmacct/251207-go-pkg-phrase/pkg/listjoin"
	"github.com/lwmacct/251207-go-pkg-phrase/pkg/spantext"
)

// JoinItems 按 list 配置拼接 items。
func JoinItems(cfg config.ListConfig, items []string) (spantext.Text, error) {
	if items == nil {
		items = []string{}
	}
	j := listjoin.NewSeparators(cfg.TwoElement, cfg.NonFinal, cfg.Final)

	return listjoin.Join(j, items, ItemFormatter(cfg.Case))
}

// ItemFormatter 返回按大小写配置转换元素的 formatter，CaseNone 时返回 nil。
func ItemFormatter(c string) listjoin.Formatter[string] {
	var caser cases.Caser
	switch c {
	case config.CaseUpper:
		caser = cases.Upper(language.Und)
	case config.CaseLower:
		caser = cases.Lower(language.Und)
	case config.CaseTitle:
		caser = cases.Title(language.Und)
	default:
		return nil
	}

	return func(item string) spantext.Text {
		return spantext.Plain(caser.String(item))
	}
}
