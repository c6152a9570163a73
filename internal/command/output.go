package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-phrase/internal/config"
	"github.com/lwmacct/251207-go-pkg-phrase/pkg/phrase"
	"github.com/lwmacct/251207-go-pkg-phrase/pkg/spantext"
)

var _ phrase.TextView = (*Output)(nil)

// Output 把渲染结果按配置的格式写入 io.Writer。
//
// 它是 [phrase.TextView] 的终端实现；SetText 没有返回值，写入错误通过 Err 取回。
type Output struct {
	w      io.Writer
	format string
	err    error
}

// document 是 json/yaml 输出的结构。
type document struct {
	Text  string          `json:"text"            yaml:"text"`
	Spans []spantext.Span `json:"spans,omitempty" yaml:"spans,omitempty"`
}

// NewOutput 创建输出，format 取值见 config.FormatText 等常量。
func NewOutput(w io.Writer, format string) *Output {
	return &Output{w: w, format: format}
}

// SetText 写入 text，只保留第一次出现的错误。
func (o *Output) SetText(text spantext.Text) {
	if o.err != nil {
		return
	}
	o.err = o.write(text)
}

// Err 返回写入过程中的第一个错误。
func (o *Output) Err() error { return o.err }

func (o *Output) write(text spantext.Text) error {
	doc := document{Text: text.String(), Spans: text.Spans()}

	switch o.format {
	case config.FormatJSON:
		enc := json.NewEncoder(o.w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)

		return enc.Encode(doc)
	case config.FormatYAML:
		enc := yamlv3.NewEncoder(o.w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}

		return enc.Close()
	case config.FormatText, "":
		s := doc.Text
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		_, err := io.WriteString(o.w, s)

		return err
	default:
		return fmt.Errorf("unsupported output format %q", o.format)
	}
}
