package phrase_test

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-phrase/pkg/phrase"
	"github.com/lwmacct/251207-go-pkg-phrase/pkg/spantext"
)

func TestRender_Substitution(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		values  map[string]string
		want    string
	}{
		{name: "empty pattern", pattern: "", want: ""},
		{name: "no keys", pattern: "Hello", want: "Hello"},
		{name: "escaped brace only", pattern: "{{", want: "{"},
		{name: "escaped brace in text", pattern: "a{{b", want: "a{b"},
		{name: "single key", pattern: "{k}", values: map[string]string{"k": "v"}, want: "v"},
		{name: "simple", pattern: "hi {name}", values: map[string]string{"name": "Eric"}, want: "hi Eric"},
		{
			name:    "ignores key next to escaped brace",
			pattern: "hi {{name} {name}",
			values:  map[string]string{"name": "Bubba"},
			want:    "hi {name} Bubba",
		},
		{
			name:    "escaped brace immediately before key",
			pattern: "you are {{{name}",
			values:  map[string]string{"name": "Steve"},
			want:    "you are {Steve",
		},
		{
			name:    "several keys",
			pattern: "Hi {first_name}, you are {age} years old.",
			values:  map[string]string{"first_name": "Ann", "age": "5"},
			want:    "Hi Ann, you are 5 years old.",
		},
		{
			name:    "repeated key",
			pattern: "{name}-{name}-{name}",
			values:  map[string]string{"name": "ab"},
			want:    "ab-ab-ab",
		},
		{
			name:    "empty value",
			pattern: "[{x}]",
			values:  map[string]string{"x": ""},
			want:    "[]",
		},
		{
			name:    "value containing braces is not re-parsed",
			pattern: "{a}{b}",
			values:  map[string]string{"a": "{b}", "b": "{{"},
			want:    "{b}{{",
		},
		{
			name:    "multibyte text",
			pattern: "héllo {name} ✓",
			values:  map[string]string{"name": "wörld"},
			want:    "héllo wörld ✓",
		},
	}

	for _, tt := range tests {
		for _, mode := range []struct {
			name string
			opts []phrase.Option
		}{
			{name: "span"},
			{name: "plain", opts: []phrase.Option{phrase.WithPlainText()}},
		} {
			t.Run(tt.name+"/"+mode.name, func(t *testing.T) {
				p, err := phrase.From(tt.pattern, mode.opts...)
				require.NoError(t, err)
				for k, v := range tt.values {
					require.NoError(t, p.BindString(k, v))
				}

				got, err := p.RenderString()
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestBind_IntValues(t *testing.T) {
	p := phrase.MustFrom("hi {name}, you are {age} years old. {name}")
	require.NoError(t, p.BindString("name", "Abe"))
	require.NoError(t, p.BindInt("age", 20))

	got, err := p.RenderString()
	require.NoError(t, err)
	assert.Equal(t, "hi Abe, you are 20 years old. Abe", got)

	require.NoError(t, p.BindInt("age", -3))
	got, err = p.RenderString()
	require.NoError(t, err)
	assert.Equal(t, "hi Abe, you are -3 years old. Abe", got)
}

func TestBind_Errors(t *testing.T) {
	p := phrase.MustFrom("{gender}")

	err := p.BindString("bogusKey", "whatever")
	require.ErrorIs(t, err, phrase.ErrUnknownKey)
	var unknown *phrase.UnknownKeyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "bogusKey", unknown.Key)
	assert.Contains(t, err.Error(), "bogusKey")

	err = p.Bind("gender", nil)
	require.ErrorIs(t, err, phrase.ErrNilValue)
	assert.Equal(t, "phrase: nil value for 'gender'", err.Error())

	var typedNil *spantext.Spanned
	require.ErrorIs(t, p.Bind("gender", typedNil), phrase.ErrNilValue)

	// 未知 key 优先于 nil 值
	require.ErrorIs(t, p.Bind("other", nil), phrase.ErrUnknownKey)
}

func TestBindOptional(t *testing.T) {
	t.Run("ignores unknown key", func(t *testing.T) {
		p := phrase.MustFrom("Hello")
		require.NoError(t, p.BindOptionalString("key", "value"))
		require.NoError(t, p.BindOptionalInt("count", 3))
		require.NoError(t, p.BindOptional("key", nil))

		got, err := p.RenderString()
		require.NoError(t, err)
		assert.Equal(t, "Hello", got)
	})

	t.Run("binds known key", func(t *testing.T) {
		p := phrase.MustFrom("Hello {name} x{count}")
		require.NoError(t, p.BindOptionalString("name", "Eric"))
		require.NoError(t, p.BindOptionalInt("count", 3))

		got, err := p.RenderString()
		require.NoError(t, err)
		assert.Equal(t, "Hello Eric x3", got)
	})

	t.Run("nil value for known key still fails", func(t *testing.T) {
		p := phrase.MustFrom("Hello {name}")
		require.ErrorIs(t, p.BindOptional("name", nil), phrase.ErrNilValue)
	})

	t.Run("unknown key does not affect render validity", func(t *testing.T) {
		p := phrase.MustFrom("Hello {name}")
		require.NoError(t, p.BindOptionalString("other", "x"))

		_, err := p.Render()
		require.ErrorIs(t, err, phrase.ErrMissingKeys)
	})
}

func TestRender_MissingKeys(t *testing.T) {
	p := phrase.MustFrom("{c} {a} {b} {a}")
	require.NoError(t, p.BindString("b", "B"))

	got, err := p.Render()
	assert.Nil(t, got)
	require.ErrorIs(t, err, phrase.ErrMissingKeys)

	var missing *phrase.MissingKeysError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"a", "c"}, missing.Keys)
	assert.Equal(t, "phrase: missing keys: [a, c]", err.Error())
}

func TestRender_FailedRenderKeepsPreviousCache(t *testing.T) {
	p, err := phrase.FromText(spantext.MustNew("{a}!", spantext.Span{Tag: "b", Start: 3, End: 4}))
	require.NoError(t, err)
	require.NoError(t, p.BindString("a", "x"))
	first, err := p.Render()
	require.NoError(t, err)

	// 绑定失败不会使缓存失效
	require.Error(t, p.BindString("b", "y"))
	again, err := p.Render()
	require.NoError(t, err)
	assert.Same(t, first.(*spantext.Spanned), again.(*spantext.Spanned))
}

func TestRender_Cache(t *testing.T) {
	pattern := spantext.MustNew("hi {name}.", spantext.Span{Tag: "b", Start: 0, End: 2})
	p, err := phrase.FromText(pattern)
	require.NoError(t, err)

	require.NoError(t, p.BindString("name", "George"))
	first, err := p.Render()
	require.NoError(t, err)
	second, err := p.Render()
	require.NoError(t, err)
	assert.Same(t, first.(*spantext.Spanned), second.(*spantext.Spanned))
	assert.Equal(t, "hi George.", second.String())

	// 重新绑定后缓存失效，最后一次绑定生效
	require.NoError(t, p.BindString("name", "Bill"))
	require.NoError(t, p.BindString("name", "Abe"))
	third, err := p.Render()
	require.NoError(t, err)
	assert.Equal(t, "hi Abe.", third.String())
	assert.Equal(t, "hi George.", first.String())
}

func TestRender_RetainsSpans(t *testing.T) {
	pattern := spantext.MustNew("Hello {name}, you are {age} years old.",
		spantext.Span{Tag: "bold", Start: 5, End: 28},
		spantext.Span{Tag: "em", Start: 0, End: 5},
		spantext.Span{Tag: "tail", Start: 34, End: 37},
	)
	p, err := phrase.FromText(pattern)
	require.NoError(t, err)
	require.NoError(t, p.BindString("name", "Abe"))
	require.NoError(t, p.BindInt("age", 20))

	got, err := p.Render()
	require.NoError(t, err)
	assert.Equal(t, "Hello Abe, you are 20 years old.", got.String())
	assert.Equal(t, []spantext.Span{
		{Tag: "em", Start: 0, End: 5},
		{Tag: "bold", Start: 5, End: 22},
		{Tag: "tail", Start: 28, End: 31},
	}, got.Spans())
	assert.Equal(t, "old", got.String()[28:31])
}

func TestRender_SpanShiftAfterPlaceholder(t *testing.T) {
	// "{{" 收缩 1 字节，"{k}" 替换为 5 字节，之后的 span 平移 (5-3)-1 = 1
	pattern := spantext.MustNew("{{{k} end", spantext.Span{Tag: "u", Start: 6, End: 9})
	p, err := phrase.FromText(pattern)
	require.NoError(t, err)
	require.NoError(t, p.BindString("k", "value"))

	got, err := p.Render()
	require.NoError(t, err)
	assert.Equal(t, "{value end", got.String())
	assert.Equal(t, []spantext.Span{{Tag: "u", Start: 7, End: 10}}, got.Spans())
}

func TestRender_ValueSpans(t *testing.T) {
	p := phrase.MustFrom("Hi {name}!")
	require.NoError(t, p.Bind("name", spantext.MustNew("Ann", spantext.Span{Tag: "b", Start: 0, End: 3})))

	got, err := p.Render()
	require.NoError(t, err)
	assert.Equal(t, []spantext.Span{{Tag: "b", Start: 3, End: 6}}, got.Spans())
}

func TestRender_EmptySpanInsidePlaceholderStaysEmpty(t *testing.T) {
	pattern := spantext.MustNew("x{name}y", spantext.Span{Tag: "z", Start: 3, End: 3})
	p, err := phrase.FromText(pattern)
	require.NoError(t, err)
	require.NoError(t, p.BindString("name", "Ann"))

	got, err := p.Render()
	require.NoError(t, err)
	assert.Equal(t, "xAnny", got.String())
	assert.Equal(t, []spantext.Span{{Tag: "z", Start: 1, End: 1}}, got.Spans())
}

func TestRender_PlainTextDropsSpans(t *testing.T) {
	pattern := spantext.MustNew("Hello {name}", spantext.Span{Tag: "b", Start: 0, End: 5})
	p, err := phrase.FromText(pattern, phrase.WithPlainText())
	require.NoError(t, err)
	require.NoError(t, p.BindString("name", "Ann"))

	got, err := p.Render()
	require.NoError(t, err)
	assert.Equal(t, spantext.Plain("Hello Ann"), got)
}

func TestFromText_Nil(t *testing.T) {
	_, err := phrase.FromText(nil)
	require.ErrorIs(t, err, phrase.ErrNilPattern)
}

func TestString_ReturnsRawPattern(t *testing.T) {
	p := phrase.MustFrom("hello {name}")
	assert.Equal(t, "hello {name}", p.String())

	require.NoError(t, p.BindString("name", "Eric"))
	assert.Equal(t, "hello {name}", p.String())

	_, err := p.Render()
	require.NoError(t, err)
	assert.Equal(t, "hello {name}", p.String())
}

type recordingView struct {
	text spantext.Text
}

func (v *recordingView) SetText(text spantext.Text) { v.text = text }

func TestInto(t *testing.T) {
	t.Run("sets target text", func(t *testing.T) {
		p := phrase.MustFrom("Hello {user}!")
		require.NoError(t, p.BindString("user", "Eric"))

		view := &recordingView{}
		require.NoError(t, p.Into(view))
		assert.Equal(t, "Hello Eric!", view.text.String())
	})

	t.Run("nil target fails", func(t *testing.T) {
		p := phrase.MustFrom("Hello")
		require.ErrorIs(t, p.Into(nil), phrase.ErrNilTarget)
	})

	t.Run("nil pointer target fails", func(t *testing.T) {
		p := phrase.MustFrom("Hello")
		var view *recordingView
		assert.NotPanics(t, func() {
			require.ErrorIs(t, p.Into(view), phrase.ErrNilTarget)
		})
	})

	t.Run("missing keys leave target untouched", func(t *testing.T) {
		p := phrase.MustFrom("Hello {user}!")
		view := &recordingView{}
		require.ErrorIs(t, p.Into(view), phrase.ErrMissingKeys)
		assert.Nil(t, view.text)
	})
}

func TestWithBuffer(t *testing.T) {
	calls := 0
	factory := func(initial spantext.Text) spantext.Editable {
		calls++

		return spantext.NewPlainBuffer(initial)
	}

	p, err := phrase.From("{a}", phrase.WithBuffer(factory))
	require.NoError(t, err)
	require.NoError(t, p.BindString("a", "x"))

	_, err = p.Render()
	require.NoError(t, err)
	_, err = p.Render()
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRender_DistinctInstancesConcurrently(t *testing.T) {
	const workers = 8

	var wg sync.WaitGroup
	results := make([]string, workers)
	errs := make([]error, workers)
	for i := range workers {
		wg.Go(func() {
			p := phrase.MustFrom("worker {id}: {name}")
			if err := p.BindInt("id", i); err != nil {
				errs[i] = err

				return
			}
			if err := p.BindString("name", "n"+strconv.Itoa(i)); err != nil {
				errs[i] = err

				return
			}
			for range 100 {
				results[i], errs[i] = p.RenderString()
				if errs[i] != nil {
					return
				}
				if err := p.BindInt("id", i); err != nil {
					errs[i] = err

					return
				}
			}
		})
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, "worker "+strconv.Itoa(i)+": n"+strconv.Itoa(i), results[i])
	}
}
