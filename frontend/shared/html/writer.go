package html

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer writes markup to w and keeps the first error, so render code can
// chain writes and check once at the end.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func NewWriter(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

// Raw writes trusted markup.
func (hw *Writer) Raw(s string) *Writer {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
	return hw
}

// Text writes s HTML-escaped.
func (hw *Writer) Text(s string) *Writer {
	return hw.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (hw *Writer) Attr(name, value string) *Writer {
	return hw.Raw(" " + name + `="`).Text(value).Raw(`"`)
}

// Render streams a nested component.
func (hw *Writer) Render(c templ.Component) *Writer {
	if hw.err == nil && c != nil {
		hw.err = c.Render(hw.ctx, hw.w)
	}
	return hw
}

func (hw *Writer) Err() error {
	return hw.err
}
