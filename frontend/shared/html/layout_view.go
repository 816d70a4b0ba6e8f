package html

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Page is the shell every screen renders into.
type Page struct {
	Lang  string
	Title string
	// RefreshSeconds adds a meta refresh when positive.
	RefreshSeconds int
	Header         templ.Component
	Body           templ.Component
	Footer         templ.Component
}

func Layout(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(ctx, w)
		hw.Raw(`<!doctype html><html`).Attr("lang", htmlLang(p.Lang)).Raw(`><head><meta charset="utf-8">`)
		hw.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		if p.RefreshSeconds > 0 {
			hw.Raw(`<meta http-equiv="refresh"`).Attr("content", strconv.Itoa(p.RefreshSeconds)).Raw(`>`)
		}
		hw.Raw(`<title>`).Text(p.Title).Raw(`</title>`)
		hw.Raw(`<link rel="stylesheet" href="/assets/app.css"></head><body>`)
		hw.Render(p.Header)
		hw.Raw(`<main class="container">`).Render(p.Body).Raw(`</main>`)
		hw.Render(p.Footer)
		hw.Render(CSRFFormScript())
		hw.Raw(`</body></html>`)
		return hw.Err()
	})
}

func htmlLang(lang string) string {
	switch lang {
	case "ja":
		return "ja"
	case "zh":
		return "zh-Hant"
	}
	return "en"
}

// StatusMessage renders the ?status= / ?error= banner used after redirects.
func StatusMessage(status, errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(ctx, w)
		if status != "" {
			hw.Raw(`<p class="flash flash-ok">`).Text(status).Raw(`</p>`)
		}
		if errMsg != "" {
			hw.Raw(`<p class="flash flash-error">`).Text(errMsg).Raw(`</p>`)
		}
		return hw.Err()
	})
}
