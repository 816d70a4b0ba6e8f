package login

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"shiptrack/frontend/shared/html"
)

func GetLoginScreen(errorMessage string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := html.NewWriter(ctx, w)
		hw.Raw(`<section class="login-card"><h1>shiptrack console</h1>`)
		hw.Render(html.StatusMessage("", errorMessage))
		hw.Raw(`<form method="post" action="/login">`)
		hw.Raw(`<label>Username<input type="text" name="username" autocomplete="username" required autofocus></label>`)
		hw.Raw(`<label>Password<input type="password" name="password" autocomplete="current-password" required></label>`)
		hw.Raw(`<button type="submit">Sign in</button></form>`)
		hw.Raw(`<p class="hint"><a href="/">Back to dashboard</a></p></section>`)
		return hw.Err()
	})
	return html.Layout(html.Page{Title: "Sign in | shiptrack", Body: body})
}
