package html

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"shiptrack/models"
)

// TopNavData is shared with console page renderers.
type TopNavData struct {
	Username string
	Role     string
}

func BuildTopNavData(session models.Session) TopNavData {
	return TopNavData{Username: session.User.Username, Role: session.User.Role}
}

// ConsoleNav is the header of the authenticated console.
func ConsoleNav(d TopNavData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(ctx, w)
		hw.Raw(`<header class="topnav"><a class="brand" href="/">shiptrack</a>`)
		hw.Raw(`<nav><a href="/console/feed">Feed</a>`)
		if d.Role == "admin" {
			hw.Raw(`<a href="/console/users">Users</a>`)
		}
		hw.Raw(`</nav>`)
		hw.Raw(`<div class="who">`).Text(d.Username).Raw(` <span class="role">`).Text(d.Role).Raw(`</span>`)
		hw.Raw(`<form method="post" action="/logout"><button type="submit">Log out</button></form></div>`)
		hw.Raw(`</header>`)
		return hw.Err()
	})
}
