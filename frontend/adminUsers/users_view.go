package adminusers

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"shiptrack/frontend/shared/html"
)

func UsersListPage(d PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := html.NewWriter(ctx, w)
		hw.Raw(`<section class="console"><h1>Users</h1>`)
		hw.Render(html.StatusMessage(d.Status, d.ErrorMessage))

		hw.Raw(`<table class="users"><thead><tr><th>ID</th><th>Username</th><th>Role</th><th>Created</th><th>Last seen</th></tr></thead><tbody>`)
		for _, u := range d.Users {
			hw.Raw(`<tr><td>`).Text(strconv.FormatInt(u.ID, 10)).Raw(`</td>`)
			hw.Raw(`<td>`).Text(u.Username).Raw(`</td>`)
			hw.Raw(`<td>`).Text(u.Role).Raw(`</td>`)
			hw.Raw(`<td>`).Text(u.CreatedAt.Local().Format(timeLayout)).Raw(`</td>`)
			hw.Raw(`<td>`).Text(lastSeen(u)).Raw(`</td></tr>`)
		}
		hw.Raw(`</tbody></table>`)

		hw.Raw(`<h2>Add user</h2><form method="post"`).Attr("action", usersPath).Raw(` class="stack">`)
		hw.Raw(`<label>Username <input name="username" required autocomplete="off"></label>`)
		hw.Raw(`<label>Password <input type="password" name="password" required autocomplete="new-password"></label>`)
		hw.Raw(`<label>Role <select name="role">`)
		for _, role := range d.Roles {
			hw.Raw(`<option`).Attr("value", role).Raw(`>`).Text(role).Raw(`</option>`)
		}
		hw.Raw(`</select></label><button type="submit">Create</button></form></section>`)
		return hw.Err()
	})

	return html.Layout(html.Page{
		Title:  "Users | shiptrack console",
		Header: html.ConsoleNav(d.Nav),
		Body:   body,
	})
}

const timeLayout = "2006-01-02 15:04"

func lastSeen(u UserView) string {
	if u.LastSeen.IsZero() {
		return "-"
	}
	return u.LastSeen.Local().Format(timeLayout)
}
