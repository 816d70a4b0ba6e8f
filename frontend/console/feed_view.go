package console

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"shiptrack/frontend/shared/html"
)

const timeLayout = "2006-01-02 15:04:05"

func FeedPage(d FeedPageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := html.NewWriter(ctx, w)
		hw.Raw(`<section class="console"><h1>Feed</h1>`)
		hw.Render(html.StatusMessage(d.Status, d.Error))

		hw.Raw(`<dl class="facts">`)
		fact(hw, "Source", d.FeedURL)
		fact(hw, "Snapshot run", orDash(d.RunID))
		fact(hw, "Fetched at", formatTime(d.FetchedAt))
		fact(hw, "Rows", strconv.Itoa(d.RowCount))
		if d.LastRun != nil {
			fact(hw, "Last attempt", d.LastRun.Status+" at "+formatTime(d.LastRun.FinishedAt))
		}
		hw.Raw(`</dl>`)

		if d.CanRefresh {
			hw.Raw(`<form method="post" action="/console/feed/refresh"><button type="submit">Refresh now</button></form>`)
		}

		hw.Raw(`<h2>Refresh history</h2><table class="runs"><thead><tr>`)
		hw.Raw(`<th>Started</th><th>Trigger</th><th>Status</th><th>Rows</th><th>Error</th>`)
		hw.Raw(`</tr></thead><tbody>`)
		for _, run := range d.Runs {
			hw.Raw(`<tr`).Attr("class", "run-"+run.Status).Raw(`>`)
			td(hw, formatTime(run.StartedAt))
			td(hw, run.Trigger)
			td(hw, run.Status)
			td(hw, strconv.Itoa(run.RowCount))
			td(hw, run.Error)
			hw.Raw(`</tr>`)
		}
		hw.Raw(`</tbody></table>`)

		hw.Raw(`<h2>Recent exports</h2><table class="exports"><thead><tr><th>When</th><th>Type</th><th>Rows</th></tr></thead><tbody>`)
		for _, ex := range d.Exports {
			hw.Raw(`<tr>`)
			td(hw, ex.CreatedAt)
			td(hw, ex.ExportType)
			td(hw, strconv.Itoa(ex.RowCount))
			hw.Raw(`</tr>`)
		}
		hw.Raw(`</tbody></table></section>`)
		return hw.Err()
	})

	return html.Layout(html.Page{
		Title:  "Feed | shiptrack console",
		Header: html.ConsoleNav(d.Nav),
		Body:   body,
	})
}

func fact(hw *html.Writer, label, value string) {
	hw.Raw(`<dt>`).Text(label).Raw(`</dt><dd>`).Text(value).Raw(`</dd>`)
}

func td(hw *html.Writer, v string) {
	hw.Raw(`<td>`).Text(v).Raw(`</td>`)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
