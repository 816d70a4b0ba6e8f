package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"shiptrack/frontend/shared/html"
	"shiptrack/frontend/shared/i18n"
	"shiptrack/infrastructure/shipment"
)

func TablePage(d PageData) templ.Component {
	return html.Layout(html.Page{
		Lang:           d.Lang,
		Title:          i18n.T(d.Lang, "appTitle"),
		RefreshSeconds: RefreshSeconds,
		Header:         pageHeader(d),
		Body:           tableSection(d),
		Footer:         pageFooter(d),
	})
}

func CalendarPage(d PageData) templ.Component {
	return html.Layout(html.Page{
		Lang:           d.Lang,
		Title:          i18n.T(d.Lang, "calTitle") + " | " + i18n.T(d.Lang, "appTitle"),
		RefreshSeconds: RefreshSeconds,
		Header:         pageHeader(d),
		Body:           calendarSection(d),
		Footer:         pageFooter(d),
	})
}

func pageHeader(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := tr(d.Lang)
		hw := html.NewWriter(ctx, w)
		hw.Raw(`<header class="app-header"><div><h1>`).Text(t("appTitle")).Raw(`</h1>`)
		hw.Raw(`<p class="subtitle">`).Text(t("appSubtitle")).Raw(`</p></div>`)
		hw.Raw(`<div class="header-side"><span class="badge">`).Text(t("badgeReadonly")).Raw(`</span>`)
		hw.Raw(`<div class="lang-switch">`)
		for _, lang := range i18n.Langs {
			class := "lang-btn"
			if lang == d.Lang {
				class += " active"
			}
			hw.Raw(`<a`).Attr("class", class).Attr("href", langHref(d.State, lang)).Raw(`>`).Text(langName(lang)).Raw(`</a>`)
		}
		hw.Raw(`</div></div></header>`)

		table := d.State
		table.Mode = shipment.ModeTable
		cal := d.State
		cal.Mode = shipment.ModeCalendar
		hw.Raw(`<nav class="tabs">`)
		tabLink(hw, Href(table), t("tabTable"), d.State.Mode == shipment.ModeTable)
		tabLink(hw, Href(cal), t("tabCalendar"), d.State.Mode == shipment.ModeCalendar)
		hw.Raw(`</nav>`)
		return hw.Err()
	})
}

func tabLink(hw *html.Writer, href, label string, active bool) {
	class := "tab-button"
	if active {
		class += " active"
	}
	hw.Raw(`<a`).Attr("class", class).Attr("href", href).Raw(`>`).Text(label).Raw(`</a>`)
}

func filterForm(hw *html.Writer, d PageData) {
	t := tr(d.Lang)
	s := d.State
	action := "/"
	if s.Mode == shipment.ModeCalendar {
		action = "/calendar"
	}
	hw.Raw(`<form class="filters" method="get"`).Attr("action", action).Raw(`>`)
	hw.Raw(`<input type="search" name="q" id="search-input"`).
		Attr("value", s.Criteria.Keyword).
		Attr("placeholder", t("searchPlaceholder")).Raw(`>`)

	hw.Raw(`<label>`).Text(t("filterSO"))
	statusSelect(hw, "so", s.Criteria.SO, t("filterAll"), t("filterSOdone"), t("filterSOpending"))
	hw.Raw(`</label><label>`).Text(t("filterTelex"))
	statusSelect(hw, "telex", s.Criteria.Telex, t("filterAll"), t("filterTelexDone"), t("filterTelexPending"))
	hw.Raw(`</label>`)

	if s.Criteria.SortKey != shipment.SortNone {
		hidden(hw, "sort", s.Criteria.SortKey.String())
		hidden(hw, "order", s.Criteria.SortOrder.String())
	}
	if s.Mode == shipment.ModeCalendar {
		hidden(hw, "view", s.View.String())
		hidden(hw, "date", shipment.FormatDate(s.Anchor))
	}
	hw.Raw(`<button type="submit">`).Text(t("btnApply")).Raw(`</button></form>`)
}

func statusSelect(hw *html.Writer, name string, current shipment.StatusFilter, all, done, pending string) {
	hw.Raw(`<select`).Attr("name", name).Attr("id", "filter-"+name).Raw(`>`)
	for _, opt := range []struct {
		f     shipment.StatusFilter
		label string
	}{
		{shipment.FilterAll, all},
		{shipment.FilterDone, done},
		{shipment.FilterPending, pending},
	} {
		hw.Raw(`<option`).Attr("value", opt.f.String())
		if opt.f == current {
			hw.Raw(` selected`)
		}
		hw.Raw(`>`).Text(opt.label).Raw(`</option>`)
	}
	hw.Raw(`</select>`)
}

func hidden(hw *html.Writer, name, value string) {
	hw.Raw(`<input type="hidden"`).Attr("name", name).Attr("value", value).Raw(`>`)
}

func tableSection(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := tr(d.Lang)
		s := d.State
		rows := s.Filtered()

		hw := html.NewWriter(ctx, w)
		hw.Raw(`<section id="table-view" class="view active"><div class="section-head"><h2>`).Text(t("tableTitle")).Raw(`</h2>`)
		hw.Raw(`<p class="desc">`).Text(t("tableDesc")).Raw(`</p></div>`)
		filterForm(hw, d)

		query := Values(s).Encode()
		hw.Raw(`<div class="exports">`)
		for _, ex := range []struct{ ext, key string }{{"csv", "exportCSV"}, {"xlsx", "exportXLSX"}, {"pdf", "exportPDF"}} {
			href := "/exports/shipments." + ex.ext
			if query != "" {
				href += "?" + query
			}
			hw.Raw(`<a class="export-link"`).Attr("href", href).Raw(`>`).Text(t(ex.key)).Raw(`</a>`)
		}
		hw.Raw(`</div>`)

		hw.Raw(`<div class="table-wrap"><table class="shipments"><thead><tr>`)
		for _, key := range shipment.Columns {
			class := "sortable"
			marker := ""
			if key == s.Criteria.SortKey {
				class += " sorted"
				marker = " ▲"
				if s.Criteria.SortOrder == shipment.Desc {
					marker = " ▼"
				}
			}
			hw.Raw(`<th`).Attr("class", class).Attr("data-sort", key.String()).Raw(`><a`).
				Attr("href", Href(s.ToggleSort(key))).Raw(`>`).
				Text(t(i18n.ColumnKey(key.String()))).Text(marker).Raw(`</a></th>`)
		}
		hw.Raw(`</tr></thead><tbody id="table-body">`)

		if len(rows) == 0 {
			hw.Raw(`<tr class="empty"><td`).Attr("colspan", fmt.Sprint(len(shipment.Columns))).Raw(`>`).
				Text(t("tableEmpty")).Raw(`</td></tr>`)
		}
		empty := t("emptyValue")
		for _, row := range rows {
			hw.Raw(`<tr>`)
			cell(hw, row.Vessel)
			cell(hw, row.ClearanceDate)
			cell(hw, row.SailingTime)
			cell(hw, row.Port)
			cell(hw, row.ArrivalDate)
			cell(hw, row.Quantity)
			hw.Raw(`<td>`)
			statusChip(hw, row.SOStatus, t("statusSOdone"), t("statusSOpending"))
			hw.Raw(`</td>`)
			cell(hw, orEmpty(row.QuarantineTime, empty))
			cell(hw, orEmpty(row.DrugNo, empty))
			cell(hw, orEmpty(row.QuarantineCertNo, empty))
			cell(hw, orEmpty(row.StuffingDate, empty))
			hw.Raw(`<td>`)
			statusChip(hw, row.TelexStatus, t("statusTelexDone"), t("statusTelexPending"))
			hw.Raw(`</td></tr>`)
		}
		hw.Raw(`</tbody></table></div>`)
		hw.Raw(`<p class="hint">`).Text(t("hintSource")).Raw(`</p></section>`)
		return hw.Err()
	})
}

func cell(hw *html.Writer, v string) {
	hw.Raw(`<td>`).Text(v).Raw(`</td>`)
}

func orEmpty(v, empty string) string {
	if v == "" {
		return empty
	}
	return v
}

func statusChip(hw *html.Writer, s shipment.Status, done, pending string) {
	kind, text := "bad", pending
	if s == shipment.StatusDone {
		kind, text = "ok", done
	}
	hw.Raw(`<span class="chip chip-` + kind + `"><span class="chip-dot"></span>`).Text(text).Raw(`</span>`)
}

func calendarSection(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := tr(d.Lang)
		s := d.State

		hw := html.NewWriter(ctx, w)
		hw.Raw(`<section id="calendar-view" class="view active"><div class="section-head"><h2>`).Text(t("calTitle")).Raw(`</h2>`)
		hw.Raw(`<p class="desc">`).Text(t("calDesc")).Raw(`</p></div>`)
		filterForm(hw, d)

		week := s
		week.View = shipment.ViewWeek
		month := s
		month.View = shipment.ViewMonth
		hw.Raw(`<div class="calendar-toolbar"><div class="subtabs">`)
		subtab(hw, Href(week), t("calWeekView"), s.View == shipment.ViewWeek)
		subtab(hw, Href(month), t("calMonthView"), s.View == shipment.ViewMonth)
		hw.Raw(`</div><div class="period-nav">`)
		hw.Raw(`<a id="btn-prev-period"`).Attr("href", Href(s.Prev())).Raw(`>`).Text(t("btnPrev")).Raw(`</a>`)
		hw.Raw(`<span id="period-label">`).Text(s.PeriodLabel()).Raw(`</span>`)
		hw.Raw(`<a id="btn-next-period"`).Attr("href", Href(s.Next())).Raw(`>`).Text(t("btnNext")).Raw(`</a>`)
		hw.Raw(`<a id="btn-today"`).Attr("href", Href(s.Today(time.Now()))).Raw(`>`).Text(t("btnToday")).Raw(`</a>`)
		hw.Raw(`</div></div>`)

		hw.Raw(`<div class="legend">`)
		for _, k := range []shipment.EventKind{shipment.EventClearance, shipment.EventSailing, shipment.EventArrival} {
			hw.Raw(`<span class="calendar-event event-` + k.String() + `">`).Text(t(legendKey(k))).Raw(`</span>`)
		}
		hw.Raw(`</div>`)

		cells := s.Cells()
		hw.Raw(`<div id="calendar-grid">`)
		if s.View == shipment.ViewWeek {
			hw.Raw(`<div class="calendar-week">`)
			for _, c := range cells {
				hw.Raw(`<div class="calendar-weekday">`).Text(fmt.Sprintf("%d/%d", int(c.Date.Month()), c.Date.Day())).Raw(`</div>`)
			}
			hw.Raw(`</div><div class="calendar-week">`)
			for _, c := range cells {
				dayCell(hw, t, c, "calendar-week-cell")
			}
			hw.Raw(`</div>`)
		} else {
			hw.Raw(`<div class="calendar-month">`)
			for _, c := range cells {
				class := "calendar-month-cell"
				if !c.InPeriod {
					class += " is-outside"
				}
				dayCell(hw, t, c, class)
			}
			hw.Raw(`</div>`)
		}
		hw.Raw(`</div></section>`)
		return hw.Err()
	})
}

func subtab(hw *html.Writer, href, label string, active bool) {
	class := "subtab-button"
	if active {
		class += " active"
	}
	hw.Raw(`<a`).Attr("class", class).Attr("href", href).Raw(`>`).Text(label).Raw(`</a>`)
}

func dayCell(hw *html.Writer, t func(string) string, c shipment.Cell, class string) {
	hw.Raw(`<div`).Attr("class", class).Attr("data-date", c.Label).Raw(`><div class="day-number">`).
		Text(fmt.Sprint(c.Date.Day())).Raw(`</div>`)
	for _, ev := range c.Events {
		hw.Raw(`<span class="calendar-event event-` + ev.Kind.String() + `"`).Attr("title", ev.Vessel).Raw(`>`).
			Text(t(legendKey(ev.Kind))).Raw(`</span>`)
	}
	hw.Raw(`</div>`)
}

func legendKey(k shipment.EventKind) string {
	switch k {
	case shipment.EventSailing:
		return "legendSailing"
	case shipment.EventArrival:
		return "legendArrival"
	default:
		return "legendClearance"
	}
}

func pageFooter(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := tr(d.Lang)
		hw := html.NewWriter(ctx, w)
		hw.Raw(`<footer class="app-footer"><span>`).Text(t("footerSource")).Raw(`</span><span>`)
		if d.Snapshot.FetchedAt.IsZero() {
			hw.Text(t("footerNever"))
		} else {
			hw.Text(t("footerLastRefresh") + d.Snapshot.FetchedAt.Local().Format("2006-01-02 15:04"))
		}
		hw.Raw(`</span><span>`).Text(t("footerAutoRefresh")).Raw(`</span></footer>`)
		return hw.Err()
	})
}

func tr(lang string) func(string) string {
	return func(key string) string { return i18n.T(lang, key) }
}

func langHref(s shipment.State, lang string) string {
	v := Values(s)
	v.Set("lang", lang)
	path := "/"
	if s.Mode == shipment.ModeCalendar {
		path = "/calendar"
	}
	return path + "?" + v.Encode()
}

func langName(lang string) string {
	if lang == i18n.LangJA {
		return "日本語"
	}
	return "中文"
}
