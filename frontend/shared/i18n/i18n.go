// Package i18n holds the zh and ja dashboard strings.
package i18n

import (
	"net/http"
	"strings"
)

const (
	LangZH = "zh"
	LangJA = "ja"

	DefaultLang = LangZH
	CookieName  = "lang"
)

var Langs = []string{LangZH, LangJA}

var dict = map[string]map[string]string{
	LangZH: {
		"appTitle":           "船班訂艙與檢疫追蹤系統",
		"appSubtitle":        "同步 Google Sheet，讓報關行即時掌握船班與文件狀態",
		"badgeReadonly":      "只讀・自動更新",
		"tabTable":           "表格視圖",
		"tabCalendar":        "行事曆視圖",
		"filterSO":           "SO 狀態：",
		"filterTelex":        "電放單狀態：",
		"filterAll":          "全部",
		"filterSOdone":       "已給 SO",
		"filterSOpending":    "尚未給 SO",
		"filterTelexDone":    "已給 電放單",
		"filterTelexPending": "尚未給 電放單",
		"searchPlaceholder":  "搜尋船班 / 港口 / 藥務號",
		"btnApply":           "套用",
		"tableTitle":         "船班列表",
		"tableDesc":          "點欄位標題可排序，SO / 電放單會自動判斷。",
		"hintSource":         "資料來源：Google Sheet CSV（唯讀）",
		"tableEmpty":         "沒有符合條件的船班",

		"colVessel":           "船班",
		"colClearanceDate":    "結關日",
		"colSailingTime":      "實際開船時間",
		"colPort":             "抵達港口",
		"colArrivalDate":      "抵達日",
		"colQuantity":         "訂櫃數量",
		"colSOstatus":         "SO 狀態",
		"colQuarantineTime":   "申請檢疫官到場時間",
		"colDrugNo":           "藥務號",
		"colQuarantineCertNo": "檢疫證號碼",
		"colStuffingDate":     "實際裝櫃日",
		"colTelexStatus":      "電放單狀態",

		"calTitle":     "行事曆",
		"calDesc":      "週 / 月視圖切換，顏色代表不同事件。",
		"calWeekView":  "週視圖",
		"calMonthView": "月視圖",
		"btnToday":     "今天",
		"btnPrev":      "‹",
		"btnNext":      "›",

		"legendClearance": "結關",
		"legendSailing":   "開船",
		"legendArrival":   "抵達",

		"footerSource":      "資料來源：Google Sheet（唯讀）",
		"footerAutoRefresh": "頁面每 3 分鐘自動更新",
		"footerLastRefresh": "最後更新：",
		"footerNever":       "尚未取得資料",

		"statusSOdone":       "已給 SO",
		"statusSOpending":    "尚未給 SO",
		"statusTelexDone":    "已給 電放單",
		"statusTelexPending": "尚未給 電放單",

		"exportCSV":  "匯出 CSV",
		"exportXLSX": "匯出 Excel",
		"exportPDF":  "匯出 PDF",
		"pdfEmpty":   "沒有船班資料",

		"emptyValue": "—",
	},
	LangJA: {
		"appTitle":           "船舶ブッキング・検疫追跡システム",
		"appSubtitle":        "Google Sheet と連動し、報関行が船便および書類状況を即時把握",
		"badgeReadonly":      "閲覧専用・自動更新",
		"tabTable":           "表形式ビュー",
		"tabCalendar":        "カレンダービュー",
		"filterSO":           "SO 状況：",
		"filterTelex":        "テレックスリリース状況：",
		"filterAll":          "すべて",
		"filterSOdone":       "SO 提出済",
		"filterSOpending":    "SO 未提出",
		"filterTelexDone":    "電放指示済",
		"filterTelexPending": "電放未提出",
		"searchPlaceholder":  "船名 / 港 / 薬務番号で検索",
		"btnApply":           "適用",
		"tableTitle":         "船便一覧",
		"tableDesc":          "列タイトルをクリックすると並び替えができます。",
		"hintSource":         "データ元：Google Sheet CSV（閲覧専用）",
		"tableEmpty":         "条件に一致する船便はありません",

		"colVessel":           "船名 / VOY",
		"colClearanceDate":    "通関締切日",
		"colSailingTime":      "実際出港時刻",
		"colPort":             "到着港",
		"colArrivalDate":      "到着日",
		"colQuantity":         "予約コンテナ数",
		"colSOstatus":         "SO 状況",
		"colQuarantineTime":   "検疫官申請時刻",
		"colDrugNo":           "薬務番号",
		"colQuarantineCertNo": "検疫証明番号",
		"colStuffingDate":     "実際積載日",
		"colTelexStatus":      "電放状況",

		"calTitle":     "カレンダー",
		"calDesc":      "週 / 月ビュー切替、色はイベント種類を示す。",
		"calWeekView":  "週ビュー",
		"calMonthView": "月ビュー",
		"btnToday":     "今日",
		"btnPrev":      "‹",
		"btnNext":      "›",

		"legendClearance": "通関締切",
		"legendSailing":   "出港",
		"legendArrival":   "到着",

		"footerSource":      "データ元：Google Sheet（閲覧専用）",
		"footerAutoRefresh": "ページは 3 分ごとに自動更新",
		"footerLastRefresh": "最終更新：",
		"footerNever":       "データ未取得",

		"statusSOdone":       "SO 提出済",
		"statusSOpending":    "SO 未提出",
		"statusTelexDone":    "電放指示済",
		"statusTelexPending": "電放未提出",

		"exportCSV":  "CSV 出力",
		"exportXLSX": "Excel 出力",
		"exportPDF":  "PDF 出力",
		"pdfEmpty":   "船便データがありません",

		"emptyValue": "—",
	},
}

// T returns the string for key in lang. Unknown keys come back unchanged.
func T(lang, key string) string {
	if v, ok := dict[Normalize(lang)][key]; ok {
		return v
	}
	return key
}

// Normalize maps anything but a supported language to DefaultLang.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := dict[lang]; ok {
		return lang
	}
	return DefaultLang
}

// FromRequest resolves the language like Resolve and remembers a ?lang= choice
// in the lang cookie.
func FromRequest(w http.ResponseWriter, r *http.Request) string {
	lang := Resolve(r)
	if strings.TrimSpace(r.URL.Query().Get("lang")) != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    lang,
			Path:     "/",
			MaxAge:   365 * 24 * 60 * 60,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return lang
}

// Resolve picks the language from ?lang=, then the lang cookie, then DefaultLang.
func Resolve(r *http.Request) string {
	if q := strings.TrimSpace(r.URL.Query().Get("lang")); q != "" {
		return Normalize(q)
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return Normalize(c.Value)
	}
	return DefaultLang
}

// ColumnKey is the dictionary key of a column header.
func ColumnKey(column string) string {
	switch column {
	case "soStatus":
		return "colSOstatus"
	case "":
		return ""
	}
	return "col" + strings.ToUpper(column[:1]) + column[1:]
}
