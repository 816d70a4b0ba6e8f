package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"shiptrack/frontend/dashboard"
	"shiptrack/frontend/login"
	"shiptrack/infrastructure/audit"
	"shiptrack/infrastructure/cache"
	"shiptrack/infrastructure/feed"
	"shiptrack/infrastructure/rbac"
	"shiptrack/infrastructure/sqlite"
)

const (
	adminPassword    = "AdminHarbour2024"
	operatorPassword = "OperatorHarbour2024"

	sheetHeader = "vessel,clearance,sailing,port,arrival,qty,so,quarantine,drug,cert,stuffing,telex\n"
)

type integrationEnv struct {
	server   *httptest.Server
	db       *sqlite.DB
	feedBody *atomic.Value
	snapshot *cache.SnapshotCache
}

func setupIntegrationServer(t *testing.T) (*integrationEnv, *http.Client) {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "server-integration.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if err := login.UpsertUserPasswordHash(context.Background(), db, "admin", rbac.RoleAdmin, adminPassword); err != nil {
		t.Fatalf("seed admin user: %v", err)
	}
	if err := login.UpsertUserPasswordHash(context.Background(), db, "operator1", rbac.RoleOperator, operatorPassword); err != nil {
		t.Fatalf("seed operator user: %v", err)
	}

	body := &atomic.Value{}
	body.Store(sheetHeader +
		"MSC AURORA,2024-03-05,2024-03-07,Tokyo,2024-03-12,2,1,,D-100,,,0\n" +
		"EVER GIVEN,2024-03-06,,Osaka,,1,0,,,,,1\n")
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body.Load().(string))
	}))

	snapshot := cache.NewSnapshotCache()
	refresher := feed.NewRefresher(feed.NewHTTPSource(feedSrv.URL, 5*time.Second), feed.NewStore(db), snapshot)
	if _, err := refresher.RefreshNow(context.Background(), feed.TriggerStartup); err != nil {
		t.Fatalf("initial refresh: %v", err)
	}

	rbacCache := cache.NewRbacRolesCache()
	s := NewServer("127.0.0.1:0", Deps{
		DB:           db,
		Snapshot:     snapshot,
		Refresher:    refresher,
		FeedURL:      feedSrv.URL,
		SessionCache: cache.NewUserSessionCache(),
		UserCache:    cache.NewUserCache(),
		RbacCache:    rbacCache,
		Rbac:         rbac.New(rbacCache),
		Audit:        audit.NewService(),
	})
	ts := httptest.NewServer(s.Handler())
	env := &integrationEnv{server: ts, db: db, feedBody: body, snapshot: snapshot}
	t.Cleanup(func() {
		env.server.Close()
		feedSrv.Close()
		_ = env.db.Close()
	})

	return env, newHTTPClient(t)
}

func newHTTPClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, client *http.Client, baseURL, path string) *http.Response {
	t.Helper()
	resp, err := client.Get(baseURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func postForm(t *testing.T, client *http.Client, baseURL, path string, data url.Values) *http.Response {
	t.Helper()
	if data == nil {
		data = url.Values{}
	}
	if token := csrfToken(t, client, baseURL); token != "" {
		data.Set("_csrf", token)
	}
	resp, err := client.PostForm(baseURL+path, data)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

func csrfToken(t *testing.T, client *http.Client, baseURL string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("parse base url: %v", err)
	}
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == csrfCookieName {
			return c.Value
		}
	}
	return ""
}

func loginAs(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()

	resp := get(t, client, baseURL, "/login")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login page 200, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = postForm(t, client, baseURL, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != login.HomePath {
		t.Fatalf("unexpected login redirect: %s", loc)
	}
	_ = resp.Body.Close()
}

func countRows(t *testing.T, db *sqlite.DB, query string, args ...any) int {
	t.Helper()
	var n int
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(query, args...).Scan(ctx, &n)
	})
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

func TestCSRFPostWithoutTokenRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)

	// No GET first: no CSRF token available in cookie or form.
	resp, err := client.PostForm(env.server.URL+"/login", url.Values{
		"username": {"admin"},
		"password": {adminPassword},
	})
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for missing csrf, got %d", resp.StatusCode)
	}
}

func TestCSRFPostWithoutToken_SameOriginRefererAccepted(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/console/feed/refresh", strings.NewReader(""))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", env.server.URL+"/console/feed")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post refresh: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected same-origin csrf fallback 303, got %d", resp.StatusCode)
	}
}

func TestCSRFPostWithoutToken_CrossOriginRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/console/feed/refresh", strings.NewReader(""))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("post cross-origin request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for cross-origin missing csrf token, got %d", resp.StatusCode)
	}
	if n := countRows(t, env.db, `SELECT COUNT(1) FROM feed_refresh_runs WHERE trigger_source = ?`, feed.TriggerManual); n != 0 {
		t.Fatalf("cross-origin post must not trigger a refresh, got %d manual runs", n)
	}
}

func TestDashboardIsPublic(t *testing.T) {
	env, client := setupIntegrationServer(t)

	body := readBody(t, get(t, client, env.server.URL, "/?so=done"))
	if !strings.Contains(body, "MSC AURORA") || strings.Contains(body, "EVER GIVEN") {
		t.Fatalf("expected only SO-done rows on table page")
	}

	body = readBody(t, get(t, client, env.server.URL, "/calendar?view=week&date=2024-03-06&lang=ja"))
	if !strings.Contains(body, "2024-03-04 - 2024-03-10") || !strings.Contains(body, "通関締切") {
		t.Fatalf("expected ja week calendar with clearance events")
	}

	resp := get(t, client, env.server.URL, "/assets/app.css")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected css asset, got %d", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = get(t, client, env.server.URL, "/health")
	if got := readBody(t, resp); got != "ok" {
		t.Fatalf("unexpected health body %q", got)
	}
}

func TestConsoleRequiresLogin(t *testing.T) {
	env, client := setupIntegrationServer(t)
	resp := get(t, client, env.server.URL, "/console/feed")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestOperatorCanViewButNotRefresh(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "operator1", operatorPassword)

	resp := get(t, client, env.server.URL, "/console/feed")
	body := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Refresh history") {
		t.Fatalf("expected feed page for operator, got %d", resp.StatusCode)
	}

	resp = postForm(t, client, env.server.URL, "/console/feed/refresh", nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for operator refresh, got %d", resp.StatusCode)
	}
}

func TestServerEndToEndCoreFlow(t *testing.T) {
	env, client := setupIntegrationServer(t)
	loginAs(t, client, env.server.URL, "admin", adminPassword)

	env.feedBody.Store(sheetHeader + "ONE APUS,2024-04-01,,Kobe,,3,1,,,,,1\n")
	resp := postForm(t, client, env.server.URL, "/console/feed/refresh", nil)
	if resp.StatusCode != http.StatusSeeOther || !strings.Contains(resp.Header.Get("Location"), "status=") {
		t.Fatalf("expected refresh redirect with status, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	_ = resp.Body.Close()

	var api dashboard.ShipmentsResponse
	if err := json.Unmarshal([]byte(readBody(t, get(t, client, env.server.URL, "/api/shipments"))), &api); err != nil {
		t.Fatalf("decode api: %v", err)
	}
	if api.Count != 1 || api.Rows[0].Vessel != "ONE APUS" {
		t.Fatalf("expected refreshed snapshot in api, got %+v", api)
	}

	if n := countRows(t, env.db, `SELECT COUNT(1) FROM audit_logs WHERE action = ?`, "feed.refresh"); n != 1 {
		t.Fatalf("expected one refresh audit row, got %d", n)
	}
	if n := countRows(t, env.db, `SELECT COUNT(1) FROM feed_refresh_runs WHERE trigger_source = ?`, feed.TriggerManual); n != 1 {
		t.Fatalf("expected one manual run, got %d", n)
	}

	resp = get(t, client, env.server.URL, "/exports/shipments.csv?so=done")
	csvBody := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(csvBody, "ONE APUS") {
		t.Fatalf("unexpected csv export: %d %s", resp.StatusCode, csvBody)
	}
	if n := countRows(t, env.db, `SELECT COUNT(1) FROM export_runs WHERE export_type = ?`, "shipments_csv"); n != 1 {
		t.Fatalf("expected export run logged, got %d", n)
	}
	headResp, err := client.Head(env.server.URL + "/exports/shipments.csv")
	if err != nil {
		t.Fatalf("head export: %v", err)
	}
	_ = headResp.Body.Close()
	if headResp.StatusCode != http.StatusOK {
		t.Fatalf("expected head export 200, got %d", headResp.StatusCode)
	}
	if n := countRows(t, env.db, `SELECT COUNT(1) FROM export_runs`); n != 1 {
		t.Fatalf("head request must not log an export run, got %d", n)
	}

	body := readBody(t, get(t, client, env.server.URL, "/console/feed"))
	if !strings.Contains(body, "<td>manual</td>") || !strings.Contains(body, "shipments_csv") {
		t.Fatalf("expected manual run and export on feed page")
	}

	resp = postForm(t, client, env.server.URL, "/logout", nil)
	_ = resp.Body.Close()
	resp = get(t, client, env.server.URL, "/console/feed")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected console to require login after logout, got %d", resp.StatusCode)
	}
}

func TestUserAdminIsAdminOnly(t *testing.T) {
	env, admin := setupIntegrationServer(t)
	loginAs(t, admin, env.server.URL, "admin", adminPassword)

	resp := postForm(t, admin, env.server.URL, "/console/users", url.Values{
		"username": {"clerk"},
		"password": {"Clerk2024Desk"},
		"role":     {"operator"},
	})
	if resp.StatusCode != http.StatusSeeOther || !strings.Contains(resp.Header.Get("Location"), "status=") {
		t.Fatalf("expected user create redirect, got %d %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	_ = resp.Body.Close()

	operator := newHTTPClient(t)
	loginAs(t, operator, env.server.URL, "clerk", "Clerk2024Desk")
	resp = get(t, operator, env.server.URL, "/console/users")
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for operator on users page, got %d", resp.StatusCode)
	}
}
