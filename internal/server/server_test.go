package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formpdf/pkg/contact"
	"github.com/goliatone/go-formpdf/pkg/model"
	"github.com/goliatone/go-formpdf/pkg/render"
	"github.com/goliatone/go-formpdf/pkg/store"
	"github.com/goliatone/go-formpdf/pkg/testsupport"
	"github.com/goliatone/go-formpdf/pkg/validation"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeExporter struct {
	err     error
	records []contact.Record
}

func (f *fakeExporter) Name() string        { return "fake" }
func (f *fakeExporter) ContentType() string { return render.ContentTypePDF }

func (f *fakeExporter) Render(_ context.Context, _ model.FormModel, opts render.RenderOptions) ([]byte, error) {
	f.records = append(f.records, opts.Record)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake " + opts.Record.Name), nil
}

// browser replays cookies between requests against a handler.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, handler http.Handler) *browser {
	return &browser{t: t, handler: handler, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	resp := rec.Result()
	for _, c := range resp.Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return resp
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	resp := b.do(httptest.NewRequest(http.MethodGet, path, nil))
	return resp, readBody(b.t, resp)
}

func (b *browser) postForm(path string, values url.Values) (*http.Response, string) {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := b.do(req)
	return resp, readBody(b.t, resp)
}

func (b *browser) postJSON(path, body string) (*http.Response, string) {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := b.do(req)
	return resp, readBody(b.t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return string(body)
}

func formValues(rec contact.Record, action string) url.Values {
	values := url.Values{"action": {action}}
	for field, value := range rec.Values() {
		values.Set(field, value)
	}
	return values
}

type fixture struct {
	server   *Server
	store    store.Store
	exporter *fakeExporter
	logs     *observer.ObservedLogs
}

func newFixture(t *testing.T, st store.Store, options ...Option) fixture {
	t.Helper()
	if st == nil {
		st = store.NewMemory(time.Minute)
	}
	sessions, err := store.NewSessions(testSecret, "", time.Minute)
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	exporter := &fakeExporter{}
	options = append([]Option{WithLogger(zap.New(core))}, options...)
	srv, err := New(st, sessions, exporter, options...)
	require.NoError(t, err)
	return fixture{server: srv, store: st, exporter: exporter, logs: logs}
}

func TestNew_RequiresDependencies(t *testing.T) {
	sessions, err := store.NewSessions(testSecret, "", time.Minute)
	require.NoError(t, err)

	_, err = New(nil, sessions, &fakeExporter{})
	assert.Error(t, err)
	_, err = New(store.NewMemory(time.Minute), nil, &fakeExporter{})
	assert.Error(t, err)
	_, err = New(store.NewMemory(time.Minute), sessions, nil)
	assert.Error(t, err)
	_, err = New(store.NewMemory(time.Minute), sessions, &fakeExporter{}, WithScreens(&fakeExporter{}))
	assert.Error(t, err, "form and preview screens are required")
}

func TestForm_RendersEmptyForm(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	resp, body := b.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, render.ContentTypeHTML, resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "Add Your details")
	assert.Contains(t, b.cookies, store.DefaultSessionCookie)
}

func TestSubmit_ViewStoresRecordAndRedirects(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())
	rec := testsupport.ValidRecord()

	resp, _ := b.postForm("/", formValues(rec, ActionView))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathPreview, resp.Header.Get("Location"))

	resp, body := b.get(PathPreview)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<dd>John Doe</dd>")
	assert.Contains(t, body, "<dd>Junior Front end Developer</dd>")
	assert.Empty(t, f.exporter.records, "viewing must not export")
}

func TestSubmit_TrimsStoredValues(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())
	rec := testsupport.MinimalRecord()
	rec.Name = "  John Doe  "

	resp, _ := b.postForm("/", formValues(rec, ActionView))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	_, body := b.get(PathPreview)
	assert.Contains(t, body, "<dd>John Doe</dd>")
}

func TestSubmit_InvalidRerendersWithErrors(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())
	rec := contact.Record{Name: " ", Email: "not-an-email", Phone: "555-1234"}

	for _, action := range []string{ActionView, ActionDownload} {
		resp, body := b.postForm("/", formValues(rec, action))
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, action)
		assert.Contains(t, body, "Name is required")
		assert.Contains(t, body, "Please enter a valid email address")
		assert.Contains(t, body, "Phone number must be at least 10 digits")
		assert.Contains(t, body, `value="not-an-email"`)
	}
	assert.Empty(t, f.exporter.records)

	resp, _ := b.get(PathPreview)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode, "invalid submissions are not stored")
}

func TestSubmit_UnknownAction(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	resp, _ := b.postForm("/", formValues(testsupport.ValidRecord(), "print"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmit_DownloadStreamsPDFWithoutStoring(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	resp, body := b.postForm("/", formValues(testsupport.ValidRecord(), ActionDownload))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, render.ContentTypePDF, resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="user-details.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "%PDF-fake John Doe", body)

	resp, _ = b.get(PathPreview)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestPreview_WithoutRecordRedirects(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	for _, path := range []string{PathPreview, PathDownload} {
		resp, _ := b.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, PathForm, resp.Header.Get("Location"), path)
	}
}

func TestPreview_DownloadExportsStoredRecord(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())
	rec := testsupport.ValidRecord()

	b.postForm("/", formValues(rec, ActionView))
	resp, body := b.get(PathDownload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="user-details.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "%PDF-fake John Doe", body)
	require.Len(t, f.exporter.records, 1)
	assert.Equal(t, rec, f.exporter.records[0])
}

func TestPreview_BackPrefillsForm(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	b.postForm("/", formValues(testsupport.ValidRecord(), ActionView))
	resp, _ := b.postForm(PathBack, url.Values{})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, PathForm, resp.Header.Get("Location"))

	_, body := b.get("/")
	assert.Contains(t, body, `value="John Doe"`)
	assert.Contains(t, body, `value="johndoe@gmail.com"`)
}

func TestPreview_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t, nil)
	handler := f.server.Handler()
	alice := newBrowser(t, handler)
	bob := newBrowser(t, handler)

	alice.postForm("/", formValues(testsupport.ValidRecord(), ActionView))
	resp, _ := bob.get(PathPreview)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestDownload_FailureIsLoggedAndRecordKept(t *testing.T) {
	f := newFixture(t, nil)
	f.exporter.err = errors.New("font missing")
	b := newBrowser(t, f.server.Handler())

	b.postForm("/", formValues(testsupport.ValidRecord(), ActionView))
	resp, body := b.get(PathDownload)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, "error generating PDF")

	entries := f.logs.FilterMessage("error generating PDF").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "font missing", entries[0].ContextMap()["error"])

	resp, _ = b.get(PathPreview)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "record survives a failed export")
}

func TestCookieBackend_CarriesRecordBetweenScreens(t *testing.T) {
	cookies, err := store.NewCookie(testSecret, "formpdf_record", time.Minute)
	require.NoError(t, err)
	f := newFixture(t, cookies)
	b := newBrowser(t, f.server.Handler())

	resp, _ := b.postForm("/", formValues(testsupport.ValidRecord(), ActionView))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, b.cookies, "formpdf_record")

	resp, body := b.get(PathPreview)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<dd>John Doe</dd>")
}

func TestAPIValidate(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	resp, body := b.postJSON(PathAPIValidate, `{"name":"John Doe","email":"johndoe@gmail.com","phone":"2202222000"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"valid":true}`, body)

	resp, body = b.postJSON(PathAPIValidate, `{"name":"","email":"x","phone":"1"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var result validation.Result
	require.NoError(t, json.Unmarshal([]byte(body), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 3)
	assert.Equal(t, contact.FieldName, result.Issues[0].Field)

	resp, body = b.postJSON(PathAPIValidate, `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "invalid record payload")

	resp, _ = b.postJSON(PathAPIValidate, `{"nickname":"jd"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIPDF(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	resp, body := b.postJSON(PathAPIPDF, `{"name":" John Doe ","email":"johndoe@gmail.com","phone":"2202222000"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, render.ContentTypePDF, resp.Header.Get("Content-Type"))
	assert.Equal(t, "%PDF-fake John Doe", body)

	resp, _ = b.postJSON(PathAPIPDF, `{"name":"John Doe"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestHealthAndAssets(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	resp, body := b.get(PathHealth)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, body = b.get("/assets/page.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".fp-card")

	resp, _ = b.get("/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestsAreLogged(t *testing.T) {
	f := newFixture(t, nil)
	b := newBrowser(t, f.server.Handler())

	b.get(PathHealth)
	entries := f.logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, PathHealth, entries[0].ContextMap()["path"])
}

func TestServe_ShutsDownWhenContextEnds(t *testing.T) {
	f := newFixture(t, nil, WithGrace(time.Second), WithJanitorInterval(10*time.Millisecond))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.server.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + PathHealth)
	require.NoError(t, err)
	_ = resp.Body.Close()
	client.CloseIdleConnections()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
