package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

// fakeYahoo serves the cookie, crumb and query endpoints used by Client.
type fakeYahoo struct {
	t            *testing.T
	crumbCalls   atomic.Int32
	summaryCalls atomic.Int32
	quoteCalls   atomic.Int32
	handlers     map[string]http.HandlerFunc

	// crumbStarted and crumbGate, when set, hold the crumb response until
	// the gate is closed.
	crumbStarted chan struct{}
	crumbGate    chan struct{}
}

func newFakeYahoo(t *testing.T) (*fakeYahoo, *httptest.Server) {
	f := &fakeYahoo{t: t, handlers: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeYahoo) serve(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/cookie":
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
		return
	case r.URL.Path == crumbPath:
		f.crumbCalls.Add(1)
		if f.crumbGate != nil {
			select {
			case f.crumbStarted <- struct{}{}:
			default:
			}
			select {
			case <-f.crumbGate:
			case <-r.Context().Done():
				return
			}
		}
		if c, err := r.Cookie("A3"); err != nil || c.Value != "session" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte("abc123"))
		return
	}

	if r.URL.Query().Get("crumb") != "abc123" {
		f.t.Errorf("expected crumb abc123 on %s, got %q", r.URL.Path, r.URL.Query().Get("crumb"))
	}
	if r.Header.Get("User-Agent") == "" {
		f.t.Errorf("expected User-Agent on %s", r.URL.Path)
	}

	for prefix, h := range f.handlers {
		if strings.HasPrefix(r.URL.Path, prefix) {
			h(w, r)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(WithBaseURL(srv.URL), WithCookieURL(srv.URL+"/cookie"))
}

func (f *fakeYahoo) withInfo(summary, quote map[string]any) {
	f.handlers["/v10/finance/quoteSummary/"] = func(w http.ResponseWriter, r *http.Request) {
		f.summaryCalls.Add(1)
		if r.URL.Query().Get("formatted") != "false" {
			f.t.Errorf("expected formatted=false")
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"quoteSummary": map[string]any{"result": []any{summary}, "error": nil},
		})
	}
	f.handlers["/v7/finance/quote"] = func(w http.ResponseWriter, r *http.Request) {
		f.quoteCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{
			"quoteResponse": map[string]any{"result": []any{quote}, "error": nil},
		})
	}
}

func TestClient_Info_FlattensAndMerges(t *testing.T) {
	f, srv := newFakeYahoo(t)
	f.withInfo(
		map[string]any{
			"financialData": map[string]any{
				"maxAge":       86400,
				"currentPrice": map[string]any{"raw": 412.5, "fmt": "412.50"},
				"totalDebt":    map[string]any{},
			},
			"price": map[string]any{
				"longName": "ITC Limited",
				"symbol":   "ITC.NS",
			},
			"summaryDetail": map[string]any{
				"exDividendDate":   1700000000,
				"fiftyTwoWeekHigh": 499.7,
			},
		},
		map[string]any{
			"symbol":                       "IGNORED",
			"fiftyDayAverageChangePercent": -0.02,
		},
	)

	c := newTestClient(srv)
	info, err := c.Info(t.Context(), "ITC.NS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info["currentPrice"] != 412.5 {
		t.Errorf("expected raw currentPrice 412.5, got %v", info["currentPrice"])
	}
	if _, ok := info["totalDebt"]; ok {
		t.Error("empty objects should be dropped")
	}
	if _, ok := info["maxAge"]; ok {
		t.Error("maxAge should be dropped")
	}
	if info["longName"] != "ITC Limited" {
		t.Errorf("unexpected longName %v", info["longName"])
	}
	if info["symbol"] != "ITC.NS" {
		t.Errorf("quote fields must not override summary fields, got %v", info["symbol"])
	}
	if info["fiftyDayAverageChangePercent"] != -0.02 {
		t.Errorf("expected quote field to fill gap, got %v", info["fiftyDayAverageChangePercent"])
	}
	if info["exDividendDate"] != float64(1700000000) {
		t.Errorf("unexpected exDividendDate %v", info["exDividendDate"])
	}
}

func TestClient_Info_CrumbFetchedOnce(t *testing.T) {
	f, srv := newFakeYahoo(t)
	f.withInfo(map[string]any{"price": map[string]any{"symbol": "ITC.NS"}}, map[string]any{})

	c := newTestClient(srv)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Info(t.Context(), "ITC.NS"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := f.crumbCalls.Load(); got != 1 {
		t.Errorf("expected 1 crumb handshake, got %d", got)
	}
	if got := f.summaryCalls.Load(); got != 8 {
		t.Errorf("expected 8 quoteSummary calls (no data caching), got %d", got)
	}
}

func TestClient_Info_UnknownSymbol(t *testing.T) {
	f, srv := newFakeYahoo(t)
	f.handlers["/v10/finance/quoteSummary/"] = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"quoteSummary": map[string]any{
				"result": nil,
				"error":  map[string]any{"code": "Not Found", "description": "Quote not found for symbol: NOPE"},
			},
		})
	}

	c := newTestClient(srv)
	_, err := c.Info(t.Context(), "NOPE")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "Not Found" {
		t.Errorf("unexpected code %s", apiErr.Code)
	}
}

func TestClient_Info_EmptyResult(t *testing.T) {
	f, srv := newFakeYahoo(t)
	f.handlers["/v10/finance/quoteSummary/"] = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"quoteSummary": map[string]any{"result": []any{}}})
	}

	_, err := newTestClient(srv).Info(t.Context(), "ITC.NS")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestClient_Info_ServerError(t *testing.T) {
	f, srv := newFakeYahoo(t)
	f.handlers["/v10/finance/quoteSummary/"] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}

	_, err := newTestClient(srv).Info(t.Context(), "ITC.NS")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", httpErr.StatusCode)
	}
}

func TestClient_Unauthorized_ResetsCrumb(t *testing.T) {
	f, srv := newFakeYahoo(t)
	var calls atomic.Int32
	f.handlers["/v10/finance/quoteSummary/"] = func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"finance": map[string]any{"error": map[string]any{"code": "Unauthorized", "description": "Invalid Crumb"}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"quoteSummary": map[string]any{"result": []any{map[string]any{}}},
		})
	}
	f.handlers["/v7/finance/quote"] = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"quoteResponse": map[string]any{"result": []any{}}})
	}

	c := newTestClient(srv)
	if _, err := c.Info(t.Context(), "ITC.NS"); err == nil {
		t.Fatal("expected first call to fail")
	}
	if _, err := c.Info(t.Context(), "ITC.NS"); err != nil {
		t.Fatalf("second call should succeed with a fresh crumb: %v", err)
	}
	if got := f.crumbCalls.Load(); got != 2 {
		t.Errorf("expected 2 crumb handshakes, got %d", got)
	}
}

func TestClient_CrumbFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("Too Many Requests"))
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL), WithCookieURL("")).Info(t.Context(), "ITC.NS")

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", httpErr.StatusCode)
	}
}

func TestClient_Statements(t *testing.T) {
	f, srv := newFakeYahoo(t)
	var gotTypes string
	f.handlers["/ws/fundamentals-timeseries/v1/finance/timeseries/"] = func(w http.ResponseWriter, r *http.Request) {
		gotTypes = r.URL.Query().Get("type")
		if r.URL.Query().Get("symbol") != "ITC.NS" {
			t.Errorf("unexpected symbol %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("period2") != "1760000000" {
			t.Errorf("unexpected period2 %s", r.URL.Query().Get("period2"))
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"timeseries": map[string]any{
				"result": []any{
					map[string]any{
						"meta":      map[string]any{"symbol": []string{"ITC.NS"}, "type": []string{"quarterlyTotalAssets"}},
						"timestamp": []int64{1711843200},
						"quarterlyTotalAssets": []any{
							nil,
							map[string]any{"asOfDate": "2024-03-31", "periodType": "3M", "reportedValue": map[string]any{"raw": 9.1e11, "fmt": "910B"}},
							map[string]any{"asOfDate": "2024-06-30", "periodType": "3M", "reportedValue": map[string]any{"raw": 9.3e11, "fmt": "930B"}},
						},
					},
					map[string]any{
						"meta":               map[string]any{"type": []string{"quarterlyTotalDebt"}},
						"quarterlyTotalDebt": []any{
							map[string]any{"asOfDate": "2024-03-31", "reportedValue": map[string]any{"raw": 3.0e9}},
						},
					},
					map[string]any{
						"meta": map[string]any{"type": []string{"quarterlyGoodwill"}},
					},
				},
				"error": nil,
			},
		})
	}

	c := newTestClient(srv)
	c.now = func() time.Time { return time.Unix(1760000000, 0) }

	got, err := c.BalanceSheet(t.Context(), "ITC.NS", "quarterly")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(gotTypes, "quarterlyTreasurySharesNumber,") {
		t.Errorf("expected quarterly-prefixed types, got %s", gotTypes)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 periods, got %d: %v", len(got), got)
	}
	if got["2024-03-31"]["TotalAssets"] != 9.1e11 {
		t.Errorf("unexpected TotalAssets %v", got["2024-03-31"]["TotalAssets"])
	}
	if got["2024-03-31"]["TotalDebt"] != 3.0e9 {
		t.Errorf("unexpected TotalDebt %v", got["2024-03-31"]["TotalDebt"])
	}
	if got["2024-06-30"]["TotalAssets"] != 9.3e11 {
		t.Errorf("unexpected TotalAssets %v", got["2024-06-30"]["TotalAssets"])
	}
}

func TestClient_IncomeStatement_FrequencyPrefixes(t *testing.T) {
	tests := map[string]string{
		"yearly":    "annualTotalRevenue",
		"quarterly": "quarterlyTotalRevenue",
		"trailing":  "trailingTotalRevenue",
	}
	for freq, first := range tests {
		t.Run(freq, func(t *testing.T) {
			f, srv := newFakeYahoo(t)
			f.handlers["/ws/fundamentals-timeseries/"] = func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasPrefix(r.URL.Query().Get("type"), first+",") {
					t.Errorf("expected type list to start with %s, got %s", first, r.URL.Query().Get("type"))
				}
				writeJSON(w, http.StatusOK, map[string]any{"timeseries": map[string]any{"result": []any{}}})
			}

			got, err := newTestClient(srv).IncomeStatement(t.Context(), "ITC.NS", freq)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected empty statement, got %v", got)
			}
		})
	}
}

func TestClient_Statements_InvalidFrequency(t *testing.T) {
	_, srv := newFakeYahoo(t)

	_, err := newTestClient(srv).BalanceSheet(t.Context(), "ITC.NS", "weekly")
	if !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestClient_CrumbHandshake_CallerCancelDoesNotFailOthers(t *testing.T) {
	f, srv := newFakeYahoo(t)
	f.crumbStarted = make(chan struct{}, 1)
	f.crumbGate = make(chan struct{})

	c := newTestClient(srv)

	ctxA, cancelA := context.WithCancel(t.Context())
	errA := make(chan error, 1)
	go func() {
		_, err := c.ensureCrumb(ctxA)
		errA <- err
	}()

	select {
	case <-f.crumbStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("crumb handshake never started")
	}

	type result struct {
		crumb string
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		crumb, err := c.ensureCrumb(t.Context())
		resB <- result{crumb, err}
	}()
	// Let B join the in-flight handshake.
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected caller A to see context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("caller A did not return after cancel")
	}

	close(f.crumbGate)
	select {
	case res := <-resB:
		if res.err != nil {
			t.Fatalf("caller B failed: %v", res.err)
		}
		if res.crumb != "abc123" {
			t.Errorf("unexpected crumb %q", res.crumb)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("caller B did not return")
	}

	if got := f.crumbCalls.Load(); got != 1 {
		t.Errorf("expected 1 shared handshake, got %d", got)
	}
}

func TestNewClient_TimeoutAppliesOnlyToDefaultClient(t *testing.T) {
	c := NewClient(WithTimeout(5 * time.Second))
	hc, ok := c.httpClient.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", c.httpClient)
	}
	if hc.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", hc.Timeout)
	}
	if hc.Jar == nil {
		t.Error("default client needs a cookie jar")
	}

	custom := &http.Client{Timeout: time.Minute}
	c = NewClient(WithHTTPClient(custom), WithTimeout(5*time.Second))
	if c.httpClient != custom {
		t.Error("expected caller's client to be used")
	}
	if custom.Timeout != time.Minute {
		t.Errorf("caller's client was modified: %v", custom.Timeout)
	}
	if c.timeout != 5*time.Second {
		t.Errorf("expected handshake timeout 5s, got %v", c.timeout)
	}

	c = NewClient(WithTimeout(5*time.Second), WithHTTPClient(custom))
	if custom.Timeout != time.Minute {
		t.Errorf("option order changed the caller's client: %v", custom.Timeout)
	}
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc..."},
		{"a€b", 2, "a..."},
		{"a€b", 3, "a..."},
		{"a€b", 4, "a€..."},
		{"€€", 1, "..."},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.in, tt.n)
		}
	}
}
