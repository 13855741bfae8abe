package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/goliatone/go-forminterp/pkg/interp"
	"github.com/goliatone/go-forminterp/pkg/orchestrator"
	"github.com/goliatone/go-forminterp/pkg/program"
	"github.com/goliatone/go-forminterp/pkg/testsupport"
)

type htmlNode = html.Node

func newTestServer(t *testing.T, options ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(orchestrator.New(), options...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postForm(t *testing.T, target string, values url.Values) (int, string) {
	t.Helper()
	resp, err := http.PostForm(target, values)
	if err != nil {
		t.Fatalf("post %s: %v", target, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func sessionID(t *testing.T, body string) string {
	t.Helper()
	doc := testsupport.MustParseHTML(t, []byte(body))
	input := testsupport.FindFirst(doc, func(n *htmlNode) bool {
		return n.Data == "input" && testsupport.Attr(n, "name") == "session"
	})
	if input == nil {
		t.Fatalf("session id not found in page:\n%s", body)
	}
	return testsupport.Attr(input, "value")
}

func sampleText(t *testing.T) string {
	t.Helper()
	data, err := program.Encode(program.Sample())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return string(data)
}

func TestIndex_SeedsSampleProgram(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	doc := testsupport.MustParseHTML(t, body)
	textarea := testsupport.FindFirst(doc, testsupport.IsTag("textarea"))
	if textarea == nil {
		t.Fatalf("expected program text box")
	}
	prog, err := program.Parse([]byte(testsupport.Text(textarea)))
	if err != nil {
		t.Fatalf("seeded program does not parse: %v", err)
	}
	if prog.Len() != 3 || prog.Fields[2].Callback != program.SampleCallback {
		t.Fatalf("unexpected seeded program %+v", prog)
	}
	if run := testsupport.FindFirst(doc, func(n *htmlNode) bool { return testsupport.Attr(n, "id") == "run" }); run == nil {
		t.Fatalf("expected run button")
	}
}

func TestRunAndClick_LoginRaisesAlert(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := postForm(t, ts.URL+"/run", url.Values{"program": {sampleText(t)}})
	if status != http.StatusOK {
		t.Fatalf("run: unexpected status %d:\n%s", status, body)
	}
	doc := testsupport.MustParseHTML(t, []byte(body))
	output := testsupport.FindFirst(doc, func(n *htmlNode) bool { return testsupport.Attr(n, "id") == "output" })
	if output == nil {
		t.Fatalf("expected output region")
	}
	fields := testsupport.FindAll(output, testsupport.HasClass("field"))
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	id := sessionID(t, body)
	status, body = postForm(t, ts.URL+"/forms/"+id+"/click", url.Values{
		"User Name": {"alice"},
		"Password":  {"s3cr3t"},
		ClickField:  {"Login"},
	})
	if status != http.StatusOK {
		t.Fatalf("click: unexpected status %d:\n%s", status, body)
	}
	doc = testsupport.MustParseHTML(t, []byte(body))
	notices := testsupport.FindAll(doc, testsupport.HasClass("notice"))
	if len(notices) != 1 || testsupport.Text(notices[0]) != "User: alice, Password: s3cr3t" {
		t.Fatalf("unexpected notices in page:\n%s", body)
	}
}

func TestClick_MissingCallbackNotice(t *testing.T) {
	_, ts := newTestServer(t, WithControllerFactory(func(interp.Notifier) *interp.Controller {
		return interp.NewController(nil)
	}))

	_, body := postForm(t, ts.URL+"/run", url.Values{"program": {sampleText(t)}})
	id := sessionID(t, body)
	_, body = postForm(t, ts.URL+"/forms/"+id+"/click", url.Values{
		"User Name": {"alice"},
		"Password":  {"s3cr3t"},
		ClickField:  {"Login"},
	})

	doc := testsupport.MustParseHTML(t, []byte(body))
	notice := testsupport.FindFirst(doc, testsupport.HasClass("notice"))
	want := `Target Function "loginClicked" not found in controller object. Arguments to be used will be: ["alice","s3cr3t"]`
	if notice == nil || testsupport.Text(notice) != want {
		t.Fatalf("unexpected notice in page:\n%s", body)
	}
}

func TestClick_CallbackErrorShown(t *testing.T) {
	_, ts := newTestServer(t, WithControllerFactory(func(interp.Notifier) *interp.Controller {
		return interp.NewController(map[string]interp.Callback{
			program.SampleCallback: func(...string) error { return errors.New("denied") },
		})
	}))

	_, body := postForm(t, ts.URL+"/run", url.Values{"program": {sampleText(t)}})
	id := sessionID(t, body)
	status, body := postForm(t, ts.URL+"/forms/"+id+"/click", url.Values{ClickField: {"Login"}})
	if status != http.StatusOK || !strings.Contains(body, "denied") {
		t.Fatalf("expected callback error in page, status %d:\n%s", status, body)
	}
}

func TestClick_Errors(t *testing.T) {
	_, ts := newTestServer(t)
	_, body := postForm(t, ts.URL+"/run", url.Values{"program": {sampleText(t)}})
	id := sessionID(t, body)

	cases := []struct {
		name   string
		target string
		values url.Values
		status int
	}{
		{"unknown session", "/forms/nope/click", url.Values{ClickField: {"Login"}}, http.StatusNotFound},
		{"missing click", "/forms/" + id + "/click", url.Values{}, http.StatusBadRequest},
		{"unknown button", "/forms/" + id + "/click", url.Values{ClickField: {"Logout"}}, http.StatusBadRequest},
		{"not a button", "/forms/" + id + "/click", url.Values{ClickField: {"Password"}}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := postForm(t, ts.URL+tc.target, tc.values)
			if status != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, status)
			}
		})
	}
}

func TestRun_ReplacesPriorSession(t *testing.T) {
	srv, ts := newTestServer(t)

	_, body := postForm(t, ts.URL+"/run", url.Values{"program": {sampleText(t)}})
	first := sessionID(t, body)
	_, body = postForm(t, ts.URL+"/run", url.Values{"program": {sampleText(t)}, "session": {first}})
	second := sessionID(t, body)

	if first == second {
		t.Fatalf("expected a fresh session")
	}
	if _, ok := srv.sessions.get(first); ok {
		t.Fatalf("prior session should be removed")
	}
	if srv.sessions.len() != 1 {
		t.Fatalf("expected one live session, got %d", srv.sessions.len())
	}
}

func TestRun_MalformedProgram(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := postForm(t, ts.URL+"/run", url.Values{"program": {`{"name": "nothing"}`}})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	doc := testsupport.MustParseHTML(t, []byte(body))
	if testsupport.FindFirst(doc, testsupport.HasClass("error")) == nil {
		t.Fatalf("expected error message in page:\n%s", body)
	}
}

func TestStore_EvictsOldest(t *testing.T) {
	s := newStore(2)
	a := s.create("a")
	s.create("b")
	s.create("c")
	if _, ok := s.get(a.ID); ok {
		t.Fatalf("oldest session should be evicted")
	}
	if s.len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.len())
	}
}

func TestFormFragmentAndHealth(t *testing.T) {
	_, ts := newTestServer(t)
	_, body := postForm(t, ts.URL+"/run", url.Values{"program": {sampleText(t)}})
	id := sessionID(t, body)

	resp, err := http.Get(ts.URL + "/forms/" + id)
	if err != nil {
		t.Fatalf("get fragment: %v", err)
	}
	fragment, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") || !strings.Contains(string(fragment), `class="form"`) {
		t.Fatalf("unexpected fragment %q", fragment)
	}

	resp, err = http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected health status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/assets/forminterp.css")
	if err != nil {
		t.Fatalf("get stylesheet: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected stylesheet status %d", resp.StatusCode)
	}
}
