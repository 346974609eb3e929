package greeting

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agilisium/greeter/internal/web"
)

type Test struct {
	method         string
	path           string
	expectedStatus int
	expectedBody   string
}

func greetingTestServer(t *testing.T) *web.Server {
	t.Helper()
	s := web.NewServer(web.DefaultServerConfig())
	s.SetLogger(log.New(io.Discard, "", 0))
	if err := Register(s); err != nil {
		t.Fatal(err)
	}
	return s
}

func testFull(t *testing.T, s *web.Server, test Test) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(test.method, test.path, nil))
	if rec.Code != test.expectedStatus {
		t.Errorf("%s %s: expected status %d got %d", test.method, test.path, test.expectedStatus, rec.Code)
	}
	if test.expectedBody != "" && rec.Body.String() != test.expectedBody {
		t.Errorf("%s %s: expected body %q got %q", test.method, test.path, test.expectedBody, rec.Body.String())
	}
}

var greetingTests = []Test{
	{"GET", "/", 200, "<p>Hello, Welcome to Agilisium Devops Team :) :)!</p>"},
	{"GET", "/hello/Ravi", 200, "<h1>Hello, Welcome to Agilisium Devops Team Ravi!</h1>"},
	{"GET", "/hello/devops-2024_x.y~z", 200, "<h1>Hello, Welcome to Agilisium Devops Team devops-2024_x.y~z!</h1>"},
	{"GET", "/hello/J%C3%BCrgen", 200, "<h1>Hello, Welcome to Agilisium Devops Team Jürgen!</h1>"},
	{"GET", "/hello/a%20b", 200, "<h1>Hello, Welcome to Agilisium Devops Team a b!</h1>"},
	{"GET", "/hello/%3Cem%3EX", 200, "<h1>Hello, Welcome to Agilisium Devops Team <em>X!</h1>"},
	{"GET", "/hello/" + strings.Repeat("n", 4096), 200,
		"<h1>Hello, Welcome to Agilisium Devops Team " + strings.Repeat("n", 4096) + "!</h1>"},
	{"GET", "/unknown", 404, ""},
	{"GET", "/hello", 404, ""},
	{"GET", "/hello/", 404, ""},
	{"GET", "/hello/a/b", 404, ""},
	{"POST", "/", 405, ""},
	{"POST", "/hello/x", 405, ""},
}

func TestGreetingRoutes(t *testing.T) {
	s := greetingTestServer(t)
	for _, test := range greetingTests {
		testFull(t, s, test)
	}
}

func TestGreetingContentType(t *testing.T) {
	s := greetingTestServer(t)
	for _, path := range []string{"/", "/hello/x"} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
			t.Errorf("%s: expected html content type, got %q", path, ct)
		}
	}
}

func TestHelloReflectsNameVerbatim(t *testing.T) {
	names := []string{"", "X", "<b>X</b>", "<script>alert(1)</script>", "%s", "a/b", "&amp;"}
	for _, name := range names {
		want := "<h1>Hello, Welcome to Agilisium Devops Team " + name + "!</h1>"
		if got := Hello(name); got != want {
			t.Errorf("Hello(%q): expected %q got %q", name, want, got)
		}
	}
}

func TestRootIsConstant(t *testing.T) {
	if Root() != Root() || Root() != rootPage {
		t.Errorf("unexpected root page %q", Root())
	}
}
