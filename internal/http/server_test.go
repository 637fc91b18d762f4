package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	applog "despesas/internal/log"
	"despesas/internal/services"
)

type stubExtractor struct {
	cmd services.Command
	err error
	got string
}

func (s *stubExtractor) Extract(ctx context.Context, text string) (services.Command, error) {
	s.got = text
	return s.cmd, s.err
}

type stubHandler struct {
	reply services.Reply
	owner string
	cmd   services.Command
}

func (s *stubHandler) Handle(ctx context.Context, ownerID string, cmd services.Command) services.Reply {
	s.owner = ownerID
	s.cmd = cmd
	return s.reply
}

func newTestServer(extractor IntentExtractor, handler CommandHandler) *httptest.Server {
	logger := applog.New(applog.Config{Level: slog.LevelError})
	srv := NewServer(":0", extractor, handler, logger)
	return httptest.NewServer(srv.Handler)
}

func postWebhook(t *testing.T, ts *httptest.Server, form url.Values) *http.Response {
	t.Helper()
	resp, err := http.PostForm(ts.URL+"/webhook", form)
	if err != nil {
		t.Fatalf("post webhook: %v", err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(data)
}

func TestWebhookRepliesWithTwiML(t *testing.T) {
	extractor := &stubExtractor{cmd: services.Command{Op: services.OpGreet}}
	handler := &stubHandler{reply: services.Reply{Text: "Hello! How can I help?"}}
	ts := newTestServer(extractor, handler)
	defer ts.Close()

	resp := postWebhook(t, ts, url.Values{
		"Body": {"hello"},
		"From": {"whatsapp:+5511987654321"},
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/xml") {
		t.Errorf("content type = %q, want text/xml", ct)
	}

	body := readBody(t, resp)
	if !strings.Contains(body, "<Response><Message>Hello! How can I help?</Message></Response>") {
		t.Errorf("body = %q, want a TwiML message", body)
	}

	if extractor.got != "hello" {
		t.Errorf("extractor received %q, want the raw body", extractor.got)
	}
	if handler.owner != "whatsapp:+5511987654321" {
		t.Errorf("handler owner = %q", handler.owner)
	}
	if handler.cmd.Op != services.OpGreet {
		t.Errorf("handler op = %q", handler.cmd.Op)
	}
}

func TestWebhookEscapesReply(t *testing.T) {
	extractor := &stubExtractor{cmd: services.Command{Op: services.OpGreet}}
	handler := &stubHandler{reply: services.Reply{Text: "5 < 6 & more"}}
	ts := newTestServer(extractor, handler)
	defer ts.Close()

	resp := postWebhook(t, ts, url.Values{"Body": {"hi"}, "From": {"U1"}})
	body := readBody(t, resp)
	if !strings.Contains(body, "5 &lt; 6 &amp; more") {
		t.Errorf("body = %q, want XML-escaped message", body)
	}
}

func TestWebhookMissingSender(t *testing.T) {
	ts := newTestServer(&stubExtractor{}, &stubHandler{})
	defer ts.Close()

	resp := postWebhook(t, ts, url.Values{"Body": {"hello"}})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestWebhookExtractionFailureStillReplies(t *testing.T) {
	extractor := &stubExtractor{
		cmd: services.Command{Op: services.OpUnrecognized},
		err: fmt.Errorf("model unavailable"),
	}
	handler := &stubHandler{reply: services.Reply{Text: "Sorry, I didn't understand that."}}
	ts := newTestServer(extractor, handler)
	defer ts.Close()

	resp := postWebhook(t, ts, url.Values{"Body": {"???"}, "From": {"U1"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite extraction failure", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "didn&#39;t understand") && !strings.Contains(body, "didn't understand") {
		t.Errorf("body = %q, want the fallback reply", body)
	}
}

func TestWebhookRejectsGet(t *testing.T) {
	ts := newTestServer(&stubExtractor{}, &stubHandler{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/webhook")
	if err != nil {
		t.Fatalf("get webhook: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(&stubExtractor{}, &stubHandler{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
