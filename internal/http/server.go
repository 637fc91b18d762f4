// Package http is the webhook edge: it receives Twilio-style form
// posts, hands the message text to the intent extractor, runs the
// resulting command, and answers with TwiML. No ledger logic lives
// here.
package http

import (
	"context"
	"encoding/xml"
	"net/http"

	applog "despesas/internal/log"
	"despesas/internal/services"
)

// IntentExtractor maps a raw message to a typed command.
type IntentExtractor interface {
	Extract(ctx context.Context, text string) (services.Command, error)
}

// CommandHandler runs one command to completion.
type CommandHandler interface {
	Handle(ctx context.Context, ownerID string, cmd services.Command) services.Reply
}

type webhookHandler struct {
	extractor IntentExtractor
	handler   CommandHandler
}

// NewServer wires the webhook and health routes behind the logging
// middleware. Timeouts are the caller's to set, as in cmd/despesas.
func NewServer(addr string, extractor IntentExtractor, handler CommandHandler, logger *applog.Logger) *http.Server {
	wh := &webhookHandler{extractor: extractor, handler: handler}

	mux := http.NewServeMux()
	mux.Handle("/webhook", http.HandlerFunc(wh.serveWebhook))
	mux.Handle("/healthz", http.HandlerFunc(serveHealth))

	chain := applog.Middleware(logger)(applog.ComponentMiddleware(applog.ComponentHTTP)(mux))

	return &http.Server{
		Addr:    addr,
		Handler: chain,
	}
}

// twiml is the minimal Twilio messaging response body.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func (h *webhookHandler) serveWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "Malformed webhook form", applog.FieldError, err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	body := r.PostFormValue("Body")
	from := r.PostFormValue("From")
	if from == "" {
		http.Error(w, "missing sender", http.StatusBadRequest)
		return
	}

	cmd, err := h.extractor.Extract(ctx, body)
	if err != nil {
		// The extractor already degraded cmd to unrecognized; the user
		// still gets the help message.
		logger.WarnContext(ctx, "Intent extraction failed",
			applog.FieldOwnerID, from,
			applog.FieldError, err)
	}

	reply := h.handler.Handle(ctx, from, cmd)

	logger.InfoContext(ctx, "Webhook handled",
		applog.FieldOwnerID, from,
		applog.FieldOperation, string(cmd.Op),
		applog.FieldArtifact, reply.ArtifactPath)

	writeTwiML(w, reply.Text)
}

func serveHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeTwiML(w http.ResponseWriter, message string) {
	out, err := xml.Marshal(twiml{Message: message})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
