package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

type api struct {
	svc *Service
}

// setupRouter wires every endpoint to the service.
func setupRouter(svc *Service) http.Handler {
	a := &api{svc: svc}

	r := mux.NewRouter()
	r.Use(loggingMiddleware, metricsMiddleware)

	r.HandleFunc("/register", a.registerHandler).Methods(http.MethodPost)
	r.HandleFunc("/login", a.loginHandler).Methods(http.MethodPost)
	r.HandleFunc("/messages", a.createMessageHandler).Methods(http.MethodPost)
	r.HandleFunc("/messages", a.listMessagesHandler).Methods(http.MethodGet)
	r.HandleFunc("/messages/{message_id}", a.getMessageHandler).Methods(http.MethodGet)
	r.HandleFunc("/messages/{message_id}", a.deleteMessageHandler).Methods(http.MethodDelete)
	r.HandleFunc("/messages/{message_id}", a.updateMessageHandler).Methods(http.MethodPatch)
	r.HandleFunc("/accounts/{account_id}/messages", a.accountMessagesHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metricsHandler()).Methods(http.MethodGet)

	return cleanPath(r)
}

// POST /register — 400 when the account is rejected
func (a *api) registerHandler(w http.ResponseWriter, r *http.Request) {
	var acct Account
	if err := decodeJSON(r, &acct); err != nil {
		writeError(w, r, invalid("%v", err), http.StatusBadRequest)
		return
	}

	created, err := a.svc.Register(r.Context(), acct)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// POST /login — 401 when the credentials do not match
func (a *api) loginHandler(w http.ResponseWriter, r *http.Request) {
	var acct Account
	if err := decodeJSON(r, &acct); err != nil {
		writeError(w, r, invalid("%v", err), http.StatusBadRequest)
		return
	}

	verified, err := a.svc.Login(r.Context(), acct)
	if err != nil {
		writeError(w, r, err, http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, verified)
}

// POST /messages
func (a *api) createMessageHandler(w http.ResponseWriter, r *http.Request) {
	var m Message
	if err := decodeJSON(r, &m); err != nil {
		writeError(w, r, invalid("%v", err), http.StatusBadRequest)
		return
	}

	posted, err := a.svc.PostMessage(r.Context(), m)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, posted)
}

// GET /messages
func (a *api) listMessagesHandler(w http.ResponseWriter, r *http.Request) {
	messages, err := a.svc.ListAllMessages(r.Context())
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// GET /messages/{message_id} — empty body when there is no such message
func (a *api) getMessageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "message_id")
	if err != nil {
		writeError(w, r, invalid("%v", err), http.StatusBadRequest)
		return
	}

	m, ok, err := a.svc.GetMessage(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		writeStatus(w, http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DELETE /messages/{message_id} — responds with the deleted message, or an
// empty body when nothing was there
func (a *api) deleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "message_id")
	if err != nil {
		writeError(w, r, invalid("%v", err), http.StatusBadRequest)
		return
	}

	m, ok, err := a.svc.DeleteMessage(r.Context(), id)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	if !ok {
		writeStatus(w, http.StatusOK)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// PATCH /messages/{message_id}
func (a *api) updateMessageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "message_id")
	if err != nil {
		writeError(w, r, invalid("%v", err), http.StatusBadRequest)
		return
	}

	var body struct {
		MessageText *string `json:"message_text"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, invalid("%v", err), http.StatusBadRequest)
		return
	}
	if body.MessageText == nil {
		writeError(w, r, invalid("message_text is required"), http.StatusBadRequest)
		return
	}

	updated, err := a.svc.UpdateMessage(r.Context(), id, *body.MessageText)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// GET /accounts/{account_id}/messages
func (a *api) accountMessagesHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathInt(r, "account_id")
	if err != nil {
		writeError(w, r, invalid("%v", err), http.StatusBadRequest)
		return
	}

	messages, err := a.svc.ListMessagesByAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// GET /health
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
