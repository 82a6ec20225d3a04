package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// --- Request helpers ---

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return errors.Wrap(json.NewDecoder(r.Body).Decode(v), "decode request body")
}

func pathInt(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, errors.Wrapf(err, "path parameter %s", name)
	}
	return id, nil
}

// --- Response helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("encode response body")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// writeStatus sends a status line with an empty body.
func writeStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// writeError maps a service error to a status: rejections get the status the
// endpoint uses for them, store failures and anything unknown get a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, rejected int) {
	status := http.StatusInternalServerError
	if !isStorageError(err) && rejectionReason(err) != "other" {
		status = rejected
	}
	log.WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	}).WithError(err).Info("request failed")
	writeStatus(w, status)
}
