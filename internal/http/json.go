package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// maxRequestBody caps request bodies accepted by DecodeJSON. Every payload in
// the system is a small JSON object; anything near this limit is abuse.
const maxRequestBody = 1 << 20

// DecodeJSON decodes the request body into dst, rejecting unknown fields and
// oversized payloads. On failure it writes a 400 response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

// WriteJSON encodes v and writes it with the given status. Encoding happens
// into a buffer first so an encoding failure never produces a half-written
// 200 response.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// Write errors mean the client went away; there is nothing left to do.
	_, _ = buf.WriteTo(w)
}

// WriteError writes the canonical error envelope: a machine-readable error
// code and a human-readable message.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, map[string]string{"error": errCode, "message": message})
}
