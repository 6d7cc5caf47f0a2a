package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"incidentTrust/pkg/e"
	"incidentTrust/pkg/validator"
)

const maxBodyBytes = 1 << 20

// BindJSON decodes exactly one JSON object from the request body into target
// and shape-checks it. Unknown fields and trailing data are rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		return e.Validation("invalid JSON: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return e.Validation("invalid JSON: trailing data")
	}

	return validator.ValidateStruct(target)
}
