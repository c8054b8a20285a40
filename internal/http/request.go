package http

import (
	"encoding/json"
	"io"
	"net/http"
)

// maxBodyBytes bounds request bodies; expense inputs are short free text.
const maxBodyBytes = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}
