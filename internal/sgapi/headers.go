package sgapi

import "net/http"

// Headers builds the header set every API call carries: bearer auth
// and a descriptive user-agent, plus the JSON content type when the
// call has a JSON body.
func Headers(apiKey, userAgent string, jsonBody bool) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+apiKey)
	h.Set("User-Agent", userAgent)
	if jsonBody {
		h.Set("Content-Type", "application/json")
	}
	return h
}
