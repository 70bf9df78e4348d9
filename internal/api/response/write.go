package response

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// JSON writes a JSON response. Game views carry private racks, so responses are never cached.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(data)
	}
}
