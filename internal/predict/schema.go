package predict

import (
	"net/http"

	"github.com/go-sod/attrition/internal/httputil"
)

type ColumnsProvider interface {
	Columns() []string
}

// HandleSchema serves the frozen feature columns in training order.
func HandleSchema(provider ColumnsProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		httputil.RespJSON(r.Context(), w, http.StatusOK, struct {
			Columns []string `json:"columns"`
		}{Columns: provider.Columns()})
	})
}
