package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports backing-store reachability; satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewHealth returns a liveness endpoint that also verifies the database
// connection, so orchestrators restart the service when Postgres is gone.
func NewHealth(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "detail": "database unreachable"})
				return
			}
		}

		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	}
}
