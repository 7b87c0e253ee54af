package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nhle/notifyview/internal/model"
)

// Notifications returns n distinct records. Even-numbered records are sent
// and read; odd-numbered ones have no schedule.
func Notifications(n int) []model.Notification {
	base := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	out := make([]model.Notification, n)
	for i := range out {
		created := base.Add(time.Duration(i) * time.Hour)
		out[i] = model.Notification{
			ID:        fmt.Sprintf("n-%d", i+1),
			Role:      "user",
			Message:   fmt.Sprintf("Notification %d", i+1),
			CreatedAt: model.ParseTimestamp(created.Format(time.RFC3339)),
			IsSent:    i%2 == 0,
			IsRead:    i%2 == 0,
		}
		if i%2 == 0 {
			out[i].ScheduledAt = model.ParseTimestamp(created.Add(30 * time.Minute).Format(time.RFC3339))
		}
	}
	return out
}

// APIServer is an httptest server that answers every request with a fixed
// status and body and counts the requests it receives.
type APIServer struct {
	*httptest.Server
	hits     atomic.Int32
	lastPath atomic.Value
}

// NewAPIServer starts a server replying with status and body. It is closed
// when the test completes.
func NewAPIServer(t *testing.T, status int, body string) *APIServer {
	t.Helper()

	s := &APIServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.lastPath.Store(r.Method + " " + r.URL.RequestURI())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)

	return s
}

// Hits returns the number of requests served so far.
func (s *APIServer) Hits() int {
	return int(s.hits.Load())
}

// LastRequest returns "METHOD /path?query" of the latest request.
func (s *APIServer) LastRequest() string {
	v, _ := s.lastPath.Load().(string)
	return v
}
