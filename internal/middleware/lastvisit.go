package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const LastVisitCookie = "UNIVERSITY_LAST_VISIT"

const lastVisitLayout = time.RFC3339

// Visit is the previous visit read from the request: either a timestamp or
// the first-visit marker.
type Visit struct {
	at    time.Time
	first bool
}

func FirstVisit() Visit {
	return Visit{first: true}
}

func VisitedAt(t time.Time) Visit {
	return Visit{at: t}
}

func (v Visit) IsFirst() bool {
	return v.first
}

// Time returns the previous visit time; ok is false on a first visit.
func (v Visit) Time() (t time.Time, ok bool) {
	if v.first {
		return time.Time{}, false
	}
	return v.at, true
}

func (v Visit) String() string {
	if v.first {
		return "First visit."
	}
	return v.at.Format(lastVisitLayout)
}

func (v Visit) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Visit) UnmarshalText(b []byte) error {
	t, err := time.Parse(lastVisitLayout, string(b))
	if err != nil {
		*v = FirstVisit()
		return nil
	}
	*v = VisitedAt(t)
	return nil
}

type LastVisitConfig struct {
	// MaxAge of the refreshed cookie in seconds; 0 makes it a session cookie.
	MaxAge int
	Secure bool
	Now    func() time.Time
}

// LastVisit reads the visit cookie into the request context and refreshes it
// with the current server time on every request.
func LastVisit(cfg LastVisitConfig) gin.HandlerFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		c.Set(LastVisitCookie, readVisit(c))

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(
			LastVisitCookie,
			now().Format(lastVisitLayout),
			cfg.MaxAge,
			"/",
			"",
			cfg.Secure,
			true,
		)

		c.Next()
	}
}

func readVisit(c *gin.Context) Visit {
	raw, err := c.Cookie(LastVisitCookie)
	if err != nil || raw == "" {
		return FirstVisit()
	}

	t, err := time.Parse(lastVisitLayout, raw)
	if err != nil {
		log.Debug().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("cookie", raw).
			Err(err).
			Msg("malformed last visit cookie")
		return FirstVisit()
	}

	return VisitedAt(t)
}

// GetLastVisit returns the visit recorded by LastVisit, or FirstVisit when the
// middleware did not run for this request.
func GetLastVisit(c *gin.Context) Visit {
	v, exists := c.Get(LastVisitCookie)
	if !exists {
		return FirstVisit()
	}

	visit, ok := v.(Visit)
	if !ok {
		return FirstVisit()
	}

	return visit
}
