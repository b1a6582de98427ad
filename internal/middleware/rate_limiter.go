package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Fpidal/recetas-tero-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Per-IP fixed-window counters. The panel is a small internal tool, so an
// in-process map is enough; no need for Redis-backed counters here.
type rateWindow struct {
	count int
	until time.Time
}

var (
	rateMu  sync.Mutex
	rateMap = make(map[string]*rateWindow)

	purgeOnce sync.Once
)

// RateLimiter caps requests per client IP to limit per window. Exceeding the
// cap returns 429 with a Retry-After header pointing at the window end.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	purgeOnce.Do(func() { go purgeLoop() })

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateMu.Lock()
		w, ok := rateMap[ip]
		if !ok || now.After(w.until) {
			w = &rateWindow{until: now.Add(window)}
			rateMap[ip] = w
		}
		w.count++
		count, until := w.count, w.until
		rateMu.Unlock()

		if count > limit {
			c.Header("Retry-After", until.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// purgeLoop drops windows that already closed so the map does not grow with
// every IP that ever hit the API.
func purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		rateMu.Lock()
		purged := 0
		for ip, w := range rateMap {
			if now.After(w.until) {
				delete(rateMap, ip)
				purged++
			}
		}
		remaining := len(rateMap)
		rateMu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("entries_purged", purged).
				Int("entries_remaining", remaining).
				Msg("rate limiter map purged")
		}
	}
}
