package app

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// SecureHeaders applies the standard security response headers.
func SecureHeaders(isProduction bool) func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      !isProduction,
	})
	return sec.Handler
}

// LoginRateLimit throttles credential guessing per client IP.
func LoginRateLimit() func(http.Handler) http.Handler {
	return httprate.LimitByIP(10, time.Minute)
}
