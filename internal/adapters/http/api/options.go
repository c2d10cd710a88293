package api

import "github.com/okian/skillrate/pkg/logger"

const defaultMaxRequestBytes int64 = 1 << 20

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithRateLimit enables per-IP rate limiting of requests per window.
func WithRateLimit(requests, windowSec int) Option {
	return func(s *Server) {
		if requests > 0 && windowSec > 0 {
			s.rateLimit = true
			s.rateRequests = requests
			s.rateWindowSec = windowSec
		}
	}
}

// WithMaxRequestBytes caps the size of request bodies.
func WithMaxRequestBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRequestBytes = n
		}
	}
}

// WithLogger sets the logger used by handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}
