package middleware

import "net/http"

var securityHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"Content-Security-Policy": "default-src 'none'",
}

// SecurityHeaders adiciona os cabeçalhos de segurança em todas as respostas
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for header, value := range securityHeaders {
				w.Header().Set(header, value)
			}

			next.ServeHTTP(w, r)
		})
	}
}
