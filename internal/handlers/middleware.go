package handlers

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/armen4ik0/shoes-shop-app1/internal/auth"
)

type gzipWriter struct {
	http.ResponseWriter
	Writer io.Writer
}

func (w gzipWriter) Write(b []byte) (int, error) {
	// w.Writer будет отвечать за gzip-сжатие, поэтому пишем в него
	return w.Writer.Write(b)
}

func GzipMiddle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// проверяем, что клиент поддерживает gzip-сжатие
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gz, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
		if err != nil {
			io.WriteString(w, err.Error())
			return
		}
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		next.ServeHTTP(gzipWriter{ResponseWriter: w, Writer: gz}, r)
	})
}

// Authenticator validates the bearer token and passes the login and role on
// to the handlers through request headers.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		authParam := r.Header.Get("Authorization")
		if authParam == "" {
			http.Error(rw, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		token := strings.TrimPrefix(authParam, "Bearer ")

		login, role, err := auth.CheckToken(token)
		if err != nil || login == "" {
			http.Error(rw, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		r.Header.Set("Login", login)
		r.Header.Set("Role", role)

		next.ServeHTTP(rw, r)
	})
}

// RequireRole prohibits access for every role outside the given set.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			role := r.Header.Get("Role")
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(rw, r)
					return
				}
			}
			http.Error(rw, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}
