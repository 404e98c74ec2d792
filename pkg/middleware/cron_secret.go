package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-sync-api/internal/config"
	"github.com/vfg2006/meta-sync-api/pkg/apiErrors"
)

// CronSecret protege os endpoints de disparo de cron: o parâmetro secret da
// query precisa bater com o configurado. Em desenvolvimento o gate é relaxado
// para facilitar testes locais.
func CronSecret(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.IsDevelopment() {
				next.ServeHTTP(w, r)
				return
			}

			secret := r.URL.Query().Get("secret")
			if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.Cron.Secret)) != 1 {
				logrus.WithFields(logrus.Fields{
					"path":        r.URL.Path,
					"remote_addr": r.RemoteAddr,
				}).Warn("Tentativa de acesso a endpoint de cron com secret inválido")
				apiErrors.WriteError(w, apiErrors.ErrInvalidSecret, "Secret inválido ou ausente", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
