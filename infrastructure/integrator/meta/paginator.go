package meta

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-sync-api/infrastructure/integrator/meta/ratelimit"
)

// DrainPages esgota uma coleção paginada por cursor, acumulando todos os
// itens na ordem original. Cada página passa pelo Executor, e um atraso fixo
// é aplicado entre páginas. Um erro de cursor inválido no meio da paginação é
// tratado como fim limpo: retorna o que foi acumulado até ali. Qualquer outro
// erro é propagado inalterado.
func DrainPages[T any](
	ctx context.Context,
	exec *ratelimit.Executor,
	call ratelimit.CallContext,
	pageDelay time.Duration,
	fetch func(after string) (metadomain.Page[T], error),
) ([]T, error) {
	items := make([]T, 0)
	after := ""

	for {
		page, err := ratelimit.Execute(ctx, exec, call, func() (metadomain.Page[T], error) {
			return fetch(after)
		})
		if err != nil {
			if metadomain.IsInvalidCursorError(err) {
				logrus.WithFields(logrus.Fields{
					"endpoint": call.Endpoint,
					"items":    len(items),
				}).Warn("paginator: cursor inválido encontrado, encerrando paginação")
				return items, nil
			}
			return nil, err
		}

		items = append(items, page.Data...)

		after = page.After()
		if after == "" {
			return items, nil
		}

		if pageDelay > 0 {
			time.Sleep(pageDelay)
		}
	}
}
