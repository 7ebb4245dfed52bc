// Package testutil reúne apoio para testes com banco em memória.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/GaleriaDecor/api-arquiteto/internal/notificacao"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NovoDB abre um sqlite em memória exclusivo do teste e migra os modelos.
func NovoDB(t testing.TB, modelos ...any) *gorm.DB {
	t.Helper()
	nome := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", nome)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(modelos) > 0 {
		require.NoError(t, db.AutoMigrate(modelos...))
	}
	return db
}

func Dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// AssertDecimal compara por valor, ignorando zeros à direita.
func AssertDecimal(t testing.TB, esperado string, obtido decimal.Decimal, msgAndArgs ...any) bool {
	t.Helper()
	if Dec(esperado).Equal(obtido) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("decimal diferente: esperado %s, obtido %s", esperado, obtido), msgAndArgs...)
}

// Notificador guarda os eventos recebidos, para asserções.
type Notificador struct {
	mu      sync.Mutex
	eventos []notificacao.Evento
}

func (n *Notificador) Notificar(_ context.Context, ev notificacao.Evento) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.eventos = append(n.eventos, ev)
	return nil
}

func (n *Notificador) Tipos() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.eventos))
	for _, ev := range n.eventos {
		out = append(out, ev.Tipo)
	}
	return out
}
