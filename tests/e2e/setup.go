//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"paylink-vending/cmd/bootstrap"
	"paylink-vending/cmd/bootstrap/components"
	"paylink-vending/internal/pkg/config"
	"paylink-vending/tests/common/authtest"
	"paylink-vending/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// 各テストプロセス用にセットアップ
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T, provider *FakeProvider, gateway *FakeGateway) (*pgxpool.Pool, *gin.Engine, config.Config) {
	gin.SetMode(gin.TestMode)

	pool, dbConfig := dbtest.NewPostgres(t)

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig
	cfg.Storage.Driver = config.StorageDriverPostgres
	cfg.Provider.BaseURL = provider.URL()
	cfg.Gateway.BaseURL = gateway.URL()

	router, app := buildE2EApp(pool, cfg)
	require.NotNil(t, router, "Routerのセットアップに失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
	})

	return pool, router, cfg
}

// ------------------------------------------------------------
// E2Eテスト用アプリケーション構築関数
// ------------------------------------------------------------
func buildE2EApp(pool *pgxpool.Pool, cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	app := fx.New(
		fx.Provide(func() config.Config { return cfg }),
		fx.Provide(func() components.PoolOpener {
			return func() (*pgxpool.Pool, error) { return pool, nil }
		}),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.ClientModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}
	return router, app
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router   *gin.Engine
	DB       *pgxpool.Pool
	Config   config.Config
	JWT      *authtest.JWTHelper
	Provider *FakeProvider
	Gateway  *FakeGateway
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	s.Provider = NewFakeProvider(t)
	s.Gateway = NewFakeGateway(t)
	s.DB, s.Router, s.Config = setupE2EEnvironment(t, s.Provider, s.Gateway)
	s.JWT = authtest.NewJWTHelper(s.Config.JWT)
}

// SetupSubTest gives every subtest an empty database and fresh upstream fakes.
func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "Failed to reset database state")
	s.Provider.Reset()
	s.Gateway.Reset()
}
