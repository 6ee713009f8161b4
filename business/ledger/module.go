// Package ledger implements the ledger bounded context: node RPC access,
// plan simulation and submission, owned-object queries and checkpoints.
package ledger

import (
	"context"

	"github.com/fd1az/yieldsplit/business/ledger/app"
	ledgerDI "github.com/fd1az/yieldsplit/business/ledger/di"
	"github.com/fd1az/yieldsplit/business/ledger/infra/rpc"
	"github.com/fd1az/yieldsplit/internal/config"
	"github.com/fd1az/yieldsplit/internal/di"
	"github.com/fd1az/yieldsplit/internal/logger"
	"github.com/fd1az/yieldsplit/internal/monolith"
)

// Module implements the ledger bounded context.
type Module struct{}

// rpcClient is module-private; Executor and ObjectStore resolve to the
// same underlying client so limiter and breaker state are shared.
var rpcClient = di.NewToken[*rpc.Client]("ledger.rpcClient")

// RegisterServices registers all ledger services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, rpcClient, func(sr di.ServiceRegistry) *rpc.Client {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := rpc.NewClient(rpc.Config{
			RPCURL:            cfg.Ledger.RPCURL,
			SignerURL:         cfg.Wallet.SignerURL,
			RequestTimeout:    cfg.Ledger.RequestTimeout,
			RequestsPerMinute: cfg.Ledger.RequestsPerMinute,
		}, log)
		if err != nil {
			panic("failed to create ledger rpc client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, ledgerDI.Executor, func(sr di.ServiceRegistry) app.Executor {
		return di.GetToken(sr, rpcClient)
	})

	di.RegisterToken(c, ledgerDI.ObjectStore, func(sr di.ServiceRegistry) app.ObjectStore {
		return di.GetToken(sr, rpcClient)
	})

	di.RegisterToken(c, ledgerDI.CheckpointStream, func(sr di.ServiceRegistry) app.CheckpointStream {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return rpc.NewSubscriber(cfg.Ledger.WebSocketURL, log)
	})

	// Register LedgerService (public - exposed to other modules)
	di.RegisterToken(c, ledgerDI.LedgerService, func(sr di.ServiceRegistry) *app.LedgerService {
		log := sr.Get("logger").(logger.LoggerInterface)
		executor := ledgerDI.GetExecutor(sr)
		objects := ledgerDI.GetObjectStore(sr)
		stream := ledgerDI.GetCheckpointStream(sr)
		return app.NewLedgerService(executor, objects, stream, log)
	})

	return nil
}

// Startup initializes the ledger module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "ledger module started",
		"rpc_url", mono.Config().Ledger.RPCURL,
	)
	return nil
}
