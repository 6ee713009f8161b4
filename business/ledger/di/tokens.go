// Package di contains dependency injection tokens for the ledger context.
package di

import (
	"github.com/fd1az/yieldsplit/business/ledger/app"
	"github.com/fd1az/yieldsplit/internal/di"
)

// Public service tokens - exposed to other modules
var (
	LedgerService = di.NewToken[*app.LedgerService]("ledger.LedgerService")
)

// Private dependency tokens - internal to ledger module
var (
	Executor         = di.NewToken[app.Executor]("ledger:executor")
	ObjectStore      = di.NewToken[app.ObjectStore]("ledger:objectStore")
	CheckpointStream = di.NewToken[app.CheckpointStream]("ledger:checkpointStream")
)

// Helper functions for type-safe access
func GetLedgerService(c di.ServiceRegistry) *app.LedgerService {
	return di.GetToken(c, LedgerService)
}

func GetExecutor(c di.ServiceRegistry) app.Executor {
	return di.GetToken(c, Executor)
}

func GetObjectStore(c di.ServiceRegistry) app.ObjectStore {
	return di.GetToken(c, ObjectStore)
}

func GetCheckpointStream(c di.ServiceRegistry) app.CheckpointStream {
	return di.GetToken(c, CheckpointStream)
}
