// Package app contains application services and port definitions for the position context.
package app

import (
	"context"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
)

// ObjectStore defines the interface for reading owned on-chain objects.
type ObjectStore interface {
	GetOwnedObjectsByType(ctx context.Context, owner, typeTag string) ([]ledgerdomain.ObjectRecord, error)
}
