// Package app contains application services and port definitions for the position context.
package app

import (
	"context"
	"strconv"

	ledgerdomain "github.com/fd1az/yieldsplit/business/ledger/domain"
	marketdomain "github.com/fd1az/yieldsplit/business/market/domain"
	"github.com/fd1az/yieldsplit/business/position/domain"
	"github.com/fd1az/yieldsplit/internal/logger"
)

// Object field names of the position records.
const (
	fieldPTBalance     = "pt_balance"
	fieldYTBalance     = "yt_balance"
	fieldLPBalance     = "lp_balance"
	fieldExpiry        = "expiry"
	fieldPYStateID     = "py_state_id"
	fieldMarketStateID = "market_state_id"
)

// Aggregator reduces a user's owned position objects into logical balances
// for one market. Aggregation is read-only and never cached: every action
// re-fetches so it never acts on stale balances.
type Aggregator struct {
	objects ObjectStore
	log     logger.LoggerInterface
}

// NewAggregator creates a new Aggregator.
func NewAggregator(objects ObjectStore, log logger.LoggerInterface) *Aggregator {
	return &Aggregator{objects: objects, log: log}
}

// Aggregate fetches and reduces all of owner's positions for the market.
// Zero matching positions yields zero balances, not an error.
func (a *Aggregator) Aggregate(ctx context.Context, owner string, m *marketdomain.Market) (*domain.Balances, error) {
	balances := domain.NewBalances(m.PT, m.YT, m.LP)

	pyRecords, err := a.objects.GetOwnedObjectsByType(ctx, owner, m.PYPositionType)
	if err != nil {
		return nil, err
	}
	for i := range pyRecords {
		p, err := decodePY(&pyRecords[i])
		if err != nil {
			return nil, err
		}
		if !matchesPY(p, m) {
			continue
		}
		balances.AddPY(p)
	}

	lpRecords, err := a.objects.GetOwnedObjectsByType(ctx, owner, m.MarketPositionType)
	if err != nil {
		return nil, err
	}
	for i := range lpRecords {
		p, err := decodeLP(&lpRecords[i])
		if err != nil {
			return nil, err
		}
		if !matchesLP(p, m) {
			continue
		}
		balances.AddLP(p)
	}

	a.log.Debug(ctx, "aggregated positions",
		"owner", owner,
		"market", m.Symbol,
		"py_positions", len(balances.PYPositions),
		"lp_positions", len(balances.LPPositions),
		"pt", balances.PT.String(),
		"yt", balances.YT.String(),
		"lp", balances.LP.String(),
	)

	return balances, nil
}

// matchesPY defends against stale or cross-market objects showing up in a
// broad ownership query: both maturity and py-state must match exactly.
func matchesPY(p domain.PYPosition, m *marketdomain.Market) bool {
	return p.MaturityMs == m.MaturityMs && p.PYStateID == m.PYStateID
}

func matchesLP(p domain.LPPosition, m *marketdomain.Market) bool {
	return p.MaturityMs == m.MaturityMs && p.MarketStateID == m.MarketStateID
}

func decodePY(rec *ledgerdomain.ObjectRecord) (domain.PYPosition, error) {
	pt, err := rec.FieldBig(fieldPTBalance)
	if err != nil {
		return domain.PYPosition{}, err
	}
	yt, err := rec.FieldBig(fieldYTBalance)
	if err != nil {
		return domain.PYPosition{}, err
	}
	stateID, _ := rec.Field(fieldPYStateID)
	return domain.PYPosition{
		ObjectID:   rec.ObjectID,
		PTBalance:  pt,
		YTBalance:  yt,
		MaturityMs: fieldInt64(rec, fieldExpiry),
		PYStateID:  stateID,
	}, nil
}

func decodeLP(rec *ledgerdomain.ObjectRecord) (domain.LPPosition, error) {
	lp, err := rec.FieldBig(fieldLPBalance)
	if err != nil {
		return domain.LPPosition{}, err
	}
	stateID, _ := rec.Field(fieldMarketStateID)
	return domain.LPPosition{
		ObjectID:      rec.ObjectID,
		LPBalance:     lp,
		MaturityMs:    fieldInt64(rec, fieldExpiry),
		MarketStateID: stateID,
	}, nil
}

func fieldInt64(rec *ledgerdomain.ObjectRecord, name string) int64 {
	raw, ok := rec.Field(name)
	if !ok {
		return 0
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}
