// Package redisledger implements the coin ledger on Redis. Balances are
// plain integer keys mutated atomically through a Lua script so a balance can
// never go negative under concurrent deductions.
package redisledger

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"log/slog"

	"github.com/talentforge/assessment-engine/internal/domain"
)

const keyPrefix = "coins:"

// Deduct only when the current balance covers the amount; otherwise leave
// the balance untouched and return -1. A missing key is a zero balance.
const luaDeductScript = `
local key = KEYS[1]
local amount = tonumber(ARGV[1])

local balance = tonumber(redis.call("GET", key) or "0")
if balance < amount then
  return -1
end

return redis.call("DECRBY", key, amount)
`

// Ledger implements domain.Ledger.
type Ledger struct {
	rdb    *redis.Client
	script *redis.Script
}

// New constructs a Ledger over the given Redis client.
func New(rdb *redis.Client) *Ledger {
	return &Ledger{
		rdb:    rdb,
		script: redis.NewScript(luaDeductScript),
	}
}

// Deduct removes amount coins from the user's balance. Returns
// domain.ErrInsufficientCoins when the balance does not cover the amount.
func (l *Ledger) Deduct(ctx domain.Context, userID string, amount int64, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("op=ledger.deduct: %w: amount %d", domain.ErrInvalidArgument, amount)
	}
	res, err := l.script.Run(ctx, l.rdb, []string{keyPrefix + userID}, amount).Int64()
	if err != nil {
		return fmt.Errorf("op=ledger.deduct: %w", err)
	}
	if res < 0 {
		return fmt.Errorf("op=ledger.deduct: user %s: %w", userID, domain.ErrInsufficientCoins)
	}
	slog.Debug("coins deducted",
		slog.String("user_id", userID),
		slog.Int64("amount", amount),
		slog.String("reason", reason),
		slog.Int64("balance", res))
	return nil
}

// Balance returns the user's current coin balance. A missing key is zero.
func (l *Ledger) Balance(ctx domain.Context, userID string) (int64, error) {
	res, err := l.rdb.Get(ctx, keyPrefix+userID).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("op=ledger.balance: %w", err)
	}
	return res, nil
}

// Credit adds coins to a user's balance. Used by seeding and by operator
// tooling rather than the generation pipeline itself.
func (l *Ledger) Credit(ctx domain.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("op=ledger.credit: %w: amount %d", domain.ErrInvalidArgument, amount)
	}
	res, err := l.rdb.IncrBy(ctx, keyPrefix+userID, amount).Result()
	if err != nil {
		return 0, fmt.Errorf("op=ledger.credit: %w", err)
	}
	return res, nil
}
