package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// QuickRevenueEntry is a lightweight revenue note kept in the secondary
// store. These entries are a scratchpad separate from the revenue ledger;
// GET returns only the most recent five.
type QuickRevenueEntry struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Source    string          `json:"source"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

const quickRevenueKeep = 5

// QuickRevenueService stores quick revenue entries per tenant in the
// secondary store.
type QuickRevenueService interface {
	// Recent returns up to the last 5 entries, newest first.
	Recent(ctx context.Context, companyID string) ([]QuickRevenueEntry, error)

	// Add pushes a new entry and trims the list to the retained window.
	Add(ctx context.Context, companyID string, amount decimal.Decimal, source, note string) (string, error)
}

type quickRevenueService struct {
	client *redis.Client
}

// NewQuickRevenueService constructs a QuickRevenueService on the given client.
func NewQuickRevenueService(client *redis.Client) QuickRevenueService {
	return &quickRevenueService{client: client}
}

func quickRevenueKey(companyID string) string {
	return "quickrev:" + companyID
}

func (s *quickRevenueService) Recent(ctx context.Context, companyID string) ([]QuickRevenueEntry, error) {
	raw, err := s.client.LRange(ctx, quickRevenueKey(companyID), 0, quickRevenueKeep-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read quick revenue entries: %w", err)
	}

	out := make([]QuickRevenueEntry, 0, len(raw))
	for _, item := range raw {
		var e QuickRevenueEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode quick revenue entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *quickRevenueService) Add(ctx context.Context, companyID string, amount decimal.Decimal, source, note string) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("amount must be positive, got %s", amount)
	}
	if source == "" {
		return "", fmt.Errorf("source is required")
	}

	entry := QuickRevenueEntry{
		ID:        uuid.NewString(),
		Amount:    amount,
		Source:    source,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("encode quick revenue entry: %w", err)
	}

	key := quickRevenueKey(companyID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, quickRevenueKeep-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store quick revenue entry: %w", err)
	}
	return entry.ID, nil
}
