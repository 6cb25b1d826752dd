package catalog

import (
	"context"
	"strings"

	pkgerrors "github.com/feiroulabs/feirou-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// DeliveryConfig is what checkout needs to know about a seller before an
// order can be finalized.
type DeliveryConfig struct {
	SellerSlug    string          `json:"seller_slug"`
	Fee           decimal.Decimal `json:"fee"`
	MinimumOrder  decimal.Decimal `json:"minimum_order"`
	Neighborhoods []string        `json:"neighborhoods,omitempty"`
	City          string          `json:"city,omitempty"`
}

// ServesNeighborhood reports whether the seller delivers to the given
// neighborhood. An empty list means no restriction.
func (d DeliveryConfig) ServesNeighborhood(name string) bool {
	if len(d.Neighborhoods) == 0 {
		return true
	}
	for _, n := range d.Neighborhoods {
		if strings.EqualFold(strings.TrimSpace(n), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// Provider resolves per-seller delivery configuration.
type Provider interface {
	DeliveryConfig(ctx context.Context, sellerSlug string) (DeliveryConfig, error)
}

// StaticProvider serves configs from a fixed in-memory table, with a
// fallback used for sellers that have no entry of their own.
type StaticProvider struct {
	configs  map[string]DeliveryConfig
	fallback DeliveryConfig
	strict   bool
}

// NewStaticProvider builds a provider over the given table. Unknown sellers
// resolve to the fallback config.
func NewStaticProvider(configs map[string]DeliveryConfig, fallback DeliveryConfig) *StaticProvider {
	table := make(map[string]DeliveryConfig, len(configs))
	for slug, cfg := range configs {
		cfg.SellerSlug = slug
		table[slug] = cfg
	}
	return &StaticProvider{configs: table, fallback: fallback}
}

// NewStrictStaticProvider is like NewStaticProvider but unknown sellers
// resolve to a not found error instead of the fallback.
func NewStrictStaticProvider(configs map[string]DeliveryConfig) *StaticProvider {
	p := NewStaticProvider(configs, DeliveryConfig{})
	p.strict = true
	return p
}

func (p *StaticProvider) DeliveryConfig(_ context.Context, sellerSlug string) (DeliveryConfig, error) {
	if cfg, ok := p.configs[sellerSlug]; ok {
		return cfg, nil
	}
	if p.strict {
		return DeliveryConfig{}, pkgerrors.New(pkgerrors.CodeNotFound, "no delivery config for seller")
	}
	cfg := p.fallback
	cfg.SellerSlug = sellerSlug
	return cfg, nil
}
