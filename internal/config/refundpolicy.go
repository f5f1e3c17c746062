package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// RefundFeeTier is one step of the cancellation fee schedule: bookings
// cancelled at least MinHours before check-in pay FeePercent of the total.
type RefundFeeTier struct {
	MinHours   int     `mapstructure:"minHours"`
	FeePercent float64 `mapstructure:"feePercent"`
}

// RefundPolicy is the operator-owned cancellation policy. It is configuration,
// not business logic: the calculator receives whatever table is active here.
type RefundPolicy struct {
	Tiers []RefundFeeTier `mapstructure:"tiers"`
}

func DefaultRefundPolicy() RefundPolicy {
	return RefundPolicy{
		Tiers: []RefundFeeTier{
			{MinHours: 72, FeePercent: 0},
			{MinHours: 24, FeePercent: 25},
			{MinHours: 0, FeePercent: 50},
		},
	}
}

// RefundPolicyHolder keeps the active policy behind an atomic snapshot so a
// config reload never tears a half-written table under a running calculation.
type RefundPolicyHolder struct {
	current atomic.Value // holds RefundPolicy
}

func NewRefundPolicyHolder() (*RefundPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("refund")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/yoyo/config")
	v.AddConfigPath("/etc/yoyo")
	v.AddConfigPath(".")

	v.SetEnvPrefix("YOYO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultRefundPolicy()
		v.SetDefault("refund.tiers", defaults.Tiers)
	}

	var policy RefundPolicy
	if err := v.UnmarshalKey("refund", &policy); err != nil {
		return nil, err
	}
	if len(policy.Tiers) == 0 {
		policy = DefaultRefundPolicy()
	}
	if err := validateRefundPolicy(policy); err != nil {
		return nil, err
	}

	holder := &RefundPolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated RefundPolicy
		if err := v.UnmarshalKey("refund", &updated); err != nil {
			log.Printf("[refund-policy] reload failed: %v", err)
			return
		}
		if err := validateRefundPolicy(updated); err != nil {
			log.Printf("[refund-policy] invalid policy ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[refund-policy] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticRefundPolicyHolder wraps a fixed policy with no file watching. Used by
// tests and tooling that need a known schedule.
func StaticRefundPolicyHolder(policy RefundPolicy) *RefundPolicyHolder {
	holder := &RefundPolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func (h *RefundPolicyHolder) Get() RefundPolicy {
	return h.current.Load().(RefundPolicy)
}

func validateRefundPolicy(policy RefundPolicy) error {
	if len(policy.Tiers) == 0 {
		return errors.New("refund.tiers cannot be empty")
	}
	if policy.Tiers[len(policy.Tiers)-1].MinHours != 0 {
		return errors.New("refund.tiers must end with a minHours=0 tier")
	}
	prevHours := -1
	prevFee := -1.0
	for _, tier := range policy.Tiers {
		if tier.FeePercent < 0 || tier.FeePercent > 100 {
			return errors.New("refund.tiers feePercent must be within [0,100]")
		}
		if tier.MinHours < 0 {
			return errors.New("refund.tiers minHours must be non-negative")
		}
		if prevHours >= 0 && tier.MinHours >= prevHours {
			return errors.New("refund.tiers must be strictly descending by minHours")
		}
		if prevFee >= 0 && tier.FeePercent < prevFee {
			return errors.New("refund.tiers feePercent must not decrease toward check-in")
		}
		prevHours = tier.MinHours
		prevFee = tier.FeePercent
	}
	return nil
}
