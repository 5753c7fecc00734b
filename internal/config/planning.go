package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PlanningConfig holds the inventory planning defaults used when a caller
// does not supply its own parameters (cache-triggered regeneration, batch
// optimization).
type PlanningConfig struct {
	ForecastHorizonDays int     `mapstructure:"forecastHorizonDays"`
	ServiceLevel        float64 `mapstructure:"serviceLevel"`
	HoldingCostRate     float64 `mapstructure:"holdingCostRate"`
	OrderingCost        float64 `mapstructure:"orderingCost"`
	LeadTimeDays        int     `mapstructure:"leadTimeDays"`
}

func DefaultPlanningConfig() PlanningConfig {
	return PlanningConfig{
		ForecastHorizonDays: 30,
		ServiceLevel:        0.95,
		HoldingCostRate:     0.25,
		OrderingCost:        150,
		LeadTimeDays:        7,
	}
}

type PlanningConfigHolder struct {
	current atomic.Value // holds PlanningConfig
}

// NewPlanningConfigHolder reads planning.yml and keeps watching it so
// planning defaults can be tuned without a restart.
func NewPlanningConfigHolder() (*PlanningConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("planning")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/inventaris/config") // Volume-mounted config
	v.AddConfigPath("/etc/inventaris")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	v.SetEnvPrefix("INVENTARIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPlanningConfig()
	v.SetDefault("planning.forecastHorizonDays", defaults.ForecastHorizonDays)
	v.SetDefault("planning.serviceLevel", defaults.ServiceLevel)
	v.SetDefault("planning.holdingCostRate", defaults.HoldingCostRate)
	v.SetDefault("planning.orderingCost", defaults.OrderingCost)
	v.SetDefault("planning.leadTimeDays", defaults.LeadTimeDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg PlanningConfig
	if err := v.UnmarshalKey("planning", &cfg); err != nil {
		return nil, err
	}
	if err := validatePlanningConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PlanningConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PlanningConfig
		if err := v.UnmarshalKey("planning", &updated); err != nil {
			log.Printf("[planning-config] reload failed: %v", err)
			return
		}
		if err := validatePlanningConfig(updated); err != nil {
			log.Printf("[planning-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[planning-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPlanningConfig wraps a fixed config without file watching. Used
// by tests and tools that do not want the reload machinery.
func NewStaticPlanningConfig(cfg PlanningConfig) *PlanningConfigHolder {
	holder := &PlanningConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PlanningConfigHolder) Get() PlanningConfig {
	return h.current.Load().(PlanningConfig)
}

func validatePlanningConfig(cfg PlanningConfig) error {
	if cfg.ForecastHorizonDays < 1 || cfg.ForecastHorizonDays > 365 {
		return errors.New("planning.forecastHorizonDays must be within [1,365]")
	}
	if cfg.ServiceLevel <= 0 || cfg.ServiceLevel > 1 {
		return errors.New("planning.serviceLevel must be within (0,1]")
	}
	if cfg.HoldingCostRate <= 0 || cfg.HoldingCostRate > 1 {
		return errors.New("planning.holdingCostRate must be within (0,1]")
	}
	if cfg.OrderingCost < 0 {
		return errors.New("planning.orderingCost cannot be negative")
	}
	if cfg.LeadTimeDays <= 0 {
		return errors.New("planning.leadTimeDays must be positive")
	}
	return nil
}
