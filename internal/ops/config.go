package ops

import (
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"

	"main/internal/quoter"
	"main/internal/risk"
	"main/internal/schema"
)

// FileConfig mirrors the JSON config layout. Zero fields fall back to
// the built-in defaults, so a partial file only overrides what it names.
type FileConfig struct {
	Registry RegistryConfig     `json:"registry"`
	Strategy StrategyConfig     `json:"strategy"`
	Audit    AuditConfig        `json:"audit"`
	Features FeatureFlagsConfig `json:"features"`
	Archive  ArchiveConfig      `json:"archive"`
}

// RegistryConfig defines the two tradable legs.
type RegistryConfig struct {
	Instruments []InstrumentConfig `json:"instruments"`
}

// InstrumentConfig describes one leg entry.
type InstrumentConfig struct {
	Name  string           `json:"name"`
	Leg   string           `json:"leg"` // "future" or "etf"
	Scale schema.ScaleSpec `json:"scale"`
}

// StrategyConfig overrides the quoting constants.
type StrategyConfig struct {
	TickSize         schema.Price  `json:"tickSize"`
	LotSize          schema.Volume `json:"lotSize"`
	PositionLimit    schema.Volume `json:"positionLimit"`
	MaxActiveOrders  int           `json:"maxActiveOrders"`
	MinProfitability int64         `json:"minProfitability"`
}

// AuditConfig overrides the post-trade audit limits.
type AuditConfig struct {
	MaxOrderVolume schema.Volume `json:"maxOrderVolume"`
	MinPrice       schema.Price  `json:"minPrice"`
	MaxPrice       schema.Price  `json:"maxPrice"`
}

// FeatureFlagsConfig captures optional runtime flags.
type FeatureFlagsConfig struct {
	EnableQuoting     *bool `json:"enableQuoting"`
	EnableHedging     *bool `json:"enableHedging"`
	SimulateFills     *bool `json:"simulateFills"`
	ResendOnReconnect *bool `json:"resendOnReconnect"`
}

// FeatureFlags are resolved runtime flags.
type FeatureFlags struct {
	EnableQuoting     bool
	EnableHedging     bool
	SimulateFills     bool
	ResendOnReconnect bool
}

// ArchiveConfig controls the optional Postgres fill archive.
type ArchiveConfig struct {
	DSN       string `json:"dsn"`
	BatchSize int    `json:"batchSize"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Registry *schema.Registry
	Strategy quoter.Config
	Audit    risk.Config
	Features FeatureFlags
	Archive  ArchiveConfig
}

// Default returns the built-in configuration: the production strategy
// constants and a FUTURE/ETF registry with matching scales.
func Default() Loaded {
	registry := schema.NewRegistry()
	scale := schema.ScaleSpec{PriceScale: 2, VolumeScale: 0, FeeScale: 2}
	_ = registry.Register(schema.InstrumentFuture, "FUTURE", scale)
	_ = registry.Register(schema.InstrumentEtf, "ETF", scale)

	strategy := quoter.DefaultConfig()
	return Loaded{
		Registry: registry,
		Strategy: strategy,
		Audit:    auditDefaults(strategy, AuditConfig{}),
		Features: FeatureFlags{
			EnableQuoting:     true,
			EnableHedging:     true,
			SimulateFills:     false,
			ResendOnReconnect: true,
		},
	}
}

// Load reads a JSON config file and resolves it against the defaults.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, errors.Wrap(err, "read config")
	}
	var cfg FileConfig
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, errors.Wrap(err, "decode config")
	}
	return Resolve(cfg)
}

// Resolve merges a parsed file config with the defaults and validates it.
func Resolve(cfg FileConfig) (Loaded, error) {
	loaded := Default()

	if len(cfg.Registry.Instruments) > 0 {
		registry := schema.NewRegistry()
		for _, inst := range cfg.Registry.Instruments {
			leg, err := parseLeg(inst.Leg)
			if err != nil {
				return Loaded{}, err
			}
			if err := validateScale(inst.Scale); err != nil {
				return Loaded{}, errors.Wrapf(err, "invalid scale for %s", inst.Name)
			}
			if err := registry.Register(leg, inst.Name, inst.Scale); err != nil {
				return Loaded{}, errors.Wrap(err, "register instrument")
			}
		}
		if !registry.Complete() {
			return Loaded{}, errors.New("registry must define both legs")
		}
		loaded.Registry = registry
	}

	applyStrategy(&loaded.Strategy, cfg.Strategy)
	if err := loaded.Strategy.Validate(); err != nil {
		return Loaded{}, err
	}
	loaded.Audit = auditDefaults(loaded.Strategy, cfg.Audit)
	loaded.Features = resolveFeatures(loaded.Features, cfg.Features)
	loaded.Archive = cfg.Archive
	return loaded, nil
}

func parseLeg(leg string) (schema.Instrument, error) {
	switch strings.ToLower(leg) {
	case "future":
		return schema.InstrumentFuture, nil
	case "etf":
		return schema.InstrumentEtf, nil
	default:
		return 0, errors.Errorf("unknown leg: %q", leg)
	}
}

func validateScale(scale schema.ScaleSpec) error {
	if scale.PriceScale < 0 || scale.VolumeScale < 0 || scale.FeeScale < 0 {
		return errors.New("scale must be >= 0")
	}
	return nil
}

func applyStrategy(dst *quoter.Config, cfg StrategyConfig) {
	if cfg.TickSize > 0 {
		dst.TickSize = cfg.TickSize
	}
	if cfg.LotSize > 0 {
		dst.LotSize = cfg.LotSize
	}
	if cfg.PositionLimit > 0 {
		dst.PositionLimit = cfg.PositionLimit
	}
	if cfg.MaxActiveOrders > 0 {
		dst.MaxActiveOrders = cfg.MaxActiveOrders
	}
	if cfg.MinProfitability > 0 {
		dst.MinProfitability = cfg.MinProfitability
	}
}

// auditDefaults derives the audit limits from the strategy constants so
// the two stay consistent unless the file overrides them.
func auditDefaults(strategy quoter.Config, cfg AuditConfig) risk.Config {
	audit := risk.Config{
		PositionLimit:   strategy.PositionLimit,
		MaxActiveOrders: strategy.MaxActiveOrders,
		MaxOrderVolume:  strategy.LotSize,
		MinPrice:        schema.MinimumBid,
		MaxPrice:        schema.MaximumAsk,
		TickSize:        strategy.TickSize,
	}
	if cfg.MaxOrderVolume > 0 {
		audit.MaxOrderVolume = cfg.MaxOrderVolume
	}
	if cfg.MinPrice > 0 {
		audit.MinPrice = cfg.MinPrice
	}
	if cfg.MaxPrice > 0 {
		audit.MaxPrice = cfg.MaxPrice
	}
	return audit
}

func resolveFeatures(flags FeatureFlags, cfg FeatureFlagsConfig) FeatureFlags {
	if cfg.EnableQuoting != nil {
		flags.EnableQuoting = *cfg.EnableQuoting
	}
	if cfg.EnableHedging != nil {
		flags.EnableHedging = *cfg.EnableHedging
	}
	if cfg.SimulateFills != nil {
		flags.SimulateFills = *cfg.SimulateFills
	}
	if cfg.ResendOnReconnect != nil {
		flags.ResendOnReconnect = *cfg.ResendOnReconnect
	}
	return flags
}
