package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	domaincfg "graphcanvas/domain/config"
	"graphcanvas/domain/constraints"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// Tick loop
	TickIntervalMs int `yaml:"tick_interval_ms"`

	// Viewport defaults reported before a host sets real dimensions
	DefaultWidth  float64 `yaml:"default_width"`
	DefaultHeight float64 `yaml:"default_height"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Feature flags
	EnableCORS bool `yaml:"enable_cors"`

	// Editor tuning overrides applied on top of the built-in defaults
	Editor EditorOverrides `yaml:"editor"`

	// EdgeRules declares which relationship types are legal between node
	// type pairs; declaration order drives prompt ordering
	EdgeRules []constraints.Constraint `yaml:"edge_rules"`
}

// EditorOverrides is the subset of editor tuning a deployment may change.
// Pointer fields distinguish "unset" from an explicit zero.
type EditorOverrides struct {
	NodeRadius           *float64 `yaml:"node_radius"`
	LinkDistance         *float64 `yaml:"link_distance"`
	ChargeStrength       *float64 `yaml:"charge_strength"`
	MaxNodesPerGraph     *int     `yaml:"max_nodes_per_graph"`
	MaxEdgesPerGraph     *int     `yaml:"max_edges_per_graph"`
	AllowSelfConnections *bool    `yaml:"allow_self_connections"`
	ShowLabels           *bool    `yaml:"show_labels"`
	EnableZoom           *bool    `yaml:"enable_zoom"`
	EnableDrag           *bool    `yaml:"enable_drag"`
}

// LoadConfig loads configuration from environment variables, layering an
// optional YAML file named by CONFIG_FILE underneath them
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:  ":8080",
		Environment:    "development",
		TickIntervalMs: 16,
		DefaultWidth:   800,
		DefaultHeight:  600,
		LogLevel:       "info",
		EnableCORS:     true,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.ServerAddress = getEnv("SERVER_ADDRESS", cfg.ServerAddress)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.TickIntervalMs = getEnvInt("TICK_INTERVAL_MS", cfg.TickIntervalMs)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EnableCORS = getEnvBool("ENABLE_CORS", cfg.EnableCORS)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.TickIntervalMs <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive, got %d", c.TickIntervalMs)
	}
	if c.DefaultWidth <= 0 || c.DefaultHeight <= 0 {
		return fmt.Errorf("default viewport dimensions must be positive, got %gx%g", c.DefaultWidth, c.DefaultHeight)
	}
	return nil
}

// DomainConfig produces the editor tuning with deployment overrides applied
func (c *Config) DomainConfig() *domaincfg.DomainConfig {
	dc := domaincfg.DefaultDomainConfig()
	o := c.Editor
	if o.NodeRadius != nil {
		dc.NodeRadius = *o.NodeRadius
	}
	if o.LinkDistance != nil {
		dc.LinkDistance = *o.LinkDistance
	}
	if o.ChargeStrength != nil {
		dc.ChargeStrength = *o.ChargeStrength
	}
	if o.MaxNodesPerGraph != nil {
		dc.MaxNodesPerGraph = *o.MaxNodesPerGraph
	}
	if o.MaxEdgesPerGraph != nil {
		dc.MaxEdgesPerGraph = *o.MaxEdgesPerGraph
	}
	if o.AllowSelfConnections != nil {
		dc.AllowSelfConnections = *o.AllowSelfConnections
	}
	if o.ShowLabels != nil {
		dc.ShowLabels = *o.ShowLabels
	}
	if o.EnableZoom != nil {
		dc.EnableZoom = *o.EnableZoom
	}
	if o.EnableDrag != nil {
		dc.EnableDrag = *o.EnableDrag
	}
	return dc
}

// Catalog builds the edge-type constraint catalog from the configured rules.
// With no rules declared, a default knowledge-graph vocabulary applies.
func (c *Config) Catalog() (*constraints.Catalog, error) {
	rules := c.EdgeRules
	if len(rules) == 0 {
		rules = DefaultEdgeRules()
	}
	return constraints.NewCatalog(rules...)
}

// DefaultEdgeRules is the built-in relationship vocabulary used when a
// deployment declares none of its own
func DefaultEdgeRules() []constraints.Constraint {
	return []constraints.Constraint{
		{SourceType: "concept", TargetType: "concept", EdgeType: "related_to", Label: "Related to"},
		{SourceType: "concept", TargetType: "concept", EdgeType: "depends_on", Label: "Depends on", Directed: true},
		{SourceType: "concept", TargetType: "note", EdgeType: "described_by", Label: "Described by", Directed: true},
		{SourceType: "note", TargetType: "note", EdgeType: "references", Label: "References"},
		{SourceType: "concept", TargetType: "tag", EdgeType: "tagged", Label: "Tagged", Directed: true},
		{SourceType: "note", TargetType: "tag", EdgeType: "tagged", Label: "Tagged", Directed: true},
	}
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
