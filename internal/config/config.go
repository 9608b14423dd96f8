// Package config loads the uuidgen command configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Lzww0608/uuidgen"
)

// EnvConfigPath names the environment variable consulted when Load gets an
// empty path.
const EnvConfigPath = "UUIDGEN_CONFIG"

// Node id backends.
const (
	BackendRandom    = "random"
	BackendStatic    = "static"
	BackendHardware  = "hardware"
	BackendRedis     = "redis"
	BackendMySQL     = "mysql"
	BackendZooKeeper = "zookeeper"
)

// Config is the root configuration loaded from YAML.
type Config struct {
	Log  LogConfig  `yaml:"log"`
	Node NodeConfig `yaml:"node"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // text|json
}

// NodeConfig selects where time-based UUIDs get their node id.
type NodeConfig struct {
	Backend   string          `yaml:"backend"`
	Static    string          `yaml:"static"` // MAC or 12 hex digits, backend "static"
	Redis     RedisConfig     `yaml:"redis"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	ZooKeeper ZooKeeperConfig `yaml:"zookeeper"`
}

// RedisConfig for the redis counter backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"` // supports env expansion
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

// MySQLConfig for the segment table backend.
type MySQLConfig struct {
	DSN  string `yaml:"dsn"`
	Tag  string `yaml:"tag"`
	Step int    `yaml:"step"`
}

// ZooKeeperConfig for the znode registry backend.
type ZooKeeperConfig struct {
	Servers        []string      `yaml:"servers"`
	Root           string        `yaml:"root"`
	Service        string        `yaml:"service"`
	Instance       string        `yaml:"instance"` // defaults to the hostname
	SessionTimeout time.Duration `yaml:"sessionTimeout"`
	CacheDir       string        `yaml:"cacheDir"`
	Heartbeat      time.Duration `yaml:"heartbeat"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads YAML config from path, expands environment variables, and
// validates it. If path is empty, UUIDGEN_CONFIG is consulted; when that is
// unset too, Load returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return Default(), nil
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304 - reading sanitized config file path is expected
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// Expand environment variables in file content.
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "text"
	}

	cfg.Node.Backend = strings.ToLower(strings.TrimSpace(cfg.Node.Backend))
	if cfg.Node.Backend == "" {
		cfg.Node.Backend = BackendRandom
	}

	// Redis defaults
	if cfg.Node.Redis.Addr == "" {
		cfg.Node.Redis.Addr = "localhost:6379"
	}
	if cfg.Node.Redis.Key == "" {
		cfg.Node.Redis.Key = "uuidgen:node"
	}

	// MySQL defaults
	if cfg.Node.MySQL.Tag == "" {
		cfg.Node.MySQL.Tag = "default"
	}
	if cfg.Node.MySQL.Step == 0 {
		cfg.Node.MySQL.Step = 100
	}

	// ZooKeeper defaults
	zk := &cfg.Node.ZooKeeper
	if len(zk.Servers) == 0 {
		zk.Servers = []string{"127.0.0.1:2181"}
	}
	if zk.Root == "" {
		zk.Root = "/uuidgen"
	}
	if zk.Service == "" {
		zk.Service = "uuidgen"
	}
	if zk.Instance == "" {
		if host, err := os.Hostname(); err == nil {
			zk.Instance = host
		}
	}
	if zk.SessionTimeout == 0 {
		zk.SessionTimeout = 10 * time.Second
	}
	if zk.Heartbeat == 0 {
		zk.Heartbeat = 3 * time.Second
	}
}

func validate(cfg *Config) error {
	switch cfg.Node.Backend {
	case BackendRandom, BackendHardware:
	case BackendStatic:
		if strings.TrimSpace(cfg.Node.Static) == "" {
			return errors.New("node.static is required for the static backend")
		}
		if _, err := uuidgen.ParseNodeID(cfg.Node.Static); err != nil {
			return fmt.Errorf("node.static: %w", err)
		}
	case BackendRedis:
		if strings.TrimSpace(cfg.Node.Redis.Addr) == "" {
			return errors.New("node.redis.addr is required")
		}
	case BackendMySQL:
		if strings.TrimSpace(cfg.Node.MySQL.DSN) == "" {
			return errors.New("node.mysql.dsn is required")
		}
		if cfg.Node.MySQL.Step < 0 {
			return fmt.Errorf("node.mysql.step must be positive, got %d", cfg.Node.MySQL.Step)
		}
	case BackendZooKeeper:
		if strings.TrimSpace(cfg.Node.ZooKeeper.Instance) == "" {
			return errors.New("node.zookeeper.instance is required")
		}
	default:
		return fmt.Errorf("unknown node.backend %q", cfg.Node.Backend)
	}
	return nil
}
