package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Mongo          Mongo         `yaml:"mongo"`
	JwtTTL         time.Duration `yaml:"jwt_ttl"`
	CodeTTL        time.Duration `yaml:"code_ttl"` // verification / staged-reset validity window
	SecureCookies  bool          `yaml:"secure_cookies"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	LogLevel       string        `yaml:"log_level"`
	LogJSON        bool          `yaml:"log_json"`
}

type Mongo struct {
	URI             string        `yaml:"uri"`
	Database        string        `yaml:"database"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	// Timeout bounds every operation including time spent waiting for a
	// free connection when the pool is exhausted.
	Timeout time.Duration `yaml:"timeout"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Email  Email  `yaml:"email"`
}

type Email struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	Timeout    int    `yaml:"timeout"` // seconds
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func (s *Config) Email() *Email {
	return &s.private.Email
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if public.Mongo.URI == "" || public.Mongo.Database == "" {
		panic("mongo uri and database are required")
	}
	if private.JwtKey == "" {
		panic("jwt_key is required")
	}
	if public.JwtTTL == 0 {
		panic("jwt_ttl is required")
	}
	if public.CodeTTL == 0 {
		public.CodeTTL = 30 * time.Minute
	}

	return &Config{public, private}
}

// NewForTesting builds a config without reading files. Test helper.
func NewForTesting(public Public, private Private) *Config {
	if public.CodeTTL == 0 {
		public.CodeTTL = 30 * time.Minute
	}
	return &Config{public, private}
}
