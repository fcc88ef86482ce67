package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Import   ImportConfig   `mapstructure:"import"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	// Driver 选择持久化后端，"sqlite" 或 "postgres"
	Driver string `mapstructure:"driver"`
	// Storage 选择账号仓库的实现，"gorm" 或 "memory"
	// memory 只用于演示和测试环境，进程退出后数据即丢失
	Storage  string         `mapstructure:"storage"`
	Sqlite   SqliteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SqliteConfig 定义了SQLite的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig 定义了PostgreSQL的配置
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 定义了管理员登录相关的配置
type AuthConfig struct {
	// Username / Password 是唯一的管理员凭据
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// Secret 是JWT签名密钥，留空则启动时随机生成
	Secret string `mapstructure:"secret"`
	// TokenTTLHours 是登录令牌的有效期（小时）
	TokenTTLHours int `mapstructure:"tokenTTLHours"`
	// Lockout 定义了登录失败锁定策略
	Lockout LockoutConfig `mapstructure:"lockout"`
}

// LockoutConfig 定义了“N次失败锁定T分钟”的策略参数
type LockoutConfig struct {
	MaxAttempts   int `mapstructure:"maxAttempts"`
	WindowMinutes int `mapstructure:"windowMinutes"`
}

// ImportConfig 定义了批量导入的上限参数
type ImportConfig struct {
	MaxBytes   int `mapstructure:"maxBytes"`
	MaxRecords int `mapstructure:"maxRecords"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 可以添加多个路径，Viper会按顺序查找
	v.AddConfigPath("./config") // `config/config.yaml`
	v.AddConfigPath(".")        // `./config.yaml` (如果在根目录)

	// 允许通过环境变量覆盖配置，例如 AUTH_PASSWORD=...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 缺省值，保证配置文件中省略的段落也能工作
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.storage", "gorm")
	v.SetDefault("database.sqlite.path", "clonepool.db")
	v.SetDefault("auth.tokenTTLHours", 24)
	v.SetDefault("auth.lockout.maxAttempts", 5)
	v.SetDefault("auth.lockout.windowMinutes", 10)
	v.SetDefault("import.maxBytes", 1<<20)
	v.SetDefault("import.maxRecords", 1000)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	Cfg = &cfg

	return Cfg, nil
}
