package config

import (
	"log"
	"os"
	"time"

	"github.com/code-100-precent/EchoPBX/pkg/cache"
	"github.com/code-100-precent/EchoPBX/pkg/logger"
	"github.com/code-100-precent/EchoPBX/pkg/utils"
)

// Config 控制台全局配置
type Config struct {
	Mode string `env:"MODE"`

	// 上游 PBX API
	APIBaseURL    string        `env:"PBX_API_BASE_URL"`
	APITimeout    time.Duration `env:"PBX_API_TIMEOUT"`
	APIRetryReads bool          `env:"PBX_API_RETRY_READS"`

	Log   logger.LogConfig
	Cache cache.Config

	// 本地数据
	StorePath   string `env:"STORE_PATH"`
	DownloadDir string `env:"DOWNLOAD_DIR"`

	// 页面行为
	SearchDebounce    time.Duration `env:"SEARCH_DEBOUNCE"`
	DefaultPageSize   int           `env:"DEFAULT_PAGE_SIZE"`
	LiveCallsInterval time.Duration `env:"LIVE_CALLS_INTERVAL"`
	DashboardInterval time.Duration `env:"DASHBOARD_INTERVAL"`
	QueryTTL          time.Duration `env:"QUERY_TTL"`
}

var GlobalConfig *Config

// Load 加载全局配置，所有配置都有默认值，无 .env 文件也能启动
func Load() error {
	env := os.Getenv("APP_ENV")
	if err := utils.LoadEnv(env); err != nil {
		log.Printf("Note: .env file not found or failed to load: %v (using default values)", err)
	}

	GlobalConfig = &Config{
		Mode:          getStringOrDefault("MODE", "development"),
		APIBaseURL:    getStringOrDefault("PBX_API_BASE_URL", "http://localhost:8080/api/v1"),
		APITimeout:    getDurationOrDefault("PBX_API_TIMEOUT", 15*time.Second),
		APIRetryReads: getBoolOrDefault("PBX_API_RETRY_READS", true),
		Log: logger.LogConfig{
			Level:      getStringOrDefault("LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("LOG_FILENAME", ""),
			MaxSize:    getIntOrDefault("LOG_MAX_SIZE", 100),
			MaxAge:     getIntOrDefault("LOG_MAX_AGE", 30),
			MaxBackups: getIntOrDefault("LOG_MAX_BACKUPS", 5),
			Daily:      getBoolOrDefault("LOG_DAILY", true),
		},
		Cache:             loadCacheConfig(),
		StorePath:         getStringOrDefault("STORE_PATH", defaultStorePath()),
		DownloadDir:       getStringOrDefault("DOWNLOAD_DIR", "."),
		SearchDebounce:    getDurationOrDefault("SEARCH_DEBOUNCE", 300*time.Millisecond),
		DefaultPageSize:   getIntOrDefault("DEFAULT_PAGE_SIZE", 20),
		LiveCallsInterval: getDurationOrDefault("LIVE_CALLS_INTERVAL", 5*time.Second),
		DashboardInterval: getDurationOrDefault("DASHBOARD_INTERVAL", 30*time.Second),
		QueryTTL:          getDurationOrDefault("QUERY_TTL", 30*time.Second),
	}
	return nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./pbxadmin.db"
	}
	return home + "/.pbxadmin/pbxadmin.db"
}

// getStringOrDefault 获取环境变量值，如果为空则返回默认值
func getStringOrDefault(key, defaultValue string) string {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getBoolOrDefault 获取布尔环境变量值，如果为空则返回默认值
func getBoolOrDefault(key string, defaultValue bool) bool {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return utils.GetBoolEnv(key)
}

// getIntOrDefault 获取整数环境变量值，如果为空则返回默认值
func getIntOrDefault(key string, defaultValue int) int {
	value := utils.GetIntEnv(key)
	if value == 0 {
		return defaultValue
	}
	return int(value)
}

// getDurationOrDefault 获取时间环境变量值，解析失败返回默认值
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

// loadCacheConfig 加载缓存配置，设置所有默认值
func loadCacheConfig() cache.Config {
	cacheType := getStringOrDefault("CACHE_TYPE", "local")

	parseDuration := func(s string, defaultVal time.Duration) time.Duration {
		if s == "" {
			return defaultVal
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return defaultVal
		}
		return d
	}

	return cache.Config{
		Type: cacheType,
		Redis: cache.RedisConfig{
			Addr:         getStringOrDefault("REDIS_ADDR", "localhost:6379"),
			Password:     utils.GetEnv("REDIS_PASSWORD"),
			DB:           int(utils.GetIntEnv("REDIS_DB")),
			PoolSize:     getIntOrDefault("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntOrDefault("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  parseDuration(utils.GetEnv("REDIS_DIAL_TIMEOUT"), 5*time.Second),
			ReadTimeout:  parseDuration(utils.GetEnv("REDIS_READ_TIMEOUT"), 3*time.Second),
			WriteTimeout: parseDuration(utils.GetEnv("REDIS_WRITE_TIMEOUT"), 3*time.Second),
			IdleTimeout:  parseDuration(utils.GetEnv("REDIS_IDLE_TIMEOUT"), 5*time.Minute),
		},
		Local: cache.LocalConfig{
			MaxSize:           getIntOrDefault("LOCAL_CACHE_MAX_SIZE", 1000),
			DefaultExpiration: parseDuration(utils.GetEnv("LOCAL_CACHE_DEFAULT_EXPIRATION"), 5*time.Minute),
			CleanupInterval:   parseDuration(utils.GetEnv("LOCAL_CACHE_CLEANUP_INTERVAL"), 10*time.Minute),
		},
	}
}
