package utils

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// LoadEnv 根据环境加载 .env 文件
// env 为空时加载 .env，否则加载 .env.<env>（如 .env.development）
func LoadEnv(env string) error {
	filename := ".env"
	if env != "" {
		filename = fmt.Sprintf(".env.%s", env)
	}
	return godotenv.Load(filename)
}

// GetEnv 获取环境变量值
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetIntEnv 获取整数环境变量值，解析失败返回 0
func GetIntEnv(key string) int64 {
	return cast.ToInt64(os.Getenv(key))
}

// GetBoolEnv 获取布尔环境变量值
func GetBoolEnv(key string) bool {
	return cast.ToBool(os.Getenv(key))
}

// RandText 生成指定长度的随机字符串
func RandText(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = letters[int(b[i])%len(letters)]
	}
	return string(b)
}
