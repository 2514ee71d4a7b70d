package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr     string
	RedisAddr    string
	KafkaBrokers []string
	KafkaEnabled bool
	ServiceName  string
	LogLevel     string
	AuditGroup   string
	AuditWorkers int
}

func Load() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":8081"),
		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		KafkaBrokers: splitCSV(getenv("KAFKA_BROKERS", "kafka:9092")),
		KafkaEnabled: getenv("KAFKA_ENABLED", "true") == "true",
		ServiceName:  getenv("SERVICE_NAME", "split-api"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		AuditGroup:   getenv("AUDIT_GROUP", "audit-log"),
		AuditWorkers: atoi(getenv("AUDIT_WORKERS", "4")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func atoi(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return 1
	}
	return i
}
