package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type tableServerEnvironment struct {
	RedisHost         string
	RedisPort         string
	RedisPW           string
	RedisDB           string
	NatsURL           string
	ListenAddr        string
	RestAddr          string
	DefaultMaxPlayers string
}

// TableServerEnvironment is a helper object for accessing environment variables.
var TableServerEnvironment = &tableServerEnvironment{
	RedisHost:         "REDIS_HOST",
	RedisPort:         "REDIS_PORT",
	RedisPW:           "REDIS_PW",
	RedisDB:           "REDIS_DB",
	NatsURL:           "NATS_URL",
	ListenAddr:        "LISTEN_ADDR",
	RestAddr:          "REST_ADDR",
	DefaultMaxPlayers: "DEFAULT_MAX_PLAYERS",
}

func (t *tableServerEnvironment) GetRedisHost() string {
	host := os.Getenv(t.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", t.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (t *tableServerEnvironment) GetRedisPort() int {
	portStr := os.Getenv(t.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", t.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (t *tableServerEnvironment) GetRedisPW() string {
	pw := os.Getenv(t.RedisPW)
	return pw
}

func (t *tableServerEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(t.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

func (t *tableServerEnvironment) GetNatsURL() string {
	url := os.Getenv(t.NatsURL)
	if url == "" {
		return "nats://localhost:4222"
	}
	return url
}

func (t *tableServerEnvironment) GetListenAddr() string {
	addr := os.Getenv(t.ListenAddr)
	if addr == "" {
		return ":8081"
	}
	return addr
}

func (t *tableServerEnvironment) GetRestAddr() string {
	addr := os.Getenv(t.RestAddr)
	if addr == "" {
		return ":8080"
	}
	return addr
}

func (t *tableServerEnvironment) GetDefaultMaxPlayers() int {
	v := os.Getenv(t.DefaultMaxPlayers)
	if v == "" {
		return 4
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 2 {
		msg := fmt.Sprintf("Invalid default max players %s", v)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return n
}
