package bootstrap

import (
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/config"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/adapters/memory"
	redisadapter "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/adapters/redis"
	domainauth "github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/domain/auth"
	"github.com/dipanshu-patidar/Accounting-Arabic-sub001/internal/ports"
)

// NewSessionStore picks the session store the config names. Redis requires client.
//
//nolint:ireturn // the store kind is chosen at runtime.
func NewSessionStore(cfg config.SessionConfig, client redis.UniversalClient) ports.SessionStore {
	if cfg.Store == config.SessionStoreRedis && client != nil {
		return redisadapter.NewSessionStoreWithPrefix(client, cfg.KeyPrefix)
	}
	return memory.NewSessionStore()
}

// DevSession returns the session template for GET /dev/login, or nil when
// development seeding is not configured.
func DevSession(cfg config.AppConfig) *domainauth.Session {
	if !cfg.IsDev || cfg.UsesRedisSessions() {
		return nil
	}
	dev := cfg.Session.Dev
	if strings.TrimSpace(dev.Token) == "" {
		return nil
	}
	return &domainauth.Session{
		AuthToken:       dev.Token,
		CompanyID:       dev.CompanyID,
		Role:            domainauth.ParseRole(dev.Role),
		UserPermissions: dev.Permissions,
	}
}
