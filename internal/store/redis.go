package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/gradecalc/internal/config"
	"github.com/yungbote/gradecalc/internal/platform/logger"
	"github.com/yungbote/gradecalc/internal/state"
)

// RedisStore keeps the two records under <prefix>:<profile>:state and
// <prefix>:<profile>:save_pref.
type RedisStore struct {
	rdb      *goredis.Client
	stateKey string
	prefKey  string
	log      *logger.Logger
}

func NewRedisStore(ctx context.Context, cfg config.RedisConfig, profile string, baseLog *logger.Logger) (*RedisStore, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisStore(rdb, cfg.Prefix, profile, baseLog), nil
}

func newRedisStore(rdb *goredis.Client, prefix, profile string, baseLog *logger.Logger) *RedisStore {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	if prefix == "" {
		prefix = "gradecalc"
	}
	if profile == "" {
		profile = "default"
	}
	base := prefix + ":" + profile
	return &RedisStore{
		rdb:      rdb,
		stateKey: base + ":state",
		prefKey:  base + ":save_pref",
		log:      baseLog.With("service", "RedisStore", "profile_key", profile),
	}
}

func (s *RedisStore) Load(ctx context.Context) (state.State, bool, error) {
	vals, err := s.rdb.MGet(ctx, s.prefKey, s.stateKey).Result()
	if err != nil {
		return state.State{}, false, fmt.Errorf("redis mget: %w", err)
	}

	var pref *bool
	if raw, ok := vals[0].(string); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.log.Warn("bad save preference; assuming enabled", "value", raw)
		} else {
			pref = &v
		}
	}
	var blob []byte
	if raw, ok := vals[1].(string); ok {
		blob = []byte(raw)
	}
	st, found := restore(s.log, pref, blob)
	return st, found, nil
}

func (s *RedisStore) Save(ctx context.Context, st state.State) error {
	var blob []byte
	if st.SaveEnabled {
		b, err := encodeState(st)
		if err != nil {
			return err
		}
		blob = b
	}
	_, err := s.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, s.prefKey, strconv.FormatBool(st.SaveEnabled), 0)
		if blob != nil {
			p.Set(ctx, s.stateKey, blob, 0)
		} else {
			p.Del(ctx, s.stateKey)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.stateKey, s.prefKey).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis clear: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
