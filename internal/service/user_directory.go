package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/lshigami/softskills/config"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userCachePrefix = "softskills:user:"

// UserDirectory resolves display info for the review queue.
// Lookup returns (nil, nil) for an unknown user.
type UserDirectory interface {
	Lookup(ctx context.Context, userRef string) (*dto.UserInfoDTO, error)
}

type userDirectory struct {
	userRepo repository.UserRepository
	cache    *redis.Client
	ttl      time.Duration
}

// NewRedisClient returns nil when REDIS_ADDR is unset; the directory then reads the database directly.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, user lookups are not cached")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func NewUserDirectory(userRepo repository.UserRepository, cache *redis.Client, cfg *config.Config) UserDirectory {
	ttl := cfg.Redis.CacheTTL
	if ttl <= 0 {
		ttl = config.DefaultUserCacheTTL
	}
	return &userDirectory{userRepo: userRepo, cache: cache, ttl: ttl}
}

// Emails match case-insensitively, ids do not.
func userCacheKey(userRef string) string {
	if strings.Contains(userRef, "@") {
		return userCachePrefix + strings.ToLower(userRef)
	}
	return userCachePrefix + userRef
}

func (d *userDirectory) Lookup(ctx context.Context, userRef string) (*dto.UserInfoDTO, error) {
	userRef = strings.TrimSpace(userRef)
	if userRef == "" {
		return nil, nil
	}

	if info, ok := d.fromCache(ctx, userRef); ok {
		return info, nil
	}

	var (
		info *dto.UserInfoDTO
		err  error
	)
	if strings.Contains(userRef, "@") {
		user, findErr := d.userRepo.FindByEmail(ctx, userRef)
		if findErr == nil {
			info = &dto.UserInfoDTO{ID: user.ID, Name: user.Name, Email: user.Email}
		}
		err = findErr
	} else {
		user, findErr := d.userRepo.FindByID(ctx, userRef)
		if findErr == nil {
			info = &dto.UserInfoDTO{ID: user.ID, Name: user.Name, Email: user.Email}
		}
		err = findErr
	}
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "lookup user %s", userRef)
	}

	d.toCache(ctx, userRef, info)
	return info, nil
}

func (d *userDirectory) fromCache(ctx context.Context, userRef string) (*dto.UserInfoDTO, bool) {
	if d.cache == nil {
		return nil, false
	}
	raw, err := d.cache.Get(ctx, userCacheKey(userRef)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("User cache read failed, falling back to database")
		}
		return nil, false
	}
	var info dto.UserInfoDTO
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, false
	}
	return &info, true
}

func (d *userDirectory) toCache(ctx context.Context, userRef string, info *dto.UserInfoDTO) {
	if d.cache == nil || info == nil {
		return
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, userCacheKey(userRef), raw, d.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("User cache write failed")
	}
}
