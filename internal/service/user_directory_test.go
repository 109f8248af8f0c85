package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lshigami/softskills/config"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/lshigami/softskills/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedDirectory(t *testing.T) (UserDirectory, repository.UserRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := repository.NewUserRepository(testutil.DB(t))
	cfg := &config.Config{Redis: config.Redis{Addr: mr.Addr(), CacheTTL: time.Minute}}
	return NewUserDirectory(users, client, cfg), users, mr
}

func TestUserDirectory_LookupByIDIsCached(t *testing.T) {
	dir, users, mr := newCachedDirectory(t)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &model.User{ID: "u1", Name: "Minh", Email: "minh@example.com", Role: model.RoleStudent}))

	info, err := dir.Lookup(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Minh", info.Name)
	assert.True(t, mr.Exists(userCachePrefix+"u1"))
	assert.Equal(t, time.Minute, mr.TTL(userCachePrefix+"u1"))

	// served from cache once stored
	mr.Set(userCachePrefix+"u1", `{"id":"u1","name":"Cached Minh","email":"minh@example.com"}`)
	info, err = dir.Lookup(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Cached Minh", info.Name)

	mr.Del(userCachePrefix + "u1")
	info, err = dir.Lookup(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Minh", info.Name)
}

func TestUserDirectory_LookupByEmail(t *testing.T) {
	dir, users, _ := newCachedDirectory(t)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &model.User{ID: "u2", Name: "An", Email: "an@example.com", Role: model.RoleStudent}))

	info, err := dir.Lookup(ctx, "An@Example.com")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "u2", info.ID)
}

func TestUserDirectory_UnknownUser(t *testing.T) {
	dir, _, mr := newCachedDirectory(t)

	info, err := dir.Lookup(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.False(t, mr.Exists(userCachePrefix+"ghost"))
}

func TestUserDirectory_CacheDownFallsBackToDatabase(t *testing.T) {
	dir, users, mr := newCachedDirectory(t)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &model.User{ID: "u3", Name: "Bao", Email: "bao@example.com", Role: model.RoleSupervisor}))
	mr.Close()

	info, err := dir.Lookup(ctx, "u3")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "Bao", info.Name)
}

func TestUserDirectory_WithoutCache(t *testing.T) {
	users := repository.NewUserRepository(testutil.DB(t))
	dir := NewUserDirectory(users, nil, &config.Config{})
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &model.User{ID: "u4", Name: "Chi", Email: "chi@example.com", Role: model.RoleStudent}))

	info, err := dir.Lookup(ctx, "u4")
	require.NoError(t, err)
	assert.Equal(t, "Chi", info.Name)
}

func TestUserDirectory_IDsKeepTheirCase(t *testing.T) {
	dir, users, mr := newCachedDirectory(t)
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &model.User{ID: "abc", Name: "Lower", Email: "lower@example.com", Role: model.RoleStudent}))

	info, err := dir.Lookup(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, info)

	info, err = dir.Lookup(ctx, "ABC")
	require.NoError(t, err)
	assert.Nil(t, info)
	assert.False(t, mr.Exists(userCachePrefix+"ABC"))

	_, err = dir.Lookup(ctx, "Lower@Example.com")
	require.NoError(t, err)
	assert.True(t, mr.Exists(userCachePrefix+"lower@example.com"))
}
