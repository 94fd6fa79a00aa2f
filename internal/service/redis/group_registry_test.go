package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRegistry(t *testing.T) {
	assert, require := assert.New(t), require.New(t)
	ctx := context.Background()

	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(Close)
	require.NoError(Ping(ctx))

	ok, err := GroupRegistry.Exists(ctx, "message_1")
	require.NoError(err)
	assert.False(ok)

	require.NoError(GroupRegistry.Remember(ctx, "message_1", "C1"))
	require.NoError(GroupRegistry.Remember(ctx, "message_1", "C2"))
	require.NoError(GroupRegistry.Remember(ctx, "message_2", "C3"))
	assert.True(mr.Exists("group_message_1_members"))

	ok, _ = GroupRegistry.Exists(ctx, "message_1")
	assert.True(ok)

	require.NoError(GroupRegistry.Forget(ctx, "message_1", "C1"))
	ok, _ = GroupRegistry.Exists(ctx, "message_1")
	assert.True(ok)
	require.NoError(GroupRegistry.Forget(ctx, "message_1", "C2"))
	ok, _ = GroupRegistry.Exists(ctx, "message_1")
	assert.False(ok)

	// 连接ID不同的另一实例只移除自己的成员
	require.NoError(GroupRegistry.Remember(ctx, "message_2", "C4"))
	require.NoError(GroupRegistry.Forget(ctx, "message_2", "C4"))
	ok, _ = GroupRegistry.Exists(ctx, "message_2")
	assert.True(ok)
	members, err := mr.SMembers("group_message_2_members")
	require.NoError(err)
	assert.Equal([]string{"C3"}, members)
}
