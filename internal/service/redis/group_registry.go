package redis

import (
	"context"
)

// groupKey 频道组成员集合的键，集合元素是连接ID
// 多个实例共享同一集合，每个实例只增删自己的连接
func groupKey(group string) string {
	return "group_" + group + "_members"
}

// groupRegistry 使用 Redis 集合记录每个频道组中的 websocket 连接
type groupRegistry struct {
}

var GroupRegistry = new(groupRegistry)

// Remember 将连接加入频道组成员集合
func (g *groupRegistry) Remember(ctx context.Context, group, channel string) error {
	return redisClient.SAdd(ctx, groupKey(group), channel).Err()
}

// Forget 将连接移出频道组，集合为空时 Redis 会自动删除该键
func (g *groupRegistry) Forget(ctx context.Context, group, channel string) error {
	return redisClient.SRem(ctx, groupKey(group), channel).Err()
}

// Exists 频道组中是否还有连接
func (g *groupRegistry) Exists(ctx context.Context, group string) (bool, error) {
	n, err := redisClient.SCard(ctx, groupKey(group)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
