package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginFailKeyPrefix 是Redis中失败计数键的前缀
const loginFailKeyPrefix = "login_fail:"

// LoginLimiter 实现“N次失败锁定T分钟”的登录限流。
// 计数放在带TTL的Redis键里，没有任何进程内的全局状态，
// 多实例部署时锁定自然共享。
type LoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter 创建一个登录限流器。参数不合法时取默认策略（5次/10分钟）。
func NewLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 10 * time.Minute
	}
	return &LoginLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

func (l *LoginLimiter) key(username string) string {
	return loginFailKeyPrefix + username
}

// IsLocked 返回该用户名当前是否处于锁定状态，以及剩余锁定时长。
func (l *LoginLimiter) IsLocked(ctx context.Context, username string) (bool, time.Duration, error) {
	count, err := l.rdb.Get(ctx, l.key(username)).Int64()
	if err == redis.Nil {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("读取登录失败计数失败: %w", err)
	}

	if count < int64(l.maxAttempts) {
		return false, 0, nil
	}

	ttl, err := l.rdb.TTL(ctx, l.key(username)).Result()
	if err != nil {
		return true, 0, fmt.Errorf("读取锁定剩余时间失败: %w", err)
	}
	return true, ttl, nil
}

// RecordFailure 记录一次登录失败并返回窗口内的累计失败次数。
// 第一次失败时为计数键设置TTL，窗口到期后计数自动消失。
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) (int64, error) {
	key := l.key(username)

	pipe := l.rdb.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("记录登录失败失败: %w", err)
	}

	return incrCmd.Val(), nil
}

// Reset 在登录成功后清除失败计数。
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if err := l.rdb.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("清除登录失败计数失败: %w", err)
	}
	return nil
}
