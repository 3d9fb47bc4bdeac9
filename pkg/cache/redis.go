package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"quizapp/internal/models"
)

const quizTTL = 24 * time.Hour

// RedisCache keeps quiz documents warm between reads. Results and
// dashboard output are never cached; quizzes are invalidated on every
// update or delete.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

// NewRedisCacheWithClient wraps an existing client; used by tests.
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

func quizKey(id uint) string {
	return fmt.Sprintf("quiz:%d", id)
}

func (c *RedisCache) SetQuiz(quiz *models.Quiz) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	return c.client.Set(c.ctx, quizKey(quiz.ID), data, quizTTL).Err()
}

func (c *RedisCache) GetQuiz(id uint) (*models.Quiz, error) {
	data, err := c.client.Get(c.ctx, quizKey(id)).Bytes()
	if err != nil {
		return nil, err
	}

	var quiz models.Quiz
	err = json.Unmarshal(data, &quiz)
	return &quiz, err
}

func (c *RedisCache) InvalidateQuiz(id uint) error {
	return c.client.Del(c.ctx, quizKey(id)).Err()
}
