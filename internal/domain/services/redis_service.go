package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService 定义Redis缓存服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	Ping() error
}

// RedisService Redis缓存服务，值以JSON序列化存储
type RedisService struct {
	client *redis.Client
}

// NewRedisService 创建Redis缓存服务
func NewRedisService(client *redis.Client) InterfaceRedisService {
	return &RedisService{client: client}
}

// Set 写入缓存
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), key, data, expiration).Err()
}

// Get 读取缓存并反序列化到dest，键不存在时返回redis.Nil
func (s *RedisService) Get(key string, dest interface{}) error {
	data, err := s.client.Get(context.Background(), key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete 删除缓存键
func (s *RedisService) Delete(key string) error {
	return s.client.Del(context.Background(), key).Err()
}

// Ping 检查Redis连通性
func (s *RedisService) Ping() error {
	return s.client.Ping(context.Background()).Err()
}
