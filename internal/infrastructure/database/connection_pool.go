package database

import (
	"fmt"
	"time"

	"github.com/Hariokas/PersonRegistrationSystem/internal/infrastructure/config"
	"github.com/Hariokas/PersonRegistrationSystem/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectionPool 数据库连接池包装
type ConnectionPool struct {
	db     *gorm.DB
	config *config.Config
}

// PoolStats 连接池运行状态
type PoolStats struct {
	MaxOpenConnections int `json:"max_open_connections"`
	OpenConnections    int `json:"open_connections"`
	InUse              int `json:"in_use"`
	Idle               int `json:"idle"`
}

// NewConnectionPool 建立数据库连接并配置连接池
func NewConnectionPool(cfg *config.Config) (*ConnectionPool, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	pool := &ConnectionPool{db: db, config: cfg}
	if err := pool.configurePool(); err != nil {
		return nil, err
	}

	logger.Info("数据库连接池初始化完成: %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	return pool, nil
}

// configurePool 配置连接池参数
func (p *ConnectionPool) configurePool() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层连接失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)
	return nil
}

// GetDB 获取gorm数据库句柄
func (p *ConnectionPool) GetDB() *gorm.DB {
	return p.db
}

// Stats 获取连接池状态
func (p *ConnectionPool) Stats() (*PoolStats, error) {
	sqlDB, err := p.db.DB()
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &PoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
	}, nil
}

// HealthCheck 检查数据库连通性
func (p *ConnectionPool) HealthCheck() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close 关闭连接池
func (p *ConnectionPool) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithTransaction 在事务中执行回调
func (p *ConnectionPool) WithTransaction(fn func(tx *gorm.DB) error) error {
	return p.db.Transaction(fn)
}
