package services

import (
	"time"

	"gorm.io/gorm"
)

// HealthStatus ヘルスチェックの結果
type HealthStatus struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Database  string `json:"database"`
}

// HealthService ヘルスチェックに関するサービスインターフェース
type HealthService interface {
	GetStatus() *HealthStatus
}

// healthService HealthServiceの実装
type healthService struct {
	db        *gorm.DB
	startTime time.Time
	version   string
}

// NewHealthService HealthServiceを作成
func NewHealthService(db *gorm.DB, version string) HealthService {
	return &healthService{
		db:        db,
		startTime: time.Now(),
		version:   version,
	}
}

// GetStatus サービスのステータスを取得
func (s *healthService) GetStatus() *HealthStatus {
	status := &HealthStatus{
		Status:    "ok",
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   s.version,
		Database:  "ok",
	}

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
	}

	return status
}
