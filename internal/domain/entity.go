package domain

import "time"

// AuditedRecord 公共审计字段，所有实体组合嵌入（不做基类继承）
type AuditedRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
