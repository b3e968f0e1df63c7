package domain

import "context"

const (
	DefaultAbout  = "Пока еще не рассказал ничего о себе"
	DefaultAvatar = "https://i.pravatar.cc/300"
)

type User struct {
	AuditedRecord
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	About        string `gorm:"size:255" json:"about"`
	Avatar       string `gorm:"size:255" json:"avatar"`
	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
}

func (User) TableName() string { return "users" }

// UserRepository 查不到时返回 (nil, nil)，由 service 决定错误语义
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByIdentifier 按用户名或邮箱精确匹配（登录用）
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	// SearchLike 按用户名/邮箱子串模糊匹配
	SearchLike(ctx context.Context, query string) ([]User, error)
	Update(ctx context.Context, u *User) error
}
