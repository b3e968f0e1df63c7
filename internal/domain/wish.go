package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type Wish struct {
	AuditedRecord
	Name        string          `gorm:"size:250;not null" json:"name"`
	Link        string          `gorm:"size:512" json:"link"`
	Image       string          `gorm:"size:512" json:"image"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Raised      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"raised"`
	Description string          `gorm:"size:1024" json:"description"`
	Copied      int             `gorm:"not null;default:0" json:"copied"`
	OwnerID     uint            `gorm:"index;not null" json:"ownerId"`

	Owner   *User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Offers  []Offer `gorm:"foreignKey:ItemID" json:"offers,omitempty"`
	Wishers []User  `gorm:"many2many:wish_wishers" json:"wishers,omitempty"`
}

func (Wish) TableName() string { return "wishes" }

// Remaining 距离目标价还差多少
func (w *Wish) Remaining() decimal.Decimal { return w.Price.Sub(w.Raised) }

// Funded 已有人出资即视为冻结，不可再编辑
func (w *Wish) Funded() bool { return w.Raised.IsPositive() }

// 筹资临界区的业务失败，由 repo 在锁内检测并返回
var (
	ErrOverprice     = errors.New("offer amount exceeds remaining price")
	ErrAlreadyFunded = errors.New("wish is already fully funded")
)

type WishRepository interface {
	Create(ctx context.Context, w *Wish) error
	FindByID(ctx context.Context, id uint) (*Wish, error)
	// FindByIDFull 显式加载 owner 与 offers（含出资人），不做隐式懒加载
	FindByIDFull(ctx context.Context, id uint) (*Wish, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Wish, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]Wish, error)
	Recent(ctx context.Context, limit int) ([]Wish, error)
	Popular(ctx context.Context, limit int) ([]Wish, error)
	SearchByName(ctx context.Context, q string) ([]Wish, error)
	SearchByDescription(ctx context.Context, q string) ([]Wish, error)
	Update(ctx context.Context, w *Wish) error
	// Delete 连同 offers 与成员关系一并删除（同一事务）
	Delete(ctx context.Context, id uint) error
	// CopyTo 原子执行：源 copied+1，插入新 wish（raised=0, copied=0, 新 owner）
	CopyTo(ctx context.Context, id, newOwnerID uint) (*Wish, error)
}
