package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrWishNotFound 目标 wish 在临界区内已不存在
var ErrWishNotFound = errors.New("wish not found")

type Offer struct {
	AuditedRecord
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Hidden bool            `gorm:"not null;default:false" json:"hidden"`
	UserID uint            `gorm:"index;not null" json:"userId"`
	ItemID uint            `gorm:"index;not null" json:"itemId"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Item *Wish `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

func (Offer) TableName() string { return "offers" }

type OfferRepository interface {
	// ApplyOffer 筹资临界区：同一 wish 上的 读-校验-累加-落单 必须串行执行。
	// 锁内重新校验 remaining，违规返回 ErrAlreadyFunded / ErrOverprice；
	// wish 已被删除时返回 ErrWishNotFound。校验失败不得改动 raised。
	ApplyOffer(ctx context.Context, o *Offer) error
	FindByID(ctx context.Context, id uint) (*Offer, error)
	List(ctx context.Context) ([]Offer, error)
}
