package domain

import "context"

type Wishlist struct {
	AuditedRecord
	Name        string `gorm:"size:250;not null" json:"name"`
	Description string `gorm:"size:1024" json:"description"`
	Image       string `gorm:"size:512" json:"image"`
	OwnerID     uint   `gorm:"index;not null" json:"ownerId"`

	Owner *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Items []Wish `gorm:"many2many:wishlist_items" json:"items,omitempty"`
}

func (Wishlist) TableName() string { return "wishlists" }

type WishlistRepository interface {
	// Create 连同成员关系一次写入
	Create(ctx context.Context, wl *Wishlist) error
	FindByID(ctx context.Context, id uint) (*Wishlist, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]Wishlist, error)
	Search(ctx context.Context, q string) ([]Wishlist, error)
	// Update 保存字段；items 非 nil 时整组替换成员关系
	Update(ctx context.Context, wl *Wishlist, items []Wish) error
	Delete(ctx context.Context, id uint) error
}
