package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gift-service/internal/domain"
)

type WishlistRepo struct{ db *gorm.DB }

func NewWishlistRepo(db *gorm.DB) *WishlistRepo { return &WishlistRepo{db: db} }

func (r *WishlistRepo) Create(ctx context.Context, wl *domain.Wishlist) error {
	// Items 已赋值，gorm 随行写入 wishlist_items
	return r.db.WithContext(ctx).Create(wl).Error
}

func (r *WishlistRepo) FindByID(ctx context.Context, id uint) (*domain.Wishlist, error) {
	var wl domain.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Items").
		First(&wl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wl, nil
}

func (r *WishlistRepo) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Wishlist, error) {
	var lists []domain.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Items").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

func (r *WishlistRepo) Search(ctx context.Context, q string) ([]domain.Wishlist, error) {
	like := "%" + q + "%"
	var lists []domain.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Items").
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like).
		Find(&lists).Error
	return lists, err
}

// Update 字段保存与成员替换在同一事务；items 为 nil 表示不动成员
func (r *WishlistRepo) Update(ctx context.Context, wl *domain.Wishlist, items []domain.Wish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Owner").Save(wl).Error; err != nil {
			return err
		}
		if items == nil {
			return nil
		}
		if len(items) == 0 {
			return tx.Model(wl).Association("Items").Clear()
		}
		return tx.Model(wl).Association("Items").Replace(items)
	})
}

func (r *WishlistRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM wishlist_items WHERE wishlist_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Wishlist{}, "id = ?", id).Error
	})
}
