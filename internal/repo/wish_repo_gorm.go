package repo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gift-service/internal/domain"
)

type WishRepo struct{ db *gorm.DB }

func NewWishRepo(db *gorm.DB) *WishRepo { return &WishRepo{db: db} }

func (r *WishRepo) Create(ctx context.Context, w *domain.Wish) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WishRepo) FindByID(ctx context.Context, id uint) (*domain.Wish, error) {
	var w domain.Wish
	err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// FindByIDFull 显式加载 owner 与 offers（含出资人）
func (r *WishRepo) FindByIDFull(ctx context.Context, id uint) (*domain.Wish, error) {
	var w domain.Wish
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Offers").
		Preload("Offers.User").
		First(&w, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WishRepo) FindByIDs(ctx context.Context, ids []uint) ([]domain.Wish, error) {
	var wishes []domain.Wish
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&wishes).Error
	return wishes, err
}

func (r *WishRepo) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Wish, error) {
	var wishes []domain.Wish
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&wishes).Error
	return wishes, err
}

func (r *WishRepo) Recent(ctx context.Context, limit int) ([]domain.Wish, error) {
	var wishes []domain.Wish
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&wishes).Error
	return wishes, err
}

func (r *WishRepo) Popular(ctx context.Context, limit int) ([]domain.Wish, error) {
	var wishes []domain.Wish
	err := r.db.WithContext(ctx).
		Order("copied DESC").
		Limit(limit).
		Find(&wishes).Error
	return wishes, err
}

func (r *WishRepo) SearchByName(ctx context.Context, q string) ([]domain.Wish, error) {
	return r.searchColumn(ctx, "name", q)
}

func (r *WishRepo) SearchByDescription(ctx context.Context, q string) ([]domain.Wish, error) {
	return r.searchColumn(ctx, "description", q)
}

func (r *WishRepo) searchColumn(ctx context.Context, col, q string) ([]domain.Wish, error) {
	var wishes []domain.Wish
	err := r.db.WithContext(ctx).
		Where("LOWER("+col+") LIKE LOWER(?)", "%"+q+"%").
		Find(&wishes).Error
	return wishes, err
}

func (r *WishRepo) Update(ctx context.Context, w *domain.Wish) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Delete 同一事务内清掉 offers、榜单成员、wisher 关系再删 wish
func (r *WishRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&domain.Offer{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM wishlist_items WHERE wish_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM wish_wishers WHERE wish_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Wish{}, "id = ?", id).Error
	})
}

// CopyTo 源 copied+1 与新纪录插入在同一事务，防止丢计数
func (r *WishRepo) CopyTo(ctx context.Context, id, newOwnerID uint) (*domain.Wish, error) {
	var clone domain.Wish
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src domain.Wish
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&src, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrWishNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&domain.Wish{}).
			Where("id = ?", id).
			Update("copied", gorm.Expr("copied + 1")).Error; err != nil {
			return err
		}

		clone = domain.Wish{
			Name:        src.Name,
			Link:        src.Link,
			Image:       src.Image,
			Price:       src.Price,
			Raised:      decimal.Zero,
			Description: src.Description,
			Copied:      0,
			OwnerID:     newOwnerID,
		}
		return tx.Create(&clone).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrWishNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clone, nil
}
