package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gift-service/internal/domain"
)

type OfferRepo struct{ db *gorm.DB }

func NewOfferRepo(db *gorm.DB) *OfferRepo { return &OfferRepo{db: db} }

// ApplyOffer 筹资临界区。wish 行加 FOR UPDATE 锁后重新校验，
// 同一 wish 上的并发出资被数据库串行化，raised 永远不会超过 price。
func (r *OfferRepo) ApplyOffer(ctx context.Context, o *domain.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var w domain.Wish
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&w, "id = ?", o.ItemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrWishNotFound
		}
		if err != nil {
			return err
		}

		remaining := w.Remaining()
		if remaining.IsZero() {
			return domain.ErrAlreadyFunded
		}
		if o.Amount.GreaterThan(remaining) {
			return domain.ErrOverprice
		}

		if err := tx.Model(&domain.Wish{}).
			Where("id = ?", w.ID).
			Update("raised", w.Raised.Add(o.Amount)).Error; err != nil {
			return err
		}
		return tx.Create(o).Error
	})
}

func (r *OfferRepo) FindByID(ctx context.Context, id uint) (*domain.Offer, error) {
	var o domain.Offer
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Item").
		First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepo) List(ctx context.Context) ([]domain.Offer, error) {
	var offers []domain.Offer
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Item").
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}
