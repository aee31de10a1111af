package purchase

import (
	"Go-Course-Market/entities"
	"context"
	"gorm.io/gorm"
)

type (
	PurchaseRepository interface {
		CreatePurchase(ctx context.Context, purchase *entities.Purchase) error
		PurchaseExists(ctx context.Context, buyerID, courseID string) (bool, error)
		TxHashExists(ctx context.Context, txHash string) (bool, error)
	}

	purchaseRepository struct {
		db *gorm.DB
	}
)

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

// CreatePurchase inserts the append-only ledger row. The unique constraints on
// (buyer_id, course_id) and tx_hash are the real idempotency guards; callers
// translate gorm.ErrDuplicatedKey into the conflict taxonomy.
func (r *purchaseRepository) CreatePurchase(ctx context.Context, purchase *entities.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) PurchaseExists(ctx context.Context, buyerID, courseID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Purchase{}).
		Where("buyer_id = ? AND course_id = ?", buyerID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *purchaseRepository) TxHashExists(ctx context.Context, txHash string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Purchase{}).
		Where("tx_hash = ?", txHash).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
