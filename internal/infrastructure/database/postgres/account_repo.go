package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invoice-antifraud/internal/domain/account"
)

// AccountModel is the database model for accounts
type AccountModel struct {
	ID         string    `gorm:"type:varchar(64);primaryKey"`
	Suspicious bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for accounts
func (AccountModel) TableName() string {
	return "accounts"
}

// AccountRepository implements account.Repository
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(client *Client) *AccountRepository {
	return &AccountRepository{db: client.DB()}
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	var model AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, account.ErrAccountNotFound
		}
		return nil, err
	}
	return modelToAccount(&model), nil
}

// GetOrCreate inserts the account with ON CONFLICT DO NOTHING and reads the
// committed row back, so concurrent first-time submissions for the same
// account resolve to a single row.
func (r *AccountRepository) GetOrCreate(ctx context.Context, id string) (*account.Account, error) {
	model := AccountModel{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model).Error; err != nil {
		return nil, err
	}

	// The insert may have been a no-op; the stored flag wins either way.
	var stored AccountModel
	if err := r.db.WithContext(ctx).First(&stored, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return modelToAccount(&stored), nil
}

func modelToAccount(m *AccountModel) *account.Account {
	return &account.Account{
		ID:         m.ID,
		Suspicious: m.Suspicious,
		CreatedAt:  m.CreatedAt,
	}
}
