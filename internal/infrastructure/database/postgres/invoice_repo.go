package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"invoice-antifraud/internal/domain/fraud"
	"invoice-antifraud/internal/domain/invoice"
)

// InvoiceModel is the database model for invoices. The caller-supplied ID is
// the primary key, which is the uniqueness constraint the processor's
// idempotency guarantee rests on.
type InvoiceModel struct {
	ID        string          `gorm:"type:varchar(64);primaryKey"`
	AccountID string          `gorm:"type:varchar(64);index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status    string          `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time       `gorm:"index;not null"`
}

// TableName returns the table name for invoices
func (InvoiceModel) TableName() string {
	return "invoices"
}

// FraudRecordModel is the database model for fraud records
type FraudRecordModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Reason      string    `gorm:"type:varchar(32);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for fraud records
func (FraudRecordModel) TableName() string {
	return "fraud_records"
}

// InvoiceRepository implements invoice.Repository and fraud.History
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(client *Client) *InvoiceRepository {
	return &InvoiceRepository{db: client.DB()}
}

// Create stores the invoice and its optional fraud record in one database
// transaction. A duplicate invoice ID is reported as ErrDuplicateInvoice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice, record *invoice.FraudRecord) error {
	now := time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := &InvoiceModel{
			ID:        inv.ID,
			AccountID: inv.AccountID,
			Amount:    inv.Amount,
			Status:    string(inv.Status),
			CreatedAt: now,
		}
		if err := tx.Create(model).Error; err != nil {
			return err
		}

		if record != nil {
			recordModel := &FraudRecordModel{
				ID:          record.ID,
				InvoiceID:   record.InvoiceID,
				Reason:      string(record.Reason),
				Description: record.Description,
				CreatedAt:   now,
			}
			if err := tx.Create(recordModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return invoice.ErrDuplicateInvoice
		}
		return err
	}

	inv.CreatedAt = now
	if record != nil {
		record.CreatedAt = now
	}
	return nil
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*invoice.Invoice, error) {
	var model InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoice.ErrInvoiceNotFound
		}
		return nil, err
	}
	return modelToInvoice(&model), nil
}

// GetFraudRecord retrieves the fraud record attached to an invoice
func (r *InvoiceRepository) GetFraudRecord(ctx context.Context, invoiceID string) (*invoice.FraudRecord, error) {
	var model FraudRecordModel
	if err := r.db.WithContext(ctx).First(&model, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoice.ErrFraudRecordNotFound
		}
		return nil, err
	}
	return &invoice.FraudRecord{
		ID:          model.ID,
		InvoiceID:   model.InvoiceID,
		Reason:      fraud.Reason(model.Reason),
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
	}, nil
}

// ListByAccount retrieves an account's invoices, newest first
func (r *InvoiceRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*invoice.Invoice, error) {
	var models []InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	invoices := make([]*invoice.Invoice, len(models))
	for i, m := range models {
		invoices[i] = modelToInvoice(&m)
	}
	return invoices, nil
}

// ListRecentAmounts implements fraud.History
func (r *InvoiceRepository) ListRecentAmounts(ctx context.Context, accountID string, limit int) ([]decimal.Decimal, error) {
	var amounts []decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&InvoiceModel{}).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Pluck("amount", &amounts).Error; err != nil {
		return nil, err
	}
	return amounts, nil
}

// CountByAccountSince implements the count side of fraud.History
func (r *InvoiceRepository) CountByAccountSince(ctx context.Context, accountID string, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&InvoiceModel{}).
		Where("account_id = ? AND created_at >= ?", accountID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountSince implements fraud.History
func (r *InvoiceRepository) CountSince(ctx context.Context, accountID string, since time.Time) (int64, error) {
	return r.CountByAccountSince(ctx, accountID, since)
}

func modelToInvoice(m *InvoiceModel) *invoice.Invoice {
	return &invoice.Invoice{
		ID:        m.ID,
		AccountID: m.AccountID,
		Amount:    m.Amount,
		Status:    invoice.Status(m.Status),
		CreatedAt: m.CreatedAt,
	}
}
