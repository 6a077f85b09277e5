package invoice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoice-antifraud/internal/application/dto"
	"invoice-antifraud/internal/domain/invoice"
	"invoice-antifraud/internal/infrastructure/cache/redis"
	"invoice-antifraud/internal/pkg/metrics"
)

// ProcessInvoiceInput contains the input for one invoice submission
type ProcessInvoiceInput struct {
	InvoiceID string
	AccountID string
	Amount    decimal.Decimal
}

// ProcessInvoiceOutput contains the persisted invoice and its verdict
type ProcessInvoiceOutput struct {
	Invoice     dto.InvoiceResponse     `json:"invoice"`
	FraudResult dto.FraudResultResponse `json:"fraud_result"`
}

// ProcessInvoiceUseCase drives the invoice processor: it applies the request
// timeout, records metrics and velocity data, and logs the outcome.
type ProcessInvoiceUseCase struct {
	processor     *invoice.Processor
	velocityCache *redis.VelocityCache

	analysisTimeout time.Duration
	logger          zerolog.Logger
}

// NewProcessInvoiceUseCase creates a new process invoice use case.
// velocityCache may be nil when Redis is not configured.
func NewProcessInvoiceUseCase(
	processor *invoice.Processor,
	velocityCache *redis.VelocityCache,
	analysisTimeout time.Duration,
	logger zerolog.Logger,
) *ProcessInvoiceUseCase {
	return &ProcessInvoiceUseCase{
		processor:       processor,
		velocityCache:   velocityCache,
		analysisTimeout: analysisTimeout,
		logger:          logger,
	}
}

// Execute processes one invoice submission
func (uc *ProcessInvoiceUseCase) Execute(ctx context.Context, input ProcessInvoiceInput) (*ProcessInvoiceOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.analysisTimeout)
	defer cancel()

	result, err := uc.processor.Process(ctx, input.InvoiceID, input.AccountID, input.Amount)
	if err != nil {
		if errors.Is(err, invoice.ErrDuplicateInvoice) {
			metrics.DuplicateSubmissions.Inc()
		}
		return nil, err
	}

	metrics.InvoicesProcessed.WithLabelValues(string(result.Invoice.Status)).Inc()
	if result.Verdict.Fraudulent() {
		metrics.FraudVerdicts.WithLabelValues(string(result.Verdict.Reason)).Inc()
	}

	// Velocity tracking is best effort and off the request path.
	if uc.velocityCache != nil {
		inv := result.Invoice
		go func() {
			if err := uc.velocityCache.RecordInvoice(context.Background(), inv.AccountID, inv.ID, inv.CreatedAt); err != nil {
				uc.logger.Warn().Err(err).Str("invoice_id", inv.ID).Msg("velocity cache record failed")
			}
		}()
	}

	event := uc.logger.Info().
		Str("invoice_id", result.Invoice.ID).
		Str("account_id", result.Invoice.AccountID).
		Str("status", string(result.Invoice.Status))
	if result.Verdict.Fraudulent() {
		event = event.Str("reason", string(result.Verdict.Reason))
	}
	event.Msg("invoice processed")

	return &ProcessInvoiceOutput{
		Invoice:     dto.FromInvoice(result.Invoice),
		FraudResult: dto.FromVerdict(result.Verdict),
	}, nil
}

// ProcessInvoiceRequest is the API request structure. Amount accepts either
// a JSON number or a decimal string.
type ProcessInvoiceRequest struct {
	InvoiceID string           `json:"invoice_id"`
	AccountID string           `json:"account_id"`
	Amount    *decimal.Decimal `json:"amount"`
}

// ToInput converts the API request to use case input
func (r *ProcessInvoiceRequest) ToInput() (*ProcessInvoiceInput, error) {
	if r.InvoiceID == "" {
		return nil, invoice.ErrMissingInvoiceID
	}
	if r.AccountID == "" {
		return nil, invoice.ErrMissingAccountID
	}
	if r.Amount == nil {
		return nil, invoice.ErrInvalidAmount
	}
	if r.Amount.IsNegative() {
		return nil, invoice.ErrNegativeAmount
	}

	return &ProcessInvoiceInput{
		InvoiceID: r.InvoiceID,
		AccountID: r.AccountID,
		Amount:    *r.Amount,
	}, nil
}
