package http

import (
	"time"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/application/usecases/commands"
	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewCustomerRequest struct {
	Name       string           `json:"name"`
	PricePerLb *decimal.Decimal `json:"pricePerLb"`
}

type CustomerResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	PricePerLb *decimal.Decimal `json:"pricePerLb,omitempty"`
}

type NewOrderRequest struct {
	Guide      string           `json:"guide"`
	CustomerID string           `json:"customerId"`
	Facility   string           `json:"facility"`
	WeightLbs  *decimal.Decimal `json:"weightLbs"`
	// Total overrides the computed price when set.
	Total *decimal.Decimal `json:"total"`
}

type UpdateWeightRequest struct {
	WeightLbs *decimal.Decimal `json:"weightLbs"`
	Total     *decimal.Decimal `json:"total"`
}

type OrderResponse struct {
	ID         string           `json:"id"`
	Guide      string           `json:"guide"`
	CustomerID *string          `json:"customerId,omitempty"`
	Facility   string           `json:"facility"`
	WeightLbs  *decimal.Decimal `json:"weightLbs,omitempty"`
	Total      string           `json:"total"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type OrderSummaryResponse struct {
	ID         string    `json:"id"`
	Guide      string    `json:"guide"`
	CustomerID *string   `json:"customerId,omitempty"`
	Facility   string    `json:"facility"`
	Status     string    `json:"status"`
	Total      string    `json:"total"`
	CreatedAt  time.Time `json:"createdAt"`
}

type StatusChangeRequest struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	// Correction allows backward moves; Description is then the mandatory reason.
	Correction bool `json:"correction"`
}

type AdvanceStatusRequest struct {
	Description string `json:"description"`
}

type BulkStatusRequest struct {
	OrderIDs    []string `json:"orderIds"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Correction  bool     `json:"correction"`
}

type HistoryEntryResponse struct {
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Kind           string    `json:"kind"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

type BulkFailureResponse struct {
	OrderID string `json:"orderId"`
	Error   string `json:"error"`
}

type BulkStatusResponse struct {
	Succeeded []HistoryEntryResponse `json:"succeeded"`
	Failed    []BulkFailureResponse  `json:"failed"`
	// Redrive lists failed orders that may succeed when submitted again.
	Redrive []string `json:"redrive"`
	Error   string   `json:"error,omitempty"`
}

type QuoteResponse struct {
	Total      string `json:"total"`
	Rate       string `json:"rate"`
	RateSource string `json:"rateSource"`
	Degraded   bool   `json:"degraded"`
}

type IssueVoucherRequest struct {
	DocumentType string           `json:"documentType"`
	OrderID      string           `json:"orderId"`
	Amount       *decimal.Decimal `json:"amount"`
}

type VoucherResponse struct {
	ID       string    `json:"id"`
	Number   string    `json:"number"`
	Sequence int64     `json:"sequence"`
	OrderID  *string   `json:"orderId,omitempty"`
	Amount   string    `json:"amount"`
	IssuedAt time.Time `json:"issuedAt"`
	IssuedBy string    `json:"issuedBy"`
}

type AllocateNumberRequest struct {
	DocumentType  string `json:"documentType"`
	Establishment string `json:"establishment"`
	EmissionPoint string `json:"emissionPoint"`
}

type AllocationResponse struct {
	Key      string `json:"key"`
	Sequence int64  `json:"sequence"`
	Number   string `json:"number"`
}

type SequenceAuditResponse struct {
	Key             string `json:"key"`
	CurrentSequence int64  `json:"currentSequence"`
	IssuedCount     int64  `json:"issuedCount"`
	MaxIssued       int64  `json:"maxIssued"`
	Unissued        int64  `json:"unissued"`
	Inconsistent    bool   `json:"inconsistent"`
}

type SettingsRequest struct {
	DefaultPricePerLb  *decimal.Decimal `json:"defaultPricePerLb"`
	AutoCalculatePrice bool             `json:"autoCalculatePrice"`
	EstablishmentCode  string           `json:"establishmentCode"`
	EmissionPointCode  string           `json:"emissionPointCode"`
}

type SettingsResponse struct {
	DefaultPricePerLb  string    `json:"defaultPricePerLb"`
	AutoCalculatePrice bool      `json:"autoCalculatePrice"`
	EstablishmentCode  string    `json:"establishmentCode"`
	EmissionPointCode  string    `json:"emissionPointCode"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func orderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID().String(),
		Guide:      o.Guide(),
		CustomerID: optionalID(o.CustomerID()),
		Facility:   o.Facility().String(),
		WeightLbs:  o.WeightLbs(),
		Total:      o.Total().StringFixed(2),
		Status:     o.Status().String(),
		CreatedAt:  o.CreatedAt(),
	}
}

func historyEntryResponse(e order.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		OrderID:        e.OrderID().String(),
		Status:         e.Status().String(),
		PreviousStatus: previousStatus(e.PreviousStatus()),
		Kind:           e.Kind().String(),
		Description:    e.Description(),
		CreatedAt:      e.CreatedAt(),
		CreatedBy:      e.CreatedBy(),
	}
}

func bulkStatusResponse(r commands.ApplyBulkStatusResult) BulkStatusResponse {
	response := BulkStatusResponse{
		Succeeded: make([]HistoryEntryResponse, 0, len(r.Succeeded)),
		Failed:    make([]BulkFailureResponse, 0, len(r.Failed)),
		Redrive:   make([]string, 0),
	}
	for _, item := range r.Succeeded {
		response.Succeeded = append(response.Succeeded, historyEntryResponse(item.Entry))
	}
	for _, id := range r.FailedIDs() {
		response.Failed = append(response.Failed, BulkFailureResponse{
			OrderID: id.String(),
			Error:   r.Failed[id].Error(),
		})
	}
	for _, id := range r.RedriveCandidates() {
		response.Redrive = append(response.Redrive, id.String())
	}
	return response
}

// previousStatus is empty for intake entries.
func previousStatus(s order.Status) string {
	if s == order.Unknown {
		return ""
	}
	return s.String()
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
