package voucher

import (
	"fmt"
	"strings"

	"courierdesk/internal/pkg/errs"
)

type DocumentType int

const (
	DocumentTypeUnknown DocumentType = iota
	Invoice
	SalesReceipt
	CreditNote
	DebitNote
)

var documentTypeCodes = map[DocumentType]string{
	Invoice:      "01",
	SalesReceipt: "02",
	CreditNote:   "04",
	DebitNote:    "05",
}

var documentTypeNames = map[DocumentType]string{
	Invoice:      "INVOICE",
	SalesReceipt: "SALES_RECEIPT",
	CreditNote:   "CREDIT_NOTE",
	DebitNote:    "DEBIT_NOTE",
}

// ParseDocumentType accepts either the two-digit code ("01") or the name ("invoice").
func ParseDocumentType(s string) (DocumentType, error) {
	s = strings.TrimSpace(s)
	for t, code := range documentTypeCodes {
		if code == s || strings.EqualFold(documentTypeNames[t], s) {
			return t, nil
		}
	}
	return DocumentTypeUnknown, errs.NewValueIsInvalidErrorWithCause("document type",
		fmt.Errorf("%q is not a known document type", s))
}

func (t DocumentType) Validate() error {
	if _, ok := documentTypeCodes[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("document type", fmt.Errorf("%d is not a valid document type", int(t)))
	}
	return nil
}

// Code is the two-digit prefix of the voucher number; empty for invalid values.
func (t DocumentType) Code() string {
	return documentTypeCodes[t]
}

func (t DocumentType) String() string {
	if name, ok := documentTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}
