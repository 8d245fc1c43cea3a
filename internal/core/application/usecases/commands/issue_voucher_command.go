package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/voucher"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

var ErrIssueVoucherCommandIsNotConstructed = errors.New(
	"IssueVoucherCommand must be created via NewIssueVoucherCommand constructor",
)

// IssueVoucherCommand issues a fiscal document for the configured establishment and
// emission point. When orderID is set and amount is nil, the order total is used.
type IssueVoucherCommand struct { //nolint:recvcheck //using for validation
	voucherID    kernel.UUID
	documentType voucher.DocumentType
	orderID      *kernel.UUID
	amount       *decimal.Decimal
	actor        string

	guard guard.ConstructorGuard
}

func NewIssueVoucherCommand(
	voucherID kernel.UUID,
	documentType voucher.DocumentType,
	orderID *kernel.UUID,
	amount *decimal.Decimal,
	actor string,
) (IssueVoucherCommand, error) {
	errList := []error{voucherID.Validate(), documentType.Validate(), validateActor(actor)}
	if orderID != nil {
		errList = append(errList, orderID.Validate())
	}
	if amount != nil && amount.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount.String())))
	}
	if orderID == nil && amount == nil {
		errList = append(errList, errs.NewValueIsRequiredError("amount"))
	}
	if err := errors.Join(errList...); err != nil {
		return IssueVoucherCommand{}, err
	}

	cmd := IssueVoucherCommand{
		voucherID:    voucherID,
		documentType: documentType,
		amount:       kernel.OptionalDecimal(amount),
		actor:        strings.TrimSpace(actor),
		guard:        guard.NewConstructorGuard(),
	}
	if orderID != nil {
		id := *orderID
		cmd.orderID = &id
	}
	return cmd, nil
}

func (c IssueVoucherCommand) Validate() error {
	return c.guard.Validate(ErrIssueVoucherCommandIsNotConstructed)
}

func (c IssueVoucherCommand) VoucherID() kernel.UUID {
	return c.voucherID
}

func (c IssueVoucherCommand) DocumentType() voucher.DocumentType {
	return c.documentType
}

func (c IssueVoucherCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c IssueVoucherCommand) Amount() *decimal.Decimal {
	return kernel.OptionalDecimal(c.amount)
}

func (c IssueVoucherCommand) Actor() string {
	return c.actor
}
