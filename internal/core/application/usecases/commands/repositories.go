// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"courierdesk/internal/core/ports"
)

// Unit of Work interfaces give each handler exactly the repositories it touches.
// The postgres unit of work satisfies all of them.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	SettingsRepoFactory interface {
		SettingsRepository() ports.SettingsRepository
	}

	VoucherSequenceRepoFactory interface {
		VoucherSequenceRepository() ports.VoucherSequenceRepository
	}

	VoucherRepoFactory interface {
		VoucherRepository() ports.VoucherRepository
	}

	// OrderUoW is used by commands that only touch orders and their history.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	SettingsUoW interface {
		TxManager
		SettingsRepoFactory
	}

	SettingsUoWFactory interface {
		Create() SettingsUoW
	}

	// SequenceUoW reserves voucher numbers without issuing a document.
	SequenceUoW interface {
		TxManager
		VoucherSequenceRepoFactory
	}

	SequenceUoWFactory interface {
		Create() SequenceUoW
	}

	// VoucherUoW issues a voucher: it reads settings and the referenced order,
	// reserves the number and stores the document in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   seq, err := uow.VoucherSequenceRepository().Next(ctx, key)
	//   // ... build the voucher
	//   err = uow.VoucherRepository().Add(ctx, v)
	//
	//   err = uow.Commit(ctx)
	VoucherUoW interface {
		TxManager
		OrderRepoFactory
		SettingsRepoFactory
		VoucherSequenceRepoFactory
		VoucherRepoFactory
	}

	VoucherUoWFactory interface {
		Create() VoucherUoW
	}
)
