package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	// Not-found
	ErrPoolNotExist         = errors.Register(ModuleName, 1, "pool not found")
	ErrStakeInfoNotFound    = errors.Register(ModuleName, 2, "stake info not found")
	ErrWorkerNotRegistered  = errors.Register(ModuleName, 3, "worker not registered")

	// Authorization
	ErrUnauthorizedPoolOwner = errors.Register(ModuleName, 10, "caller is not the pool owner")
	ErrUnauthorizedOperator  = errors.Register(ModuleName, 11, "caller is not the worker operator")

	// State
	ErrWorkerHasAdded    = errors.Register(ModuleName, 20, "worker already bound to a pool")
	ErrWorkerHasNotAdded = errors.Register(ModuleName, 21, "worker not bound to this pool")
	ErrBenchmarkMissing  = errors.Register(ModuleName, 22, "worker has no initial benchmark score")
	ErrPoolIsBusy        = errors.Register(ModuleName, 23, "pool has a state transition in progress")

	// Capacity / amount
	ErrInvalidCapacity       = errors.Register(ModuleName, 30, "cap is below current total stake")
	ErrStakeExceedCapacity   = errors.Register(ModuleName, 31, "deposit would exceed pool capacity")
	ErrLessThanMinDeposit    = errors.Register(ModuleName, 32, "deposit amount below minimum")
	ErrInsufficientBalance   = errors.Register(ModuleName, 33, "insufficient free balance")
	ErrInsufficientStake     = errors.Register(ModuleName, 34, "insufficient free stake")
	ErrInvalidWithdrawAmount = errors.Register(ModuleName, 35, "invalid withdraw amount")

	// Subsystem
	ErrMinerBindingCallFailed = errors.Register(ModuleName, 40, "mining subsystem rejected worker binding")
	ErrStartMiningCallFailed  = errors.Register(ModuleName, 41, "mining subsystem rejected start_mining")

	// Unimplemented by design (see spec Open Questions / DESIGN.md)
	ErrDestroyNotImplemented = errors.Register(ModuleName, 50, "destroy is not implemented")
)
