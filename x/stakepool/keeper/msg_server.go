package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/phala-network/stakepool/x/stakepool/types"
)

// MsgServer defines the stakepool MsgServer.
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance.
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// CreatePool handles MsgCreatePool.
func (m *MsgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pid := m.keeper.CreatePool(sdkCtx, msg.Owner)
	return &types.MsgCreatePoolResponse{PoolID: pid}, nil
}

// AddWorker handles MsgAddWorker.
func (m *MsgServer) AddWorker(ctx context.Context, msg *types.MsgAddWorker) (*types.MsgAddWorkerResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	worker, err := WorkerKeyFromHex(msg.WorkerID)
	if err != nil {
		return nil, err
	}
	miner, err := m.keeper.AddWorker(sdkCtx, msg.Owner, msg.PoolID, worker)
	if err != nil {
		return nil, err
	}
	return &types.MsgAddWorkerResponse{Miner: miner.String()}, nil
}

// SetCap handles MsgSetCap.
func (m *MsgServer) SetCap(ctx context.Context, msg *types.MsgSetCap) (*types.MsgSetCapResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cap, ok := math.NewIntFromString(msg.Cap)
	if !ok {
		return nil, types.ErrInvalidCapacity
	}
	if err := m.keeper.SetCap(sdkCtx, msg.Owner, msg.PoolID, cap); err != nil {
		return nil, err
	}
	return &types.MsgSetCapResponse{}, nil
}

// SetPayoutPref handles MsgSetPayoutPref.
func (m *MsgServer) SetPayoutPref(ctx context.Context, msg *types.MsgSetPayoutPref) (*types.MsgSetPayoutPrefResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	rate, err := math.LegacyNewDecFromStr(msg.Rate)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.SetPayoutPref(sdkCtx, msg.Owner, msg.PoolID, rate); err != nil {
		return nil, err
	}
	return &types.MsgSetPayoutPrefResponse{}, nil
}

// Deposit handles MsgDeposit.
func (m *MsgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrLessThanMinDeposit
	}
	if err := m.keeper.Deposit(sdkCtx, msg.Depositor, msg.PoolID, amount); err != nil {
		return nil, err
	}
	return &types.MsgDepositResponse{}, nil
}

// Withdraw handles MsgWithdraw.
func (m *MsgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidWithdrawAmount
	}

	immediate, queued, err := m.keeper.Withdraw(sdkCtx, msg.Withdrawer, msg.PoolID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgWithdrawResponse{
		Immediate: immediate.String(),
		Queued:    queued.String(),
	}, nil
}

// ClaimReward handles MsgClaimReward.
func (m *MsgServer) ClaimReward(ctx context.Context, msg *types.MsgClaimReward) (*types.MsgClaimRewardResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	paid, err := m.keeper.ClaimReward(sdkCtx, msg.Caller, msg.PoolID, msg.Target)
	if err != nil {
		return nil, err
	}
	return &types.MsgClaimRewardResponse{Paid: paid.String()}, nil
}

// StartMining handles MsgStartMining.
func (m *MsgServer) StartMining(ctx context.Context, msg *types.MsgStartMining) (*types.MsgStartMiningResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	worker, err := WorkerKeyFromHex(msg.WorkerID)
	if err != nil {
		return nil, err
	}
	stake, ok := math.NewIntFromString(msg.Stake)
	if !ok {
		return nil, types.ErrInsufficientStake
	}
	if err := m.keeper.StartMining(sdkCtx, msg.Owner, msg.PoolID, worker, stake); err != nil {
		return nil, err
	}
	return &types.MsgStartMiningResponse{}, nil
}

// StopMining handles MsgStopMining.
func (m *MsgServer) StopMining(ctx context.Context, msg *types.MsgStopMining) (*types.MsgStopMiningResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	worker, err := WorkerKeyFromHex(msg.WorkerID)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.StopMining(sdkCtx, msg.Owner, msg.PoolID, worker); err != nil {
		return nil, err
	}
	return &types.MsgStopMiningResponse{}, nil
}
