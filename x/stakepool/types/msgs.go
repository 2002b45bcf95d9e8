package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Message types
const (
	TypeMsgCreatePool      = "create_pool"
	TypeMsgAddWorker       = "add_worker"
	TypeMsgSetCap          = "set_cap"
	TypeMsgSetPayoutPref   = "set_payout_pref"
	TypeMsgDeposit         = "deposit"
	TypeMsgWithdraw        = "withdraw"
	TypeMsgClaimReward     = "claim_reward"
	TypeMsgStartMining     = "start_mining"
	TypeMsgStopMining      = "stop_mining"
)

// MsgCreatePool creates a new, empty pool owned by the signer.
type MsgCreatePool struct {
	Owner string `json:"owner"`
}

func (msg MsgCreatePool) Route() string { return ModuleName }
func (msg MsgCreatePool) Type() string  { return TypeMsgCreatePool }

func (msg MsgCreatePool) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	return nil
}

func (msg MsgCreatePool) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

func (*MsgCreatePool) ProtoMessage()  {}
func (msg *MsgCreatePool) Reset()     { *msg = MsgCreatePool{} }
func (msg MsgCreatePool) String() string {
	return fmt.Sprintf("MsgCreatePool{Owner: %s}", msg.Owner)
}

// MsgCreatePoolResponse returns the allocated pool id.
type MsgCreatePoolResponse struct {
	PoolID uint64 `json:"pool_id"`
}

// MsgAddWorker binds a registered worker to a pool owned by the signer.
type MsgAddWorker struct {
	Owner    string `json:"owner"`
	PoolID   uint64 `json:"pool_id"`
	WorkerID string `json:"worker_id"` // hex-encoded 32-byte worker public key
}

func (msg MsgAddWorker) Route() string { return ModuleName }
func (msg MsgAddWorker) Type() string  { return TypeMsgAddWorker }

func (msg MsgAddWorker) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	if msg.WorkerID == "" {
		return ErrWorkerNotRegistered
	}
	return nil
}

func (msg MsgAddWorker) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

func (*MsgAddWorker) ProtoMessage() {}
func (msg *MsgAddWorker) Reset()    { *msg = MsgAddWorker{} }
func (msg MsgAddWorker) String() string {
	return fmt.Sprintf("MsgAddWorker{PoolID: %d, WorkerID: %s}", msg.PoolID, msg.WorkerID)
}

// MsgAddWorkerResponse returns the miner sub-account derived for this pair.
type MsgAddWorkerResponse struct {
	Miner string `json:"miner"`
}

// MsgSetCap sets the pool's capacity.
type MsgSetCap struct {
	Owner  string `json:"owner"`
	PoolID uint64 `json:"pool_id"`
	Cap    string `json:"cap"`
}

func (msg MsgSetCap) Route() string { return ModuleName }
func (msg MsgSetCap) Type() string  { return TypeMsgSetCap }

func (msg MsgSetCap) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	return nil
}

func (msg MsgSetCap) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

func (*MsgSetCap) ProtoMessage() {}
func (msg *MsgSetCap) Reset()    { *msg = MsgSetCap{} }
func (msg MsgSetCap) String() string {
	return fmt.Sprintf("MsgSetCap{PoolID: %d, Cap: %s}", msg.PoolID, msg.Cap)
}

// MsgSetCapResponse is empty on success.
type MsgSetCapResponse struct{}

// MsgSetPayoutPref sets the pool's owner commission rate.
type MsgSetPayoutPref struct {
	Owner  string `json:"owner"`
	PoolID uint64 `json:"pool_id"`
	Rate   string `json:"rate"` // decimal string in [0,1]
}

func (msg MsgSetPayoutPref) Route() string { return ModuleName }
func (msg MsgSetPayoutPref) Type() string  { return TypeMsgSetPayoutPref }

func (msg MsgSetPayoutPref) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	return nil
}

func (msg MsgSetPayoutPref) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

func (*MsgSetPayoutPref) ProtoMessage() {}
func (msg *MsgSetPayoutPref) Reset()    { *msg = MsgSetPayoutPref{} }
func (msg MsgSetPayoutPref) String() string {
	return fmt.Sprintf("MsgSetPayoutPref{PoolID: %d, Rate: %s}", msg.PoolID, msg.Rate)
}

// MsgSetPayoutPrefResponse is empty on success.
type MsgSetPayoutPrefResponse struct{}

// MsgDeposit deposits amount into pool.
type MsgDeposit struct {
	Depositor string `json:"depositor"`
	PoolID    uint64 `json:"pool_id"`
	Amount    string `json:"amount"`
}

func (msg MsgDeposit) Route() string { return ModuleName }
func (msg MsgDeposit) Type() string  { return TypeMsgDeposit }

func (msg MsgDeposit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Depositor); err != nil {
		return err
	}
	return nil
}

func (msg MsgDeposit) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Depositor)
	return []sdk.AccAddress{addr}
}

func (*MsgDeposit) ProtoMessage() {}
func (msg *MsgDeposit) Reset()    { *msg = MsgDeposit{} }
func (msg MsgDeposit) String() string {
	return fmt.Sprintf("MsgDeposit{PoolID: %d, Amount: %s}", msg.PoolID, msg.Amount)
}

// MsgDepositResponse is empty on success.
type MsgDepositResponse struct{}

// MsgWithdraw requests withdrawal of amount from pool.
type MsgWithdraw struct {
	Withdrawer string `json:"withdrawer"`
	PoolID     uint64 `json:"pool_id"`
	Amount     string `json:"amount"`
}

func (msg MsgWithdraw) Route() string { return ModuleName }
func (msg MsgWithdraw) Type() string  { return TypeMsgWithdraw }

func (msg MsgWithdraw) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Withdrawer); err != nil {
		return err
	}
	return nil
}

func (msg MsgWithdraw) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Withdrawer)
	return []sdk.AccAddress{addr}
}

func (*MsgWithdraw) ProtoMessage() {}
func (msg *MsgWithdraw) Reset()    { *msg = MsgWithdraw{} }
func (msg MsgWithdraw) String() string {
	return fmt.Sprintf("MsgWithdraw{PoolID: %d, Amount: %s}", msg.PoolID, msg.Amount)
}

// MsgWithdrawResponse reports how much was released immediately.
type MsgWithdrawResponse struct {
	Immediate string `json:"immediate"`
	Queued    string `json:"queued"`
}

// MsgClaimReward claims available rewards to target.
type MsgClaimReward struct {
	Caller string `json:"caller"`
	PoolID uint64 `json:"pool_id"`
	Target string `json:"target"`
}

func (msg MsgClaimReward) Route() string { return ModuleName }
func (msg MsgClaimReward) Type() string  { return TypeMsgClaimReward }

func (msg MsgClaimReward) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Caller); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(msg.Target); err != nil {
		return err
	}
	return nil
}

func (msg MsgClaimReward) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Caller)
	return []sdk.AccAddress{addr}
}

func (*MsgClaimReward) ProtoMessage() {}
func (msg *MsgClaimReward) Reset()    { *msg = MsgClaimReward{} }
func (msg MsgClaimReward) String() string {
	return fmt.Sprintf("MsgClaimReward{PoolID: %d, Target: %s}", msg.PoolID, msg.Target)
}

// MsgClaimRewardResponse reports the amount paid.
type MsgClaimRewardResponse struct {
	Paid string `json:"paid"`
}

// MsgStartMining starts mining on worker with the given stake.
type MsgStartMining struct {
	Owner    string `json:"owner"`
	PoolID   uint64 `json:"pool_id"`
	WorkerID string `json:"worker_id"`
	Stake    string `json:"stake"`
}

func (msg MsgStartMining) Route() string { return ModuleName }
func (msg MsgStartMining) Type() string  { return TypeMsgStartMining }

func (msg MsgStartMining) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	return nil
}

func (msg MsgStartMining) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

func (*MsgStartMining) ProtoMessage() {}
func (msg *MsgStartMining) Reset()    { *msg = MsgStartMining{} }
func (msg MsgStartMining) String() string {
	return fmt.Sprintf("MsgStartMining{PoolID: %d, WorkerID: %s, Stake: %s}", msg.PoolID, msg.WorkerID, msg.Stake)
}

// MsgStartMiningResponse is empty on success.
type MsgStartMiningResponse struct{}

// MsgStopMining stops mining on worker; stake is restored asynchronously via
// on_cleanup after the mining subsystem's cool-down.
type MsgStopMining struct {
	Owner    string `json:"owner"`
	PoolID   uint64 `json:"pool_id"`
	WorkerID string `json:"worker_id"`
}

func (msg MsgStopMining) Route() string { return ModuleName }
func (msg MsgStopMining) Type() string  { return TypeMsgStopMining }

func (msg MsgStopMining) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
		return err
	}
	return nil
}

func (msg MsgStopMining) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(msg.Owner)
	return []sdk.AccAddress{addr}
}

func (*MsgStopMining) ProtoMessage() {}
func (msg *MsgStopMining) Reset()    { *msg = MsgStopMining{} }
func (msg MsgStopMining) String() string {
	return fmt.Sprintf("MsgStopMining{PoolID: %d, WorkerID: %s}", msg.PoolID, msg.WorkerID)
}

// MsgStopMiningResponse is empty on success.
type MsgStopMiningResponse struct{}
