package stakepool

import (
	"encoding/json"

	"cosmossdk.io/core/appmodule"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	cdctypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/module"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"

	"github.com/phala-network/stakepool/x/stakepool/keeper"
	"github.com/phala-network/stakepool/x/stakepool/types"
)

const (
	ModuleName = types.ModuleName
)

var (
	_ module.AppModuleBasic = AppModuleBasic{}
	_ appmodule.AppModule   = AppModule{}
)

// AppModuleBasic defines the basic application module for stakepool.
type AppModuleBasic struct{}

// Name returns the module's name.
func (AppModuleBasic) Name() string {
	return ModuleName
}

// RegisterLegacyAminoCodec registers the module's types on the given LegacyAmino codec.
func (AppModuleBasic) RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&types.MsgCreatePool{}, "stakepool/MsgCreatePool", nil)
	cdc.RegisterConcrete(&types.MsgAddWorker{}, "stakepool/MsgAddWorker", nil)
	cdc.RegisterConcrete(&types.MsgSetCap{}, "stakepool/MsgSetCap", nil)
	cdc.RegisterConcrete(&types.MsgSetPayoutPref{}, "stakepool/MsgSetPayoutPref", nil)
	cdc.RegisterConcrete(&types.MsgDeposit{}, "stakepool/MsgDeposit", nil)
	cdc.RegisterConcrete(&types.MsgWithdraw{}, "stakepool/MsgWithdraw", nil)
	cdc.RegisterConcrete(&types.MsgClaimReward{}, "stakepool/MsgClaimReward", nil)
	cdc.RegisterConcrete(&types.MsgStartMining{}, "stakepool/MsgStartMining", nil)
	cdc.RegisterConcrete(&types.MsgStopMining{}, "stakepool/MsgStopMining", nil)
}

// RegisterInterfaces registers the module's interface types.
func (AppModuleBasic) RegisterInterfaces(registry cdctypes.InterfaceRegistry) {
	registry.RegisterImplementations((*sdk.Msg)(nil),
		&types.MsgCreatePool{},
		&types.MsgAddWorker{},
		&types.MsgSetCap{},
		&types.MsgSetPayoutPref{},
		&types.MsgDeposit{},
		&types.MsgWithdraw{},
		&types.MsgClaimReward{},
		&types.MsgStartMining{},
		&types.MsgStopMining{},
	)
}

// DefaultGenesis returns default genesis state as raw bytes.
func (AppModuleBasic) DefaultGenesis(cdc codec.JSONCodec) json.RawMessage {
	return nil
}

// ValidateGenesis performs genesis state validation.
func (AppModuleBasic) ValidateGenesis(cdc codec.JSONCodec, config client.TxEncodingConfig, bz json.RawMessage) error {
	return nil
}

// RegisterGRPCGatewayRoutes registers the gRPC Gateway routes for the module.
func (AppModuleBasic) RegisterGRPCGatewayRoutes(clientCtx client.Context, mux *runtime.ServeMux) {
	// TODO: register gRPC gateway routes once proto generation is wired up.
}

// AppModule implements an application module for the stakepool module.
type AppModule struct {
	AppModuleBasic
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object.
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{
		AppModuleBasic: AppModuleBasic{},
		keeper:         k,
	}
}

// Name returns the module's name.
func (am AppModule) Name() string {
	return ModuleName
}

// RegisterServices constructs the msg and query servers; neither is
// registered with cfg.
func (am AppModule) RegisterServices(cfg module.Configurator) {
	_ = keeper.NewMsgServerImpl(am.keeper)
	_ = keeper.NewQueryServerImpl(am.keeper)
}

// IsOnePerModuleType implements the depinject.OnePerModuleType interface.
func (am AppModule) IsOnePerModuleType() {}

// IsAppModule implements the appmodule.AppModule interface.
func (am AppModule) IsAppModule() {}

// EndBlocker force-releases stake on aged withdraw requests by stopping
// their pools' miners; see keeper.EndBlocker.
func (am AppModule) EndBlocker(ctx sdk.Context) error {
	return am.keeper.EndBlocker(ctx)
}
