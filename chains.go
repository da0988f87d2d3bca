package chainconf

// Explorer key slots
const (
	EnvEtherscanKey      = "ETHERSCAN_KEY"
	EnvBerascanKey       = "BERASCAN_KEY"
	EnvBeraExplorerKey   = "BERA_EXPLORER_KEY"
	EnvStoryscanKey      = "STORYSCAN_KEY"
	EnvTacSpbExplorerKey = "TAC_SPB_EXPLORER_KEY"
)

// DefaultChains returns the built-in remote chain catalog in registry order.
func DefaultChains() []ChainDescriptor {
	return []ChainDescriptor{
		{
			Name:     "mainnet",
			ChainID:  1,
			Endpoint: "https://mainnet.infura.io/v3/" + ProviderKeyPlaceholder,
			Explorer: &Explorer{
				APIURL:     "https://api.etherscan.io/api",
				BrowserURL: "https://etherscan.io",
				KeySlot:    EnvEtherscanKey,
			},
		},
		{
			Name:     "sepolia",
			ChainID:  11155111,
			Endpoint: "https://sepolia.infura.io/v3/" + ProviderKeyPlaceholder,
			Explorer: &Explorer{
				APIURL:     "https://api-sepolia.etherscan.io/api",
				BrowserURL: "https://sepolia.etherscan.io",
				KeySlot:    EnvEtherscanKey,
			},
		},
		{
			Name:     "bera",
			ChainID:  80094,
			Endpoint: "https://rpc.berachain.com",
			Explorer: &Explorer{
				APIURL:     "https://api.berascan.com/api",
				BrowserURL: "https://berascan.com",
				KeySlot:    EnvBerascanKey,
				Custom:     true,
			},
		},
		{
			Name:     "bera-bartio",
			ChainID:  80084,
			Endpoint: "https://bartio.rpc.berachain.com",
			Explorer: &Explorer{
				APIURL:     "https://api.routescan.io/v2/network/testnet/evm/80084/etherscan/api",
				BrowserURL: "https://bartio.beratrail.io",
				KeySlot:    EnvBeraExplorerKey,
				Custom:     true,
			},
		},
		{
			Name:     "story",
			ChainID:  1514,
			Endpoint: "https://mainnet.storyrpc.io",
			Explorer: &Explorer{
				APIURL:     "https://www.storyscan.io/api",
				BrowserURL: "https://storyscan.io",
				KeySlot:    EnvStoryscanKey,
				Custom:     true,
			},
		},
		{
			// Verification goes through sourcify on this chain, not an explorer.
			Name:     "monad-testnet",
			ChainID:  10143,
			Endpoint: "https://testnet-rpc.monad.xyz",
		},
		{
			Name:     "tac-spb",
			ChainID:  2391,
			Endpoint: "https://spb.rpc.tac.build",
			Explorer: &Explorer{
				APIURL:     "https://spb.explorer.tac.build/api",
				BrowserURL: "https://spb.explorer.tac.build",
				KeySlot:    EnvTacSpbExplorerKey,
				Custom:     true,
			},
		},
	}
}

// DefaultRegistry returns a registry holding DefaultChains.
func DefaultRegistry() *Registry {
	return MustRegistry(DefaultChains()...)
}
