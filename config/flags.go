package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFile = "config"

	kernelEndpoint    = "kernel-endpoint"
	kernelEntryID     = "kernel-entry-id"
	kernelAccessToken = "kernel-access-token"
	kernelID          = "kernel-id"
	kernelTimeout     = "kernel-timeout"
	kernelRetries     = "kernel-retries"

	contractAddress = "contract-address"
	chainRPC        = "chain-rpc"
	chainPrivateKey = "private-key"
	chainID         = "chain-id"
	tokenAddress    = "token-address"

	apiListen   = "listen"
	metricsPort = "metrics-port"
	logLevel    = "loglevel"
	logJSON     = "log-json"
)

// flagKeys maps every flag to the configuration key it overrides.
var flagKeys = map[string]string{
	kernelEndpoint:    "kernel.endpoint",
	kernelEntryID:     "kernel.entry_id",
	kernelAccessToken: "kernel.access_token",
	kernelID:          "kernel.id",
	kernelTimeout:     "kernel.timeout",
	kernelRetries:     "kernel.retry.max",
	contractAddress:   "contract.address",
	chainRPC:          "chain.rpc",
	chainPrivateKey:   "chain.private_key",
	chainID:           "chain.chain_id",
	tokenAddress:      "token.address",
	apiListen:         "api.listen",
	metricsPort:       "metrics.port",
	logLevel:          "log.level",
	logJSON:           "log.json",
}

// InitializeFlags defines the command line flags for the configuration. Flag
// defaults are only informational, the values in SetDefaults apply when a
// flag is not set.
func InitializeFlags(flags *pflag.FlagSet) {
	flags.String(configFile, "", "path to a YAML config file")

	flags.String(kernelEndpoint, "", "kernel JSON-RPC endpoint")
	flags.String(kernelEntryID, "", "kernel registry entry id")
	flags.String(kernelAccessToken, "", "kernel access token")
	flags.Uint64(kernelID, 0, "numeric id of the verification kernel")
	flags.Duration(kernelTimeout, 0, "timeout of a single kernel call")
	flags.Uint64(kernelRetries, 0, "number of retries of a failed kernel call")

	flags.String(contractAddress, "", "StudyDAO contract address")
	flags.String(chainRPC, "", "chain JSON-RPC endpoint, defaults to the kernel endpoint")
	flags.String(chainPrivateKey, "", "hex encoded private key used to sign transactions")
	flags.Uint64(chainID, 0, "chain id, read from the node when 0")
	flags.String(tokenAddress, "", "ERC-20 token contract address")

	flags.String(apiListen, "", "REST API listen address")
	flags.Uint(metricsPort, 0, "port of the prometheus metrics server, 0 disables it")
	flags.String(logLevel, "", "log level (trace, debug, info, warn, error)")
	flags.Bool(logJSON, false, "log in JSON instead of the console format")
}

// BindFlags makes flags set on the command line take precedence over the
// config file and the environment.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flag := flags.Lookup(configFile); flag != nil {
		if err := v.BindPFlag(configFile, flag); err != nil {
			return fmt.Errorf("could not bind flag %s: %w", configFile, err)
		}
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("could not bind flag %s: %w", name, err)
		}
	}
	return nil
}
