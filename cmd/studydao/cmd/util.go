package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/arktech/studydao/module/metrics"
)

// setup loads the configuration and connects to the chain. The returned
// context is cancelled on interrupt or when the command timeout expires.
func setup(requireSigner bool) (context.Context, *node, func()) {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, flagTimeout)

	n, err := buildNode(ctx, log, cfg, metrics.NewNoopCollector(), requireSigner)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect")
	}

	return ctx, n, func() {
		n.Close()
		cancel()
		stop()
	}
}

func printJSON(v interface{}) {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("could not encode output")
	}
	fmt.Println(string(bz))
}

func logReceipt(method string, receipt *types.Receipt) {
	log.Info().
		Str("method", method).
		Str("tx_hash", receipt.TxHash.Hex()).
		Uint64("block", receipt.BlockNumber.Uint64()).
		Uint64("gas_used", receipt.GasUsed).
		Msg("transaction confirmed")
}
