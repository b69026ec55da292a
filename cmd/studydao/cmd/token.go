package cmd

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/arktech/studydao/model/verification"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Read and transfer the configured ERC-20 token",
}

var tokenBalanceCmd = &cobra.Command{
	Use:   "balance [account]",
	Short: "Show the token balance of an account, the configured account by default",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var account common.Address
		if len(args) == 1 {
			var err error
			account, err = verification.ParseAddress(args[0])
			if err != nil {
				log.Fatal().Err(err).Msg("invalid account address")
			}
		}

		ctx, n, done := setup(len(args) == 0)
		defer done()
		if len(args) == 0 {
			account = n.sender()
		}

		tkn, err := n.token()
		if err != nil {
			log.Fatal().Err(err).Msg("could not bind token")
		}
		balance, err := tkn.FormattedBalance(ctx, account)
		if err != nil {
			log.Fatal().Err(err).Msg("could not read balance")
		}
		printJSON(map[string]string{"account": account.Hex(), "balance": balance})
	},
}

var tokenTransferCmd = &cobra.Command{
	Use:   "transfer <to> <amount>",
	Short: "Transfer tokens from the configured account, amount in whole token units",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, n, done := setup(true)
		defer done()

		tkn, err := n.token()
		if err != nil {
			log.Fatal().Err(err).Msg("could not bind token")
		}
		receipt, err := tkn.Transfer(ctx, args[0], args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("could not transfer tokens")
		}
		logReceipt("transfer", receipt)
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenBalanceCmd)
	tokenCmd.AddCommand(tokenTransferCmd)
}
