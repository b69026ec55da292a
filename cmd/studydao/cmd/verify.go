package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arktech/studydao/engine/api"
	"github.com/arktech/studydao/model/verification"
)

var flagForce bool

var verifyCmd = &cobra.Command{
	Use:   "verify <member> <session-index>",
	Short: "Verify a logged study session through the kernel and record it on-chain",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := verification.ParseSessionIndex(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid session index")
		}
		req, err := verification.NewVerificationRequest(args[0], index)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid verification request")
		}

		ctx, n, done := setup(true)
		defer done()

		verifier, kernelRPC, err := n.verifier(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create verifier")
		}
		defer kernelRPC.Close()

		outcome, err := verifier.Verify(ctx, req, flagForce)
		if err != nil {
			log.Fatal().Err(err).Str("request", req.String()).Msg("verification failed")
		}

		var out api.Outcome
		out.Build(outcome)
		printJSON(out)
	},
}

var eligibilityCmd = &cobra.Command{
	Use:   "eligibility <member>",
	Short: "Check whether the most recent session of a member can be verified",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		member, err := verification.ParseAddress(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid member address")
		}

		ctx, n, done := setup(false)
		defer done()

		result, err := n.gate().Check(ctx, member)
		if err != nil {
			log.Fatal().Err(err).Msg("could not check eligibility")
		}

		var out api.Eligibility
		out.Build(result)
		printJSON(out)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(eligibilityCmd)

	verifyCmd.Flags().BoolVar(&flagForce, "force", false,
		"submit to the kernel even if the eligibility check fails, the contract still enforces its rules")
}
