package cmd

import (
	"math/big"

	"github.com/spf13/cobra"

	"github.com/arktech/studydao/engine/api"
	"github.com/arktech/studydao/model/verification"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions <member>",
	Short: "List the study sessions logged by a member, oldest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		member, err := verification.ParseAddress(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid member address")
		}

		ctx, n, done := setup(false)
		defer done()

		sessions, err := n.dao.MemberStudySessions(ctx, member)
		if err != nil {
			log.Fatal().Err(err).Msg("could not read sessions")
		}

		out := make([]api.Session, len(sessions))
		for i, session := range sessions {
			out[i].Build(i, session)
		}
		printJSON(out)
	},
}

var memberCmd = &cobra.Command{
	Use:   "member <member>",
	Short: "Show the DAO record of a member",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		member, err := verification.ParseAddress(args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid member address")
		}

		ctx, n, done := setup(false)
		defer done()

		record, err := n.dao.Member(ctx, member)
		if err != nil {
			log.Fatal().Err(err).Msg("could not read member")
		}

		var out api.Member
		out.Build(member.Hex(), record)
		printJSON(out)
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the study sessions of the configured account",
}

var sessionLogCmd = &cobra.Command{
	Use:   "log <duration-minutes> <topic>",
	Short: "Log a study session for the configured account",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		duration, ok := new(big.Int).SetString(args[0], 10)
		if !ok {
			log.Fatal().Str("duration", args[0]).Msg("duration must be a whole number of minutes")
		}

		ctx, n, done := setup(true)
		defer done()

		receipt, err := n.dao.LogStudySession(ctx, duration, args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("could not log study session")
		}
		logReceipt("logStudySession", receipt)
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLogCmd)
}
