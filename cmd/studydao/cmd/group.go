package cmd

import (
	"math/big"

	"github.com/spf13/cobra"

	"github.com/arktech/studydao/engine/api"
	"github.com/arktech/studydao/utils/units"
)

var flagDescription string

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Read and manage study groups",
}

var groupGetCmd = &cobra.Command{
	Use:   "get <group-id>",
	Short: "Show a study group",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseGroupID(args[0])

		ctx, n, done := setup(false)
		defer done()

		group, err := n.dao.StudyGroup(ctx, id)
		if err != nil {
			log.Fatal().Err(err).Msg("could not read study group")
		}

		var out api.Group
		out.Build(id, group)
		printJSON(out)
	},
}

var groupCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the number of study groups",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, n, done := setup(false)
		defer done()

		count, err := n.dao.GroupCount(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not read group count")
		}
		printJSON(map[string]string{"count": count.String()})
	},
}

var groupCreateCmd = &cobra.Command{
	Use:   "create <name> <min-stake-eth>",
	Short: "Create a study group with a minimum stake in ether",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		minStake, err := units.ParseEther(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid minimum stake")
		}

		ctx, n, done := setup(true)
		defer done()

		receipt, err := n.dao.CreateStudyGroup(ctx, args[0], flagDescription, minStake)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create study group")
		}
		logReceipt("createStudyGroup", receipt)
	},
}

var groupJoinCmd = &cobra.Command{
	Use:   "join <group-id> <stake-eth>",
	Short: "Join a study group, staking the given amount of ether",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		id := parseGroupID(args[0])
		stake, err := units.ParseEther(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("invalid stake")
		}

		ctx, n, done := setup(true)
		defer done()

		receipt, err := n.dao.JoinGroup(ctx, id, stake)
		if err != nil {
			log.Fatal().Err(err).Msg("could not join study group")
		}
		logReceipt("joinGroup", receipt)
	},
}

func parseGroupID(s string) *big.Int {
	id, ok := new(big.Int).SetString(s, 10)
	if !ok || id.Sign() < 0 {
		log.Fatal().Str("group_id", s).Msg("group id must be a non-negative integer")
	}
	return id
}

func init() {
	rootCmd.AddCommand(groupCmd)
	groupCmd.AddCommand(groupGetCmd)
	groupCmd.AddCommand(groupCountCmd)
	groupCmd.AddCommand(groupCreateCmd)
	groupCmd.AddCommand(groupJoinCmd)

	groupCreateCmd.Flags().StringVar(&flagDescription, "description", "", "description of the group")
}
