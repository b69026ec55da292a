package studydao

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract methods used by the client.
const (
	MethodVerifyStudySession     = "verifyStudySessionWithKRNL"
	MethodCanVerifyRecentSession = "canVerifyRecentSession"
	MethodMemberStudySessions    = "getMemberStudySessions"
	MethodMembers                = "members"
	MethodGetStudyGroup          = "getStudyGroup"
	MethodGroupCount             = "groupCount"
	MethodCreateStudyGroup       = "createStudyGroup"
	MethodJoinGroup              = "joinGroup"
	MethodLogStudySession        = "logStudySession"
)

// StudyDAOABI is the subset of the StudyDAO contract interface the client binds to.
const StudyDAOABI = `[
	{"type":"function","name":"verifyStudySessionWithKRNL","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"krnlPayload","type":"tuple","components":[
			{"name":"auth","type":"bytes"},
			{"name":"kernelResponses","type":"bytes"},
			{"name":"kernelParams","type":"bytes"}]},
		{"name":"member","type":"address"},
		{"name":"sessionIndex","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"canVerifyRecentSession","stateMutability":"view",
	 "inputs":[{"name":"member","type":"address"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"getMemberStudySessions","stateMutability":"view",
	 "inputs":[{"name":"member","type":"address"}],
	 "outputs":[{"name":"","type":"tuple[]","components":[
		{"name":"duration","type":"uint256"},
		{"name":"studyTopic","type":"string"},
		{"name":"timestamp","type":"uint256"},
		{"name":"verified","type":"bool"}]}]},
	{"type":"function","name":"members","stateMutability":"view",
	 "inputs":[{"name":"","type":"address"}],
	 "outputs":[
		{"name":"totalStudyTime","type":"uint256"},
		{"name":"verifiedSessions","type":"uint256"},
		{"name":"reputationScore","type":"uint256"},
		{"name":"lastVerification","type":"uint256"},
		{"name":"isActive","type":"bool"}]},
	{"type":"function","name":"getStudyGroup","stateMutability":"view",
	 "inputs":[{"name":"groupId","type":"uint256"}],
	 "outputs":[
		{"name":"name","type":"string"},
		{"name":"description","type":"string"},
		{"name":"creator","type":"address"},
		{"name":"minStakeAmount","type":"uint256"},
		{"name":"totalStaked","type":"uint256"},
		{"name":"memberCount","type":"uint256"},
		{"name":"isActive","type":"bool"}]},
	{"type":"function","name":"groupCount","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"createStudyGroup","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"name","type":"string"},
		{"name":"description","type":"string"},
		{"name":"minStakeAmount","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"joinGroup","stateMutability":"payable",
	 "inputs":[{"name":"groupId","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"logStudySession","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"duration","type":"uint256"},
		{"name":"studyTopic","type":"string"}],
	 "outputs":[]}
]`

var parsedABI = mustParseABI(StudyDAOABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("invalid StudyDAO ABI: %v", err))
	}
	return parsed
}
