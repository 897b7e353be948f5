// Command stakectl is the operator CLI for the stake-accounting engine: it
// generates and stores keys, derives account addresses from them, and
// drives the delegate/deactivate/withdraw/redeem operations (plus a few
// admin helpers) against a running stakenode's HTTP surface.
package main

import (
	"flag"
	"fmt"
	"os"
)

const defaultRPCEndpoint = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate-key":
		cmdGenerateKey(os.Args[2:])
	case "delegate":
		cmdDelegate(os.Args[2:])
	case "deactivate":
		cmdDeactivate(os.Args[2:])
	case "withdraw":
		cmdWithdraw(os.Args[2:])
	case "redeem":
		cmdRedeem(os.Args[2:])
	case "position":
		cmdPosition(os.Args[2:])
	case "history":
		cmdHistory(os.Args[2:])
	case "fund":
		cmdFund(os.Args[2:])
	case "register-voter":
		cmdRegisterVoter(os.Args[2:])
	case "credit-vote":
		cmdCreditVote(os.Args[2:])
	case "advance-epoch":
		cmdAdvanceEpoch(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: stakectl <command> [flags]

Commands:
  generate-key      Generate a new keypair and save it to a keystore file
  delegate          Delegate lamports from an account to a voter
  deactivate        Begin cooldown on an account's delegation
  withdraw          Withdraw lamports out of an account
  redeem            Redeem accrued voting credits for rewards
  position          Show an account's current state
  history           Show the retained history entry for an epoch
  fund              Credit lamports to an account (admin/demo helper)
  register-voter    Register a voter account redemptions can target
  credit-vote       Close out a voter's current-epoch credits (admin/demo helper)
  advance-epoch     Close the current epoch and build its history entry

Run 'stakectl <command> -h' for flag details on a specific command.`)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs
}

func rpcFlag(fs *flag.FlagSet) *string {
	return fs.String("rpc", defaultRPCEndpoint, "stakenode HTTP endpoint")
}
