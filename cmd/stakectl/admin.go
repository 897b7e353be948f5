package main

import (
	"encoding/json"
	"fmt"
)

func cmdPosition(args []string) {
	fs := newFlagSet("position")
	rpc := rpcFlag(fs)
	account := fs.String("account", "", "account address (stake1... or hex key) to query")
	fs.Parse(args)

	key, err := parseStakeAddress(*account)
	if err != nil {
		fatalf("account: %v", err)
	}

	var resp json.RawMessage
	if err := getJSON(*rpc, "/accounts/0x"+hexKey(key[:]), &resp); err != nil {
		fatalf("position: %v", err)
	}
	fmt.Printf("%s:\n%s\n", formatStakeAddress(key), string(resp))
}

func cmdHistory(args []string) {
	fs := newFlagSet("history")
	rpc := rpcFlag(fs)
	epoch := fs.Uint64("epoch", 0, "epoch to query")
	fs.Parse(args)

	var resp json.RawMessage
	if err := getJSON(*rpc, fmt.Sprintf("/epoch/%d", *epoch), &resp); err != nil {
		fatalf("history: %v", err)
	}
	fmt.Println(string(resp))
}

// cmdFund credits lamports to an account. There is no token-transfer
// instruction this engine sources balances from, so seeding delegation
// principal goes through this admin/demo path. Funding does not change the
// account's state, so it does not make the account a rewards pool.
func cmdFund(args []string) {
	fs := newFlagSet("fund")
	rpc := rpcFlag(fs)
	account := fs.String("account", "", "account address (stake1... or hex key) to credit")
	lamports := fs.Uint64("lamports", 0, "lamports to credit")
	fs.Parse(args)

	key, err := parseStakeAddress(*account)
	if err != nil {
		fatalf("account: %v", err)
	}

	var resp json.RawMessage
	body := map[string]any{"lamports": *lamports}
	if err := postJSON(*rpc, "/accounts/0x"+hexKey(key[:])+"/fund", body, &resp); err != nil {
		fatalf("fund: %v", err)
	}
	fmt.Println(string(resp))
}

func cmdRegisterVoter(args []string) {
	fs := newFlagSet("register-voter")
	rpc := rpcFlag(fs)
	voter := fs.String("voter", "", "voter address (vote1... or hex pubkey) to register")
	account := fs.String("account", "", "account address (stake1... or hex key) the voter's lamports live in")
	fs.Parse(args)

	voterKey, err := parseVoteAddress(*voter)
	if err != nil {
		fatalf("voter: %v", err)
	}
	accountKey, err := parseStakeAddress(*account)
	if err != nil {
		fatalf("account: %v", err)
	}

	var resp json.RawMessage
	body := map[string]any{"voterPubkey": hexKey(voterKey[:]), "key": hexKey(accountKey[:])}
	if err := postJSON(*rpc, "/voters", body, &resp); err != nil {
		fatalf("register-voter: %v", err)
	}
	fmt.Printf("registered %s\n%s\n", formatVoteAddress(voterKey), string(resp))
}

// cmdCreditVote closes out a voter's current-epoch credits. A real
// deployment learns this from the vote program; this admin/demo path lets
// an operator drive the reward engine in isolation.
func cmdCreditVote(args []string) {
	fs := newFlagSet("credit-vote")
	rpc := rpcFlag(fs)
	voter := fs.String("voter", "", "voter address (vote1... or hex pubkey)")
	credits := fs.Uint64("credits", 0, "credits earned this epoch")
	commission := fs.Uint("commission", 0, "commission out of 255")
	fs.Parse(args)

	voterKey, err := parseVoteAddress(*voter)
	if err != nil {
		fatalf("voter: %v", err)
	}

	var resp json.RawMessage
	body := map[string]any{"credits": *credits, "commission": *commission}
	if err := postJSON(*rpc, "/voters/"+hexKey(voterKey[:])+"/credit", body, &resp); err != nil {
		fatalf("credit-vote: %v", err)
	}
	fmt.Println(string(resp))
}

func cmdAdvanceEpoch(args []string) {
	fs := newFlagSet("advance-epoch")
	rpc := rpcFlag(fs)
	fs.Parse(args)

	var resp json.RawMessage
	if err := postJSON(*rpc, "/epoch/advance", struct{}{}, &resp); err != nil {
		fatalf("advance-epoch: %v", err)
	}
	fmt.Println(string(resp))
}
