package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

func cmdDelegate(args []string) {
	fs := newFlagSet("delegate")
	rpc := rpcFlag(fs)
	keystore := fs.String("key", "stakectl.keystore", "keystore file identifying the delegating account")
	voter := fs.String("voter", "", "voter address (vote1... or hex pubkey) to delegate to")
	amount := fs.Uint64("amount", 0, "lamports to delegate")
	fs.Parse(args)

	account, err := loadAccountKey(*keystore)
	if err != nil {
		fatalf("load key: %v", err)
	}
	voterKey, err := parseVoteAddress(*voter)
	if err != nil {
		fatalf("voter: %v", err)
	}

	var resp json.RawMessage
	body := map[string]any{"voterPubkey": hexKey(voterKey[:]), "amount": *amount}
	if err := postJSON(*rpc, "/accounts/0x"+hexKey(account[:])+"/delegate", body, &resp); err != nil {
		fatalf("delegate: %v", err)
	}
	fmt.Println(string(resp))
}

func cmdDeactivate(args []string) {
	fs := newFlagSet("deactivate")
	rpc := rpcFlag(fs)
	keystore := fs.String("key", "stakectl.keystore", "keystore file identifying the account")
	fs.Parse(args)

	account, err := loadAccountKey(*keystore)
	if err != nil {
		fatalf("load key: %v", err)
	}

	var resp json.RawMessage
	if err := postJSON(*rpc, "/accounts/0x"+hexKey(account[:])+"/deactivate", struct{}{}, &resp); err != nil {
		fatalf("deactivate: %v", err)
	}
	fmt.Println(string(resp))
}

func cmdWithdraw(args []string) {
	fs := newFlagSet("withdraw")
	rpc := rpcFlag(fs)
	keystore := fs.String("key", "stakectl.keystore", "keystore file identifying the account")
	to := fs.String("to", "", "destination address (stake1... or hex account key)")
	lamports := fs.Uint64("lamports", 0, "lamports to withdraw")
	fs.Parse(args)

	account, err := loadAccountKey(*keystore)
	if err != nil {
		fatalf("load key: %v", err)
	}
	toKey, err := parseStakeAddress(*to)
	if err != nil {
		fatalf("to: %v", err)
	}

	var resp json.RawMessage
	body := map[string]any{"to": hexKey(toKey[:]), "lamports": *lamports}
	if err := postJSON(*rpc, "/accounts/0x"+hexKey(account[:])+"/withdraw", body, &resp); err != nil {
		fatalf("withdraw: %v", err)
	}
	fmt.Println(string(resp))
}

func cmdRedeem(args []string) {
	fs := newFlagSet("redeem")
	rpc := rpcFlag(fs)
	keystore := fs.String("key", "stakectl.keystore", "keystore file identifying the account")
	rewardsPool := fs.String("rewards-pool", "", "rewards pool address (stake1... or hex account key)")
	pointValue := fs.Float64("point-value", 0, "lamports paid per (stake * credit)")
	fs.Parse(args)

	account, err := loadAccountKey(*keystore)
	if err != nil {
		fatalf("load key: %v", err)
	}
	poolKey, err := parseStakeAddress(*rewardsPool)
	if err != nil {
		fatalf("rewards-pool: %v", err)
	}

	var resp json.RawMessage
	body := map[string]any{"rewardsPool": hexKey(poolKey[:]), "pointValue": *pointValue}
	if err := postJSON(*rpc, "/accounts/0x"+hexKey(account[:])+"/redeem", body, &resp); err != nil {
		fatalf("redeem: %v", err)
	}
	fmt.Println(string(resp))
}

func hexKey(k []byte) string {
	return hex.EncodeToString(k)
}
