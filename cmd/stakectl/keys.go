package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"stakeengine/cmd/internal/passphrase"
	"stakeengine/crypto"
)

const keystorePassphraseEnv = "STAKECTL_PASSPHRASE"

// cmdGenerateKey creates a new keypair and writes it to a keystore file.
func cmdGenerateKey(args []string) {
	fs := newFlagSet("generate-key")
	out := fs.String("out", "stakectl.keystore", "keystore file to write")
	fs.Parse(args)

	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		fatalf("generate key: %v", err)
	}

	source := passphrase.NewSource(keystorePassphraseEnv)
	pass, err := source.Get()
	if err != nil {
		fatalf("passphrase: %v", err)
	}

	if err := crypto.SaveToKeystore(*out, key, pass); err != nil {
		fatalf("save keystore: %v", err)
	}

	addr := key.PubKey().Address()
	fmt.Printf("Generated new key, saved to %s\n", *out)
	fmt.Printf("Account address: %s\n", addr.String())
	fmt.Printf("Account key (hex): 0x%s\n", hex.EncodeToString(addr.Bytes()))
}

// loadAccountKey decrypts the keystore at path and returns the 20-byte
// account key stakectl derives from it.
func loadAccountKey(path string) ([20]byte, error) {
	var key [20]byte
	source := passphrase.NewSource(keystorePassphraseEnv)
	pass, err := source.Get()
	if err != nil {
		return key, err
	}
	priv, err := crypto.LoadFromKeystore(path, pass)
	if err != nil {
		return key, err
	}
	copy(key[:], priv.PubKey().Address().Bytes())
	return key, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
