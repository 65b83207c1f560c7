package main

import (
	"log"
	"log/slog"
	"net"
	"os"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/joho/godotenv"
	"github.com/tyler-smith/go-bip39"
	"google.golang.org/grpc"

	"github.com/paynet-go/paynet/signer"
	"github.com/paynet-go/paynet/signer/rpc"
)

func masterKey() *hdkeychain.ExtendedKey {
	mnemonic := os.Getenv("SIGNER_MNEMONIC")
	if mnemonic == "" {
		log.Fatal("SIGNER_MNEMONIC is required")
	}
	if !bip39.IsMnemonicValid(mnemonic) {
		log.Fatal("SIGNER_MNEMONIC is not a valid BIP-39 mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, os.Getenv("SIGNER_MNEMONIC_PASSPHRASE"))

	params := &chaincfg.MainNetParams
	if os.Getenv("SIGNER_NETWORK") == "testnet" {
		params = &chaincfg.TestNet3Params
	}
	master, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		log.Fatalf("error deriving master key: %v", err)
	}
	return master
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	s := signer.New(masterKey())
	server := rpc.NewServer(s)

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(rpc.UnaryLoggingInterceptor(slog.Default())),
	)
	rpc.RegisterHealth(grpcServer)
	rpc.RegisterSignerServer(grpcServer, server)

	addr := os.Getenv("SIGNER_PORT")
	if addr == "" {
		addr = "3339"
	}
	listener, err := net.Listen("tcp", net.JoinHostPort("0.0.0.0", addr))
	if err != nil {
		log.Fatalf("error listening on port %s: %v", addr, err)
	}

	log.Printf("signer listening on :%s", addr)
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatalf("error running signer server: %v", err)
	}
}
