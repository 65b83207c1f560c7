package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/paynet-go/paynet/mint"
	lnd "github.com/paynet-go/paynet/mint/lightning"
	"github.com/paynet-go/paynet/mint/rpc"
	"github.com/paynet-go/paynet/mint/storage/sqlite"
	"github.com/paynet-go/paynet/nodepb"
	"github.com/paynet-go/paynet/settlement"
	"github.com/paynet-go/paynet/settlement/lightning"
	"github.com/paynet-go/paynet/settlement/memory"
)

func settlementAdapter() settlement.Adapter {
	if os.Getenv(lnd.LND_HOST) != "" {
		client, err := lnd.CreateLndClient()
		if err != nil {
			log.Fatalf("error connecting to lnd: %v", err)
		}
		return lightning.New(client)
	}
	return memory.New()
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	config := mint.GetConfig()

	db, err := sqlite.InitSQLite(config.DBPath)
	if err != nil {
		log.Fatalf("error opening node database: %v", err)
	}
	defer db.Close()

	signerConn, err := rpc.CreateGrpcClient(config.SignerAddress, os.Getenv("SIGNER_TLS") == "")
	if err != nil {
		log.Fatalf("error dialing signer at %s: %v", config.SignerAddress, err)
	}
	signerClient := mint.NewGRPCSignerClient(signerConn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m, err := mint.New(ctx, config, db, signerClient, settlementAdapter())
	if err != nil {
		log.Fatalf("error starting node: %v", err)
	}

	adapter := rpc.NewAdapter(m)
	server := rpc.NewServer()
	server.RegisterService(server.GRPC, &nodepb.Node_ServiceDesc, adapter)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		cancel()
		server.GRPC.GracefulStop()
	}()

	log.Printf("node listening on :3339, signer at %s", config.SignerAddress)
	if err := server.Serve(); err != nil {
		log.Fatalf("error running node server: %v", err)
	}
}
