package main

import (
	"context"
	"log"
	"os"

	"github.com/rawblock/sce/internal/api"
	"github.com/rawblock/sce/internal/bitcoin"
	"github.com/rawblock/sce/internal/chainparams"
	"github.com/rawblock/sce/internal/engine"
)

func main() {
	log.Println("Starting Social Consensus Engine...")

	// ─── Required Environment Variables ─────────────────────────────────
	// All storage paths MUST come from environment variables. No fallback
	// defaults for state that would otherwise silently straddle networks.
	// ────────────────────────────────────────────────────────────────────

	network := getEnvOrDefault("SCE_NETWORK", "main")
	mainDB := requireEnv("SCE_MAIN_DB_PATH")
	webDB := requireEnv("SCE_WEB_DB_PATH")
	checkpointDB := requireEnv("SCE_CHECKPOINTS_DB_PATH")

	eng, err := engine.Open(engine.Config{
		MainDBPath:       mainDB,
		WebDBPath:        webDB,
		CheckpointDBPath: checkpointDB,
		Network:          chainparams.Network(network),
	})
	if err != nil {
		log.Fatalf("FATAL: failed to open engine: %v", err)
	}
	defer eng.Close()

	go eng.Notify.Run()

	btcHost := getEnvOrDefault("BTC_RPC_HOST", "localhost:8332")
	btcUser := os.Getenv("BTC_RPC_USER")
	btcPass := os.Getenv("BTC_RPC_PASS")

	var btcClient *bitcoin.Client
	if btcUser != "" && btcPass != "" {
		btcClient, err = bitcoin.NewClient(bitcoin.Config{Host: btcHost, User: btcUser, Pass: btcPass})
		if err != nil {
			log.Printf("Warning: failed to connect to node RPC: %v", err)
		} else {
			defer btcClient.Shutdown()
		}
	} else {
		log.Println("BTC_RPC_USER/BTC_RPC_PASS unset — running without a live node connection (reindex/debug mode)")
	}

	if btcClient != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go eng.RunMempoolAdmitter(ctx, btcClient)
	}

	r := api.SetupRouter(eng)

	port := getEnvOrDefault("PORT", "5339")
	log.Printf("Engine running on :%s (network=%s)\n", port, network)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// requireEnv reads a required environment variable and exits if it is not set.
func requireEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("FATAL: Required environment variable %s is not set. "+
			"Set it in the environment before starting the engine.", key)
	}
	return val
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
