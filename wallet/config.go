package wallet

import (
	"log"
	"os"
	"path/filepath"
)

// Config configures a Wallet instance. Grounded on the teacher's
// wallet.Config (mnemonic + db path + node url), generalized to the
// renamed node terminology and a dedicated mnemonic passphrase field.
type Config struct {
	NodeURL            string
	Mnemonic           string
	MnemonicPassphrase string
	DBPath             string
}

func GetConfig() Config {
	dbPath := os.Getenv("WALLET_DB_PATH")
	if dbPath == "" {
		homedir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("error resolving home directory: %v", err)
		}
		dbPath = filepath.Join(homedir, ".paynet", "wallet")
	}

	return Config{
		NodeURL:            os.Getenv("NODE_URL"),
		Mnemonic:           os.Getenv("WALLET_MNEMONIC"),
		MnemonicPassphrase: os.Getenv("WALLET_MNEMONIC_PASSPHRASE"),
		DBPath:             dbPath,
	}
}
