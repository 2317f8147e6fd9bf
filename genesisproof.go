package main

import (
	"fmt"
	"os"

	"github.com/kaspanet/genesisproof/domain/database"
	"github.com/kaspanet/genesisproof/domain/proof"
	"github.com/kaspanet/genesisproof/infrastructure/config"
	"github.com/kaspanet/genesisproof/infrastructure/db/database/ldb"
	"github.com/kaspanet/genesisproof/infrastructure/db/database/rdb"
	"github.com/kaspanet/genesisproof/infrastructure/logger"
	"github.com/kaspanet/genesisproof/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if cfg.ShowVersion {
		fmt.Printf("genesisproof version %s\n", version.Version())
		return 0
	}

	logger.InitLog(cfg.LogFile(), cfg.ErrLogFile())
	defer logger.BackendLog.Close()
	err = logger.SetLogLevels(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log.Infof("genesisproof version %s", version.Version())
	log.Infof("Verifying a %s database at %s", cfg.NodeType, cfg.DataDir)

	options := &proof.Options{
		OpenStore: func() (database.Store, error) {
			return openStore(cfg)
		},
	}
	if cfg.CheckpointData != "" {
		options.OpenCheckpointStore = func() (database.Store, error) {
			return database.NewCheckpointStore(cfg.CheckpointData)
		}
	}

	err = proof.Run(options)
	if err != nil {
		log.Errorf("Verification failed: %s", err)
		return 1
	}
	log.Infof("All cryptographic verifications passed")
	log.Infof("The UTXO set evolved from an empty state, no premine detected")
	return 0
}

func openStore(cfg *config.Config) (database.Store, error) {
	if cfg.NodeType == config.NodeTypeRusty {
		db, err := rdb.NewRocksDB(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return database.NewStore(db, cfg.Format())
	}
	db, err := ldb.NewLevelDB(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return database.NewStore(db, cfg.Format())
}
