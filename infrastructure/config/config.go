package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/genesisproof/domain/database/binaryserialization"
	"github.com/pkg/errors"
)

const (
	defaultLogDirname  = "logs"
	defaultLogLevel    = "info"
	defaultLogFilename = "genesisproof.log"
	errLogFilename     = "genesisproof_err.log"
)

// Node types whose databases can be verified.
const (
	NodeTypeKaspad = "kaspad"
	NodeTypeRusty  = "rusty"
)

// rustyConsensusSubDir is where rusty-kaspa keeps its active consensus
// database under the datadir.
var rustyConsensusSubDir = filepath.Join("consensus", "consensus-003")

// Config defines the configuration options for the genesis proof.
type Config struct {
	NodeType       string `long:"node-type" description:"The type of node whose database is verified" choice:"kaspad" choice:"rusty"`
	DataDir        string `short:"b" long:"datadir" description:"The node's data directory"`
	CheckpointData string `long:"checkpoint-data" description:"Path to a JSON snapshot of the pre-checkpoint header chain. When omitted, the pre-checkpoint phase is skipped"`
	LogDir         string `long:"logdir" description:"Directory to log output"`
	LogLevel       string `short:"d" long:"loglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	ShowVersion    bool   `short:"V" long:"version" description:"Display version information and exit"`
}

// Parse parses the CLI arguments and returns a config struct.
func Parse() (*Config, error) {
	cfg := &Config{
		LogDir:   defaultLogDirname,
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()
	if err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if cfg.NodeType == "" {
		return nil, errors.New("--node-type is required")
	}
	if cfg.DataDir == "" {
		return nil, errors.New("--datadir is required")
	}
	cfg.DataDir = resolveDataDir(cfg.NodeType, cfg.DataDir)
	info, err := os.Stat(cfg.DataDir)
	if err != nil {
		return nil, errors.Wrapf(err, "checking the data directory %s", cfg.DataDir)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("the data directory %s is not a directory", cfg.DataDir)
	}

	return cfg, nil
}

// Format returns the record format of the configured node type's database.
func (cfg *Config) Format() binaryserialization.Format {
	if cfg.NodeType == NodeTypeRusty {
		return binaryserialization.FormatBincode
	}
	return binaryserialization.FormatProtobuf
}

// LogFile returns the path of the log file inside the configured log
// directory.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, defaultLogFilename)
}

// ErrLogFile returns the path of the error log file inside the configured
// log directory.
func (cfg *Config) ErrLogFile() string {
	return filepath.Join(cfg.LogDir, errLogFilename)
}

// resolveDataDir points a rusty-kaspa datadir at its active consensus
// database. Passing the consensus directory itself also works.
func resolveDataDir(nodeType, dataDir string) string {
	if nodeType != NodeTypeRusty {
		return dataDir
	}
	if strings.HasSuffix(filepath.Clean(dataDir), "consensus-003") {
		return dataDir
	}
	return filepath.Join(dataDir, rustyConsensusSubDir)
}
