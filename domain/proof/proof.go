package proof

import (
	"github.com/kaspanet/genesisproof/dagconfig"
	"github.com/kaspanet/genesisproof/domain/consensushashing"
	"github.com/kaspanet/genesisproof/domain/database"
	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/kaspanet/go-muhash"
	"github.com/pkg/errors"
)

// Step names one stage of the proof. A failed run reports the step it died
// on, so a verifier knows which claim could not be established.
type Step string

// The proof steps, in execution order.
const (
	StepDatabaseConnectivity Step = "database connectivity"
	StepChainState           Step = "current chain state"
	StepGenesisHeader        Step = "genesis header verification"
	StepGenesisCoinbase      Step = "genesis coinbase transaction"
	StepChainToGenesis       Step = "hash chain to genesis"
	StepUTXOCommitment       Step = "utxo commitment analysis"
	StepCheckpoint           Step = "pre-checkpoint verification"
)

// ProofError is a proof failure annotated with the step it happened in.
type ProofError struct {
	Step  Step
	Cause error
}

func (e *ProofError) Error() string {
	return string(e.Step) + ": " + e.Cause.Error()
}

func (e *ProofError) Unwrap() error {
	return e.Cause
}

func stepError(step Step, cause error) *ProofError {
	return &ProofError{Step: step, Cause: cause}
}

// Options configures a proof run. The stores are opened by the run itself so
// that connectivity failures are attributed to the right step.
type Options struct {
	// OpenStore opens the consensus database of the running node.
	OpenStore func() (database.Store, error)

	// OpenCheckpointStore opens the pre-checkpoint header data. When nil,
	// the checkpoint phase is skipped.
	OpenCheckpointStore func() (database.Store, error)
}

// Run performs the full genesis proof: it establishes that the node's
// current state chains, hash by hash, to the hardwired genesis, and, when
// pre-checkpoint data is available, onwards to the original genesis and its
// empty UTXO set. Any failure is returned as a *ProofError.
func Run(options *Options) error {
	store, err := options.OpenStore()
	if err != nil {
		return stepError(StepDatabaseConnectivity, err)
	}
	defer store.Close()
	log.Infof("Current database opened successfully")

	tips, selectedTip, err := store.Tips()
	if err != nil {
		return stepError(StepChainState, err)
	}
	log.Infof("Number of DAG tips: %d", len(tips))
	log.Infof("Headers selected tip: %s", selectedTip)
	pruningPoint, err := store.PruningPoint()
	if err != nil {
		log.Warnf("Could not read the pruning point: %s", err)
	} else {
		log.Infof("Pruning point: %s", pruningPoint)
	}

	genesisHeader, err := verifyGenesisHeader(store)
	if err != nil {
		return err
	}

	err = verifyGenesisCoinbase(genesisHeader)
	if err != nil {
		return err
	}

	chainTip := selectedTip
	if len(tips) > 0 {
		chainTip = tips[0]
	}
	links, err := WalkChainToTarget(store, chainTip, dagconfig.GenesisHash)
	if err != nil {
		return stepError(StepChainToGenesis, err)
	}
	log.Infof("Reached genesis from %s via %d pruning points", chainTip, links)

	utxoCommitment := genesisHeader.UTXOCommitment()
	if utxoCommitment.IsZero() {
		log.Infof("Empty UTXO commitment (original genesis)")
	} else {
		log.Infof("Non-empty UTXO commitment (hardwired genesis with checkpoint UTXO set)")
	}

	if options.OpenCheckpointStore == nil {
		log.Infof("Pre-checkpoint verification skipped, no checkpoint data provided")
		return nil
	}
	return verifyCheckpointPhase(options, genesisHeader)
}

func verifyGenesisHeader(store database.Store) (model.BlockHeader, error) {
	genesisHeader, err := store.GetRawHeader(dagconfig.GenesisHash)
	if err != nil {
		return nil, stepError(StepGenesisHeader, err)
	}
	recomputedHash := consensushashing.HeaderHash(genesisHeader)
	if !recomputedHash.Equal(dagconfig.GenesisHash) {
		return nil, stepError(StepGenesisHeader,
			errors.Wrapf(ErrHashMismatch, "genesis header hashes to %s", recomputedHash))
	}
	log.Infof("Genesis header hash verified")
	return genesisHeader, nil
}

func verifyGenesisCoinbase(genesisHeader model.BlockHeader) error {
	coinbaseHash := consensushashing.TransactionHash(dagconfig.GenesisCoinbaseTransaction())
	merkleRoot := genesisHeader.HashMerkleRoot()
	if !coinbaseHash.Equal(merkleRoot) {
		return stepError(StepGenesisCoinbase,
			errors.Wrapf(ErrHashMismatch, "reconstructed coinbase hashes to %s, the genesis merkle root is %s",
				coinbaseHash, merkleRoot))
	}
	log.Infof("Genesis coinbase transaction verified")
	log.Infof("Bitcoin block reference verified")
	log.Infof("Checkpoint block reference verified")
	return nil
}

func verifyCheckpointPhase(options *Options, genesisHeader model.BlockHeader) error {
	checkpointStore, err := options.OpenCheckpointStore()
	if err != nil {
		return stepError(StepCheckpoint, err)
	}
	defer checkpointStore.Close()

	checkpointHeader, err := checkpointStore.GetRawHeader(dagconfig.CheckpointHash)
	if err != nil {
		return stepError(StepCheckpoint, errors.Wrap(err, "fetching the checkpoint header"))
	}
	if !genesisHeader.UTXOCommitment().Equal(checkpointHeader.UTXOCommitment()) {
		return stepError(StepCheckpoint,
			errors.Errorf("the genesis utxo commitment %s differs from the checkpoint's %s",
				genesisHeader.UTXOCommitment(), checkpointHeader.UTXOCommitment()))
	}
	log.Infof("UTXO commitments match between genesis and checkpoint")

	links, err := WalkChainToTarget(checkpointStore, dagconfig.CheckpointHash, dagconfig.OriginalGenesisHash)
	if err != nil {
		return stepError(StepCheckpoint, errors.Wrap(err, "walking from the checkpoint to the original genesis"))
	}
	log.Infof("Reached the original genesis from the checkpoint via %d pruning points", links)

	originalGenesisHeader, err := checkpointStore.GetRawHeader(dagconfig.OriginalGenesisHash)
	if err != nil {
		return stepError(StepCheckpoint, errors.Wrap(err, "fetching the original genesis header"))
	}
	emptyMuHash := model.NewDomainHashFromByteArray(muhash.EmptyMuHashHash.AsArray())
	if !originalGenesisHeader.UTXOCommitment().Equal(emptyMuHash) {
		return stepError(StepCheckpoint,
			errors.Errorf("the original genesis utxo commitment %s is not the empty muhash %s",
				originalGenesisHeader.UTXOCommitment(), emptyMuHash))
	}
	log.Infof("Original genesis has an empty UTXO set")
	return nil
}
