package proof

import (
	"github.com/kaspanet/genesisproof/domain/consensushashing"
	"github.com/kaspanet/genesisproof/domain/database"
	"github.com/kaspanet/genesisproof/domain/model"
	"github.com/kaspanet/genesisproof/infrastructure/logger"
	"github.com/pkg/errors"
)

// ErrHashMismatch denotes a header whose recomputed hash differs from the
// hash it is stored under. Either the database is corrupt or the chain is
// forged; in both cases the proof fails.
var ErrHashMismatch = errors.New("recomputed header hash differs from the stored hash")

// ErrCycleDetected denotes a pruning point chain that revisits a hash. An
// honestly hashed chain cannot contain one, so hitting this means the store
// is feeding us fabricated records.
var ErrCycleDetected = errors.New("pruning point chain revisits a block")

// WalkChainToTarget follows pruning point links from fromHash until it
// reaches targetHash, recomputing and checking every header hash on the way.
// It returns the number of links followed.
//
// Every step is verified before it is trusted: a header is fetched, its hash
// is recomputed from its content and compared against the hash it was
// reached by, and only then is its pruning point followed. The target check
// comes first, so walking from the target itself is zero links.
func WalkChainToTarget(store database.Store, fromHash, targetHash *model.DomainHash) (int, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "WalkChainToTarget")
	defer onEnd()

	visited := make(map[model.DomainHash]struct{})
	current := fromHash
	for steps := 0; ; steps++ {
		if current.Equal(targetHash) {
			return steps, nil
		}
		if _, seen := visited[*current]; seen {
			return steps, errors.Wrapf(ErrCycleDetected, "at block %s after %d links", current, steps)
		}
		visited[*current] = struct{}{}

		header, err := store.GetRawHeader(current)
		if err != nil {
			return steps, errors.Wrapf(err, "fetching block %s", current)
		}
		recomputedHash := consensushashing.HeaderHash(header)
		if !recomputedHash.Equal(current) {
			return steps, errors.Wrapf(ErrHashMismatch, "block %s hashes to %s", current, recomputedHash)
		}

		current = header.PruningPoint()
	}
}
