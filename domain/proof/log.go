package proof

import (
	"github.com/kaspanet/genesisproof/infrastructure/logger"
)

var log = logger.RegisterSubSystem("PROF")
