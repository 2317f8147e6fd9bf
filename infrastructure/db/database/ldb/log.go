package ldb

import (
	"github.com/kaspanet/genesisproof/infrastructure/logger"
)

var log = logger.RegisterSubSystem("KSDB")
