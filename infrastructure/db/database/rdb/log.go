package rdb

import (
	"github.com/kaspanet/genesisproof/infrastructure/logger"
)

var log = logger.RegisterSubSystem("RKDB")
