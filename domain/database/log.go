package database

import (
	"github.com/kaspanet/genesisproof/infrastructure/logger"
)

var log = logger.RegisterSubSystem("STOR")
