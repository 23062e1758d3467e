package state

import (
	"github.com/sidereusnuntius/gofinger/internal/config"
	"github.com/sidereusnuntius/gofinger/internal/service"
)

type State struct {
	Directory service.Directory
	Config    config.Configuration
}
