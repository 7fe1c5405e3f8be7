package datedim

import (
	"github.com/opsfoundry/tickethouse/internal/datedim/service"
	"go.uber.org/fx"
)

var Module = fx.Module("datedim",
	fx.Provide(service.NewFactory),
)
