package bridge

import (
	"github.com/opsfoundry/tickethouse/internal/bridge/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bridge",
	fx.Provide(service.NewFactory),
)
