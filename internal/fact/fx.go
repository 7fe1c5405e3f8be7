package fact

import (
	"github.com/opsfoundry/tickethouse/internal/fact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("fact",
	fx.Provide(service.NewFactory),
)
