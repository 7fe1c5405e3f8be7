package dimension

import (
	"github.com/opsfoundry/tickethouse/internal/dimension/repository"
	"github.com/opsfoundry/tickethouse/internal/dimension/service"
	"go.uber.org/fx"
)

var Module = fx.Module("dimension",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewFactory),
)
