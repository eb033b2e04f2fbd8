package hierarchy

import (
	"github.com/m04kA/SMC-SeasonalService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
