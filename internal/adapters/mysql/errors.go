package mysql_adapter

import (
	"fmt"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
)

const dependencyName = "mysql"

func dependencyError(action string, err error) error {
	return domain.NewDependencyError(dependencyName, fmt.Errorf("%s: %w", action, err))
}
