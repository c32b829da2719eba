package usecase

import (
	"errors"
	"github.com/filcana01/rork-app-di-annunci-alloggi-studenti-sub000/internal/core/domain"
)

// asDependencyError приводит ошибку хранилища к domain.DependencyError,
// не трогая уже классифицированные ошибки.
func asDependencyError(dependency string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDependency) {
		return err
	}
	return domain.NewDependencyError(dependency, err)
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
