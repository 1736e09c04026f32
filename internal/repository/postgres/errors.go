package postgres

import (
	"errors"
	"fmt"
	"myCatalogStore/domain"

	"gorm.io/gorm"
)

// translateError maps gorm errors onto the catalog error kinds. The database
// is opened with TranslateError so driver constraint codes arrive here as
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func translateError(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s already exists: %w", entity, domain.ErrDuplicateKey)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s references a missing record: %w", entity, domain.ErrNotFound)
	}

	return fmt.Errorf("%s: %w", entity, err)
}
