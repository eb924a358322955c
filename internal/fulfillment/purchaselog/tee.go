package purchaselog

import (
	"context"
	"errors"
)

type teeRepository []Repository

// Tee saves every record to each repo in turn. A failing repo does not stop
// the others; their errors are joined.
func Tee(repos ...Repository) Repository {
	return teeRepository(repos)
}

func (t teeRepository) Save(ctx context.Context, rec *Record) error {
	var errs []error
	for _, repo := range t {
		if err := repo.Save(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
