package infra

import (
	"errors"

	"lendkit/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

// Infrastructure-specific error kinds. Usecases translate these into
// domain sentinels; handlers never see them directly.
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies a low-level error into a RepositoryError. When
// no kind is given it is derived from the postgres error code, falling
// back to DB_FAILURE.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	if len(kind) > 0 {
		k = kind[0]
	} else {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeUniqueViolation:
				k = KindDuplicateKey
			case pgErrCodeForeignKeyViolation:
				k = KindForeignKeyViolated
			}
		}
	}

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return RepositoryError{Kind: k, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
