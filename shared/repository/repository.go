package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"roomly/infras/otel"
	"roomly/infras/postgres"
	"roomly/shared/constant"
	"roomly/shared/dto"
	"roomly/shared/logger"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var errRequiredFilter = errors.New("required filter")

// IsPqErrorCode reports whether err carries the given Postgres SQLSTATE.
func IsPqErrorCode(err error, code string) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is the table gateway embedded by every domain repository. T
// describes the row through db, table, column and auto struct tags; see
// field for their meaning.
type Repository[T any] struct {
	db     *postgres.Connection
	otel   otel.Otel
	entity string
	schema schema
}

func NewRepository[T any](entity, table, primaryKey string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:     db,
		otel:   otl,
		entity: entity,
		schema: newSchema[T](table, primaryKey),
	}
}

// InsertColumns lists the columns written by Insert, in tag order.
func (repo *Repository[T]) InsertColumns() []string {
	return repo.schema.insertable
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

// fail logs and traces err, then wraps it with the entity and action.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// fetch prepares query on prep and scans into dest, a pointer to one row or a slice.
func (repo *Repository[T]) fetch(ctx context.Context, prep preparer, query string, args map[string]any, dest any, many bool) error {
	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if many {
		return stmt.SelectContext(ctx, dest, args)
	}

	return stmt.GetContext(ctx, dest, args)
}

// WithTx runs fn inside a write transaction, rolling back when fn fails.
func (repo *Repository[T]) WithTx(ctx context.Context, fn func(sqltx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.scope(ctx, "WithTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", repo.entity, err)
	}

	if err = fn(sqltx); err != nil {
		if rbErr := sqltx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err = sqltx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, row T) error {
	ctx, scope := repo.scope(ctx, "insert")
	defer scope.End()

	query := repo.schema.insertQuery(false)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, row); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, row T) error {
	return repo.insert(ctx, repo.db.Write, row)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, row T) error {
	return repo.insert(ctx, sqltx, row)
}

func (repo *Repository[T]) insertReturningID(ctx context.Context, ext sqlx.ExtContext, row T) (int64, error) {
	ctx, scope := repo.scope(ctx, "insertReturningID")
	defer scope.End()

	query := repo.schema.insertQuery(true)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows, err := sqlx.NamedQueryContext(ctx, ext, query, row)
	if err != nil {
		return 0, repo.fail(scope, "insert data", err)
	}
	defer rows.Close()

	var id int64

	if rows.Next() {
		if err = rows.Scan(&id); err != nil {
			return 0, repo.fail(scope, "scan inserted id", err)
		}
	}

	if err = rows.Err(); err != nil {
		return 0, repo.fail(scope, "insert data", err)
	}

	return id, nil
}

func (repo *Repository[T]) InsertReturningID(ctx context.Context, row T) (int64, error) {
	return repo.insertReturningID(ctx, repo.db.Write, row)
}

func (repo *Repository[T]) InsertReturningIDTx(ctx context.Context, sqltx *sqlx.Tx, row T) (int64, error) {
	return repo.insertReturningID(ctx, sqltx, row)
}

func (repo *Repository[T]) get(ctx context.Context, prep preparer, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "get")
	defer scope.End()

	query, args := repo.schema.selectQuery(filter, columns...)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var row T

	err := repo.fetch(ctx, prep, query, args, &row, false)
	if errors.Is(err, sql.ErrNoRows) {
		return row, nil
	}

	if err != nil {
		return row, repo.fail(scope, "get data", err)
	}

	return row, nil
}

// Get returns the zero value of T when no row matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, filter, columns...)
}

// GetTx reads through sqltx so it sees the transaction's own writes.
func (repo *Repository[T]) GetTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, filter, columns...)
}

// GetAll pages with params and orders only by known columns.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	query, args := repo.schema.listQuery(params, filter, columns...)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rows []T

	if err := repo.fetch(ctx, repo.db.Read, query, args, &rows, true); err != nil {
		return rows, repo.fail(scope, "get all data", err)
	}

	return rows, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	query, args := repo.schema.countQuery(filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	if err := repo.fetch(ctx, repo.db.Read, query, args, &count, false); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) exist(ctx context.Context, prep preparer, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "exist")
	defer scope.End()

	if filter.IsEmpty() {
		return false, errRequiredFilter
	}

	query, args := repo.schema.existQuery(filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool

	if err := repo.fetch(ctx, prep, query, args, &exist, false); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Exist refuses an empty filter.
func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, repo.db.Read, filter)
}

func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, sqltx, filter)
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, values map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "update")
	defer scope.End()

	if filter.IsEmpty() {
		return errRequiredFilter
	}

	query, args := repo.schema.updateQuery(values, filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "update data", err)
	}

	return nil
}

// Update sets values on every row matching filter, which must not be empty.
func (repo *Repository[T]) Update(ctx context.Context, values map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, values, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, values map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, values, filter)
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "delete")
	defer scope.End()

	if filter.IsEmpty() {
		return errRequiredFilter
	}

	query, args := repo.schema.deleteQuery(filter)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

// Delete hard-deletes matching rows and refuses an empty filter.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, filter)
}
