package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/nulzo/zoo-api/internal/store"
	"github.com/nulzo/zoo-api/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db *sqlx.DB
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{db: db}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SqliteRepository) Zoos() store.ZooRepository {
	return &zooRepo{db: r.db}
}

type zooRepo struct {
	db DB
}

func (r *zooRepo) Insert(ctx context.Context, fields model.Fields) ([]int64, error) {
	cols := fields.Columns()
	if len(cols) == 0 {
		return nil, fmt.Errorf("insert into zoos: empty row")
	}

	quoted := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		args[i] = fields[c]
	}

	query := fmt.Sprintf(`INSERT INTO zoos (%s) VALUES (%s)`,
		strings.Join(quoted, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert into zoos: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert into zoos: %w", err)
	}

	return []int64{id}, nil
}

func (r *zooRepo) List(ctx context.Context) ([]model.Zoo, error) {
	zoos, err := r.selectZoos(ctx, `SELECT * FROM zoos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select zoos: %w", err)
	}
	return zoos, nil
}

func (r *zooRepo) FindByID(ctx context.Context, id string) ([]model.Zoo, error) {
	zoos, err := r.selectZoos(ctx, `SELECT * FROM zoos WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("select zoo %s: %w", id, err)
	}
	return zoos, nil
}

// selectZoos scans whole rows so columns added to the table come back to the caller.
func (r *zooRepo) selectZoos(ctx context.Context, query string, args ...interface{}) ([]model.Zoo, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	zoos := []model.Zoo{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		z, err := model.ZooFromRow(row)
		if err != nil {
			return nil, err
		}
		zoos = append(zoos, z)
	}
	return zoos, rows.Err()
}

func (r *zooRepo) Update(ctx context.Context, id string, fields model.Fields) (int64, error) {
	cols := fields.Columns()
	if len(cols) == 0 {
		return 0, fmt.Errorf("update zoo %s: nothing to update", id)
	}

	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = quoteIdent(c) + " = ?"
		args = append(args, fields[c])
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE zoos SET %s WHERE id = ?`, strings.Join(sets, ", "))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update zoo %s: %w", id, err)
	}
	return res.RowsAffected()
}

func (r *zooRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM zoos WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete zoo %s: %w", id, err)
	}
	return res.RowsAffected()
}

// quoteIdent renders a column name as a quoted SQLite identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
