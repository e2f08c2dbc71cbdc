package assessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func marshalScores(m map[string]float64) (string, error) {
	if m == nil {
		m = map[string]float64{}
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func unmarshalScores(s string) map[string]float64 {
	out := map[string]float64{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return map[string]float64{}
	}
	return out
}

func (s *SQLStore) Create(ctx context.Context, a Assessment) (Assessment, error) {
	a = prepare(a, time.Now())
	cj, err := marshalScores(a.Context)
	if err != nil {
		return Assessment{}, err
	}
	mj, err := marshalScores(a.Maturity)
	if err != nil {
		return Assessment{}, err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO assessments (id,user_id,title,context_json,maturity_json,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.UserID, a.Title, cj, mj, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return Assessment{}, fmt.Errorf("insert assessment: %w", err)
	}
	return a, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (Assessment, error) {
	var a Assessment
	var cj, mj string
	if err := row.Scan(&a.ID, &a.UserID, &a.Title, &cj, &mj, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}
	a.Context = unmarshalScores(cj)
	a.Maturity = unmarshalScores(mj)
	return a, nil
}

const selectAssessment = `SELECT id,user_id,title,context_json,maturity_json,created_at,updated_at FROM assessments`

func (s *SQLStore) Get(ctx context.Context, id string) (Assessment, error) {
	return scanAssessment(s.db.QueryRowContext(ctx, selectAssessment+` WHERE id=$1`, id))
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Assessment, error) {
	opts = opts.normalized()
	var (
		rows *sql.Rows
		err  error
	)
	if opts.UserID != "" {
		rows, err = s.db.QueryContext(ctx, selectAssessment+` WHERE user_id=$1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
			opts.UserID, opts.Limit, opts.Offset)
	} else {
		rows, err = s.db.QueryContext(ctx, selectAssessment+` ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
			opts.Limit, opts.Offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// update reads, modifies and writes one row inside a transaction.
func (s *SQLStore) update(ctx context.Context, id string, apply func(*Assessment)) (Assessment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Assessment{}, err
	}
	defer tx.Rollback()

	q := selectAssessment + ` WHERE id=$1`
	if s.driver == "postgres" {
		q += ` FOR UPDATE`
	}
	a, err := scanAssessment(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		return Assessment{}, err
	}
	apply(&a)
	a.UpdatedAt = time.Now().Unix()

	cj, err := marshalScores(a.Context)
	if err != nil {
		return Assessment{}, err
	}
	mj, err := marshalScores(a.Maturity)
	if err != nil {
		return Assessment{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE assessments SET context_json=$1, maturity_json=$2, updated_at=$3 WHERE id=$4`,
		cj, mj, a.UpdatedAt, id); err != nil {
		return Assessment{}, err
	}
	if err := tx.Commit(); err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *SQLStore) SaveContext(ctx context.Context, id string, resp map[string]float64) (Assessment, error) {
	return s.update(ctx, id, func(a *Assessment) {
		for k, v := range resp {
			a.Context[k] = v
		}
	})
}

func (s *SQLStore) SaveMaturity(ctx context.Context, id string, resp map[string]float64) (Assessment, error) {
	return s.update(ctx, id, func(a *Assessment) {
		for k, v := range resp {
			a.Maturity[k] = v
		}
	})
}

func (s *SQLStore) Reset(ctx context.Context, id string) (Assessment, error) {
	return s.update(ctx, id, func(a *Assessment) {
		a.Context = map[string]float64{}
		a.Maturity = map[string]float64{}
	})
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM exports WHERE assessment_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM assessments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (s *SQLStore) exists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM assessments WHERE id=$1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *SQLStore) AddExport(ctx context.Context, rec ExportRecord) error {
	if err := s.exists(ctx, rec.AssessmentID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO exports (assessment_id,blob_key,ssi,opi,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (assessment_id, blob_key) DO UPDATE SET ssi=EXCLUDED.ssi, opi=EXCLUDED.opi, created_at=EXCLUDED.created_at`,
		rec.AssessmentID, rec.BlobKey, rec.SSI, rec.OPI, rec.CreatedAt)
	return err
}

func (s *SQLStore) ListExports(ctx context.Context, assessmentID string) ([]ExportRecord, error) {
	if err := s.exists(ctx, assessmentID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT assessment_id,blob_key,ssi,opi,created_at FROM exports
		WHERE assessment_id=$1 ORDER BY created_at, blob_key`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ExportRecord{}
	for rows.Next() {
		var r ExportRecord
		if err := rows.Scan(&r.AssessmentID, &r.BlobKey, &r.SSI, &r.OPI, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
