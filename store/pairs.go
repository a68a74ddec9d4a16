// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leotrs/smol/cospectral"
	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/switching"
)

// PutPairs upserts pairs of order n. Existing pairs keep their status.
func (s *Store) PutPairs(ctx context.Context, n int, pairs []cospectral.Pair) error {
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cospectral_pairs (graph1, graph2, matrix_type, n)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(graph1, graph2, matrix_type) DO NOTHING
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, p := range pairs {
			if !p.Kind.Valid() {
				return fmt.Errorf("%s: %w", p, ErrInvalidKind)
			}
			p = cospectral.NewPair(p.First, p.Second, p.Kind)
			if _, err := stmt.ExecContext(ctx, p.First, p.Second, p.Kind.String(), n); err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("put pairs n=%d: %w", n, err)
	}

	return nil
}

// Pairs returns the pairs of order n and kind, ordered by (first, second).
func (s *Store) Pairs(ctx context.Context, n int, kind matrix.Kind) ([]cospectral.Pair, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("pairs: %w", ErrInvalidKind)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT graph1, graph2 FROM cospectral_pairs
		WHERE n = ? AND matrix_type = ?
		ORDER BY graph1 COLLATE BINARY, graph2 COLLATE BINARY
	`, n, kind.String())
	if err != nil {
		return nil, fmt.Errorf("pairs n=%d %s: %w", n, kind, err)
	}
	defer rows.Close()

	out := []cospectral.Pair{}
	for rows.Next() {
		p := cospectral.Pair{Kind: kind}
		if err := rows.Scan(&p.First, &p.Second); err != nil {
			return nil, fmt.Errorf("pairs n=%d %s: %w", n, kind, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pairs n=%d %s: %w", n, kind, err)
	}

	return out, nil
}

// Mates returns the graphs cospectral to id under kind, sorted.
func (s *Store) Mates(ctx context.Context, id string, kind matrix.Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("mates: %w", ErrInvalidKind)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT graph2 FROM cospectral_pairs WHERE graph1 = ? AND matrix_type = ?
		UNION
		SELECT graph1 FROM cospectral_pairs WHERE graph2 = ? AND matrix_type = ?
		ORDER BY 1
	`, id, kind.String(), id, kind.String())
	if err != nil {
		return nil, fmt.Errorf("mates %s %s: %w", id, kind, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var mate string
		if err := rows.Scan(&mate); err != nil {
			return nil, fmt.Errorf("mates %s %s: %w", id, kind, err)
		}
		out = append(out, mate)
	}

	return out, rows.Err()
}

// SetPairStatus records the switch detection outcome of p.
func (s *Store) SetPairStatus(ctx context.Context, p cospectral.Pair, status switching.Status) error {
	p = cospectral.NewPair(p.First, p.Second, p.Kind)
	res, err := s.db.ExecContext(ctx, `
		UPDATE cospectral_pairs SET status = ?
		WHERE graph1 = ? AND graph2 = ? AND matrix_type = ?
	`, string(status), p.First, p.Second, p.Kind.String())
	if err != nil {
		return fmt.Errorf("set status %s: %w", p, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("set status %s: %w", p, ErrNotFound)
	}

	return nil
}

// PairStatus returns the stored detection status of p, empty when detection
// has not run on it.
func (s *Store) PairStatus(ctx context.Context, p cospectral.Pair) (switching.Status, error) {
	p = cospectral.NewPair(p.First, p.Second, p.Kind)
	var status sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT status FROM cospectral_pairs
		WHERE graph1 = ? AND graph2 = ? AND matrix_type = ?
	`, p.First, p.Second, p.Kind.String()).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("status %s: %w", p, notFound(err))
	}

	return switching.Status(status.String), nil
}
