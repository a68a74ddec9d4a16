// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/metadata"
	"github.com/leotrs/smol/pipeline"
	"github.com/leotrs/smol/spectrum"
)

func nullInt(v metadata.Int) any {
	if x, ok := v.Get(); ok {
		return x
	}

	return nil
}

func nullFloat(v metadata.Float) any {
	if x, ok := v.Get(); ok {
		return x
	}

	return nil
}

func fingerprintValue(rec pipeline.Record, k matrix.Kind) any {
	if s, ok := rec.Spectra[k]; ok && s.Applicable {
		return string(s.Fingerprint)
	}

	return nil
}

// PutRecord inserts rec, replacing a previous record of the same graph.
func (s *Store) PutRecord(ctx context.Context, rec pipeline.Record) error {
	spectra, err := json.Marshal(rec.Spectra)
	if err != nil {
		return fmt.Errorf("put record %s: %w", rec.ID, err)
	}
	md, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("put record %s: %w", rec.ID, err)
	}
	tagList := rec.Tags
	if tagList == nil {
		tagList = []string{}
	}
	tags, err := json.Marshal(tagList)
	if err != nil {
		return fmt.Errorf("put record %s: %w", rec.ID, err)
	}

	cols := []string{"graph6", "n", "m", "spectra"}
	args := []any{rec.ID, rec.N, rec.M, string(spectra)}
	for _, k := range matrix.Kinds() {
		col, _ := fingerprintColumn(k)
		cols = append(cols, col)
		args = append(args, fingerprintValue(rec, k))
	}
	m := rec.Metadata
	cols = append(cols,
		"bipartite", "planar", "regular", "connected",
		"diameter", "radius", "girth",
		"min_degree", "max_degree", "triangle_count",
		"clique_number_upper_bound", "chromatic_number_upper_bound",
		"algebraic_connectivity", "clustering_global", "clustering_avg_local",
		"avg_path_length", "assortativity",
		"metadata", "tags",
	)
	args = append(args,
		m.Bipartite, m.Planar, m.Regular, m.Connected,
		nullInt(m.Diameter), nullInt(m.Radius), nullInt(m.Girth),
		m.MinDegree, m.MaxDegree, m.TriangleCount,
		m.CliqueUpperBound, m.ChromaticUpperBound,
		m.AlgebraicConnectivity, m.ClusteringGlobal, m.ClusteringAvgLocal,
		nullFloat(m.AvgPathLength), nullFloat(m.Assortativity),
		string(md), string(tags),
	)

	updates := make([]string, 0, len(cols)-1)
	for _, c := range cols[1:] {
		updates = append(updates, c+" = excluded."+c)
	}
	query := fmt.Sprintf(
		"INSERT INTO graphs (%s) VALUES (%s) ON CONFLICT(graph6) DO UPDATE SET %s",
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
		strings.Join(updates, ", "),
	)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put record %s: %w", rec.ID, err)
	}

	return nil
}

// Has reports whether a complete record for id exists. A row missing a
// kind, as left by a per-kind eigensolver failure, reports false so the next
// run recomputes and overwrites it.
func (s *Store) Has(ctx context.Context, id string) (bool, error) {
	var spectra string
	err := s.db.QueryRowContext(ctx, `SELECT spectra FROM graphs WHERE graph6 = ?`, id).Scan(&spectra)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("has %s: %w", id, err)
	}
	rec := pipeline.Record{ID: id}
	if err := json.Unmarshal([]byte(spectra), &rec.Spectra); err != nil {
		return false, fmt.Errorf("has %s: spectra: %w", id, err)
	}

	return rec.Complete(), nil
}

// GetRecord loads the record of id, or ErrNotFound.
func (s *Store) GetRecord(ctx context.Context, id string) (pipeline.Record, error) {
	var (
		rec                   = pipeline.Record{ID: id}
		spectra, md, tagsJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT n, m, spectra, metadata, tags FROM graphs WHERE graph6 = ?
	`, id).Scan(&rec.N, &rec.M, &spectra, &md, &tagsJSON)
	if err != nil {
		return pipeline.Record{}, fmt.Errorf("get record %s: %w", id, notFound(err))
	}
	if err := json.Unmarshal([]byte(spectra), &rec.Spectra); err != nil {
		return pipeline.Record{}, fmt.Errorf("get record %s: spectra: %w", id, err)
	}
	if err := json.Unmarshal([]byte(md), &rec.Metadata); err != nil {
		return pipeline.Record{}, fmt.Errorf("get record %s: metadata: %w", id, err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &rec.Tags); err != nil {
		return pipeline.Record{}, fmt.Errorf("get record %s: tags: %w", id, err)
	}

	return rec, nil
}

// Fingerprints returns id → fingerprint for every graph of order n whose kind
// spectrum is stored.
func (s *Store) Fingerprints(ctx context.Context, n int, kind matrix.Kind) (map[string]spectrum.Fingerprint, error) {
	col, err := fingerprintColumn(kind)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT graph6, %[1]s FROM graphs WHERE n = ? AND %[1]s IS NOT NULL", col), n)
	if err != nil {
		return nil, fmt.Errorf("fingerprints n=%d %s: %w", n, kind, err)
	}
	defer rows.Close()

	out := map[string]spectrum.Fingerprint{}
	for rows.Next() {
		var id, fp string
		if err := rows.Scan(&id, &fp); err != nil {
			return nil, fmt.Errorf("fingerprints n=%d %s: %w", n, kind, err)
		}
		out[id] = spectrum.Fingerprint(fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fingerprints n=%d %s: %w", n, kind, err)
	}

	return out, nil
}

// Orders returns the distinct vertex counts present, ascending.
func (s *Store) Orders(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT n FROM graphs ORDER BY n`)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	defer rows.Close()

	out := []int{}
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("orders: %w", err)
		}
		out = append(out, n)
	}

	return out, rows.Err()
}
