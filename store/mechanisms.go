// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/pipeline"
	"github.com/leotrs/smol/switching"
)

// PutMechanism upserts a confirmed mechanism. The config column holds the
// JSON payload Reverify consumes.
func (s *Store) PutMechanism(ctx context.Context, m *switching.Mechanism) error {
	if m == nil {
		return nil
	}
	payload, err := json.Marshal(m.Payload())
	if err != nil {
		return fmt.Errorf("put mechanism %s/%s: %w", m.First, m.Second, err)
	}
	cert, err := json.Marshal(m.Certification)
	if err != nil {
		return fmt.Errorf("put mechanism %s/%s: %w", m.First, m.Second, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO switching_mechanisms
		(graph1, graph2, matrix_type, mechanism_type, theorem, config, certification)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(graph1, graph2, matrix_type) DO UPDATE SET
			mechanism_type = excluded.mechanism_type,
			theorem        = excluded.theorem,
			config         = excluded.config,
			certification  = excluded.certification
	`, m.First, m.Second, m.Kind.String(), string(m.Type), m.Theorem, string(payload), string(cert))
	if err != nil {
		return fmt.Errorf("put mechanism %s/%s: %w", m.First, m.Second, err)
	}

	return nil
}

// Mechanisms returns every stored mechanism of kind, ordered by pair.
func (s *Store) Mechanisms(ctx context.Context, kind matrix.Kind) ([]pipeline.StoredMechanism, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("mechanisms: %w", ErrInvalidKind)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT graph1, graph2, config FROM switching_mechanisms
		WHERE matrix_type = ?
		ORDER BY graph1 COLLATE BINARY, graph2 COLLATE BINARY
	`, kind.String())
	if err != nil {
		return nil, fmt.Errorf("mechanisms %s: %w", kind, err)
	}
	defer rows.Close()

	out := []pipeline.StoredMechanism{}
	for rows.Next() {
		var (
			m      = pipeline.StoredMechanism{Kind: kind}
			config string
		)
		if err := rows.Scan(&m.First, &m.Second, &config); err != nil {
			return nil, fmt.Errorf("mechanisms %s: %w", kind, err)
		}
		if m.Payload, err = switching.ParsePayload([]byte(config)); err != nil {
			return nil, fmt.Errorf("mechanisms %s: %s/%s: %w", kind, m.First, m.Second, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("mechanisms %s: %w", kind, err)
	}

	return out, nil
}

// PutRun records a finished ingest run.
func (s *Store) PutRun(ctx context.Context, sum pipeline.Summary) error {
	failures := sum.Failed
	if failures == nil {
		failures = []pipeline.Failure{}
	}
	fj, err := json.Marshal(failures)
	if err != nil {
		return fmt.Errorf("put run %s: %w", sum.RunID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, started_at, finished_at, processed, skipped, failures)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO NOTHING
	`, sum.RunID, sum.StartedAt.Format(time.RFC3339Nano), sum.FinishedAt.Format(time.RFC3339Nano),
		sum.Processed, sum.Skipped, string(fj))
	if err != nil {
		return fmt.Errorf("put run %s: %w", sum.RunID, err)
	}

	return nil
}

// Run loads a recorded run.
func (s *Store) Run(ctx context.Context, runID string) (pipeline.Summary, error) {
	var (
		sum                     = pipeline.Summary{RunID: runID}
		started, finished, fail string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT started_at, finished_at, processed, skipped, failures FROM runs WHERE run_id = ?
	`, runID).Scan(&started, &finished, &sum.Processed, &sum.Skipped, &fail)
	if err != nil {
		return pipeline.Summary{}, fmt.Errorf("run %s: %w", runID, notFound(err))
	}
	if sum.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return pipeline.Summary{}, fmt.Errorf("run %s: %w", runID, err)
	}
	if sum.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return pipeline.Summary{}, fmt.Errorf("run %s: %w", runID, err)
	}
	if err := json.Unmarshal([]byte(fail), &sum.Failed); err != nil {
		return pipeline.Summary{}, fmt.Errorf("run %s: %w", runID, err)
	}

	return sum, nil
}
