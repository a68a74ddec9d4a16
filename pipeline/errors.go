// SPDX-License-Identifier: MIT

package pipeline

import "errors"

var (
	// ErrGraphNil is returned when a record is requested for a nil graph.
	ErrGraphNil = errors.New("pipeline: graph is nil")

	// ErrSink indicates the sink refused a write. It aborts the run: records
	// already written stay, and a re-run resumes after them.
	ErrSink = errors.New("pipeline: sink write failed")

	// ErrSource indicates the input stream failed before EOF.
	ErrSource = errors.New("pipeline: source failed")
)

const (
	opBuildRecord = "pipeline.BuildRecord"
	opRun         = "pipeline.Run"
	opIndex       = "pipeline.IndexBatch"
	opDetect      = "pipeline.DetectBatch"
	opVerify      = "pipeline.VerifyBatch"
)

// Stage names carried by Failure.Kind when the failure is not tied to a
// matrix kind.
const (
	StageDecode = "decode"
	StageRecord = "record"
	StageDetect = "detect"
	StageVerify = "verify"
)
