package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
)

// diagnosticRecord is the columnar row shape written to disk. Field
// names are chosen for a parquet schema, not for JSON compatibility.
type diagnosticRecord struct {
	ID        string    `parquet:"id"`
	Timestamp time.Time `parquet:"timestamp"`
	Kind      string    `parquet:"kind"`
	Emitter   string    `parquet:"emitter"`
	Attribute string    `parquet:"attribute"`
	Message   string    `parquet:"message"`
}

// ParquetSink batches Diagnostic events to Parquet files for offline
// analysis, adapted from the teacher's pkg/telemetry.ParquetHandler —
// same batch-then-flush-to-a-timestamped-file shape, applied to
// planning diagnostics instead of application error logs.
type ParquetSink struct {
	outputDir string
	batchSize int

	mu     sync.Mutex
	buffer []diagnosticRecord
}

// NewParquetSink creates a ParquetSink writing batches of batchSize
// records to outputDir. outputDir is created if it does not exist.
func NewParquetSink(outputDir string, batchSize int) (*ParquetSink, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("diagnostics: create output dir: %w", err)
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	return &ParquetSink{
		outputDir: outputDir,
		batchSize: batchSize,
		buffer:    make([]diagnosticRecord, 0, batchSize),
	}, nil
}

// Record implements Sink.
func (s *ParquetSink) Record(d Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buffer = append(s.buffer, diagnosticRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Kind:      string(d.Kind),
		Emitter:   d.Emitter,
		Attribute: d.Attribute,
		Message:   d.Message,
	})

	if len(s.buffer) >= s.batchSize {
		_ = s.flushLocked()
	}
}

// Flush forces the current buffer to disk regardless of batch size.
// Callers should call this once planning is done for a batch of
// requests to avoid losing a partial buffer.
func (s *ParquetSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

func (s *ParquetSink) flushLocked() error {
	if len(s.buffer) == 0 {
		return nil
	}

	name := fmt.Sprintf("diagnostics_%s_%d.parquet", time.Now().Format("20060102_150405"), time.Now().UnixNano())
	path := filepath.Join(s.outputDir, name)

	if err := parquet.WriteFile(path, s.buffer); err != nil {
		return fmt.Errorf("diagnostics: write parquet file: %w", err)
	}

	s.buffer = s.buffer[:0]
	return nil
}
