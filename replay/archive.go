package replay

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// TurnRow is one applied action in the parquet match archive.
type TurnRow struct {
	MatchID    string `parquet:"match_id,dict"`
	Turn       int32  `parquet:"turn"`
	AgentIndex int32  `parquet:"agent_index"`
	Action     string `parquet:"action,dict"`
	Score      int32  `parquet:"score"`
	RedFood    int32  `parquet:"red_food"`
	BlueFood   int32  `parquet:"blue_food"`
	TimeLeft   int32  `parquet:"time_left"`
}

// ArchiveWriter writes turn rows to one parquet batch file. Rows go to a
// tmp file first and move into place on Close, so readers never see a
// partial batch.
type ArchiveWriter struct {
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TurnRow]
	rows   int
}

// NewArchiveWriter opens a fresh batch file under outDir.
func NewArchiveWriter(outDir string) (*ArchiveWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("matches_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)
	outPath := filepath.Join(absOut, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TurnRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", "capture_turn_v1")

	return &ArchiveWriter{
		tmpPath: tmpPath,
		outPath: outPath,
		file:    f,
		writer:  w,
	}, nil
}

// OutPath is where the batch lands once Close succeeds.
func (a *ArchiveWriter) OutPath() string { return a.outPath }

// Rows is the number of rows written so far.
func (a *ArchiveWriter) Rows() int { return a.rows }

func (a *ArchiveWriter) WriteRows(rows []TurnRow) error {
	if a.writer == nil || a.file == nil {
		return fmt.Errorf("archive writer is closed")
	}
	if len(rows) == 0 {
		return nil
	}

	n := 0
	for n < len(rows) {
		w, err := a.writer.Write(rows[n:])
		if err != nil {
			return fmt.Errorf("write rows: %w", err)
		}
		if w == 0 {
			return fmt.Errorf("write rows: no progress")
		}
		n += w
	}
	a.rows += len(rows)
	return nil
}

// Close finalizes the batch and publishes it into the output directory.
// An empty batch is discarded instead.
func (a *ArchiveWriter) Close() error {
	if a.writer == nil {
		return nil
	}
	if err := a.writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	a.writer = nil

	if err := a.file.Close(); err != nil {
		return fmt.Errorf("close parquet file: %w", err)
	}
	a.file = nil

	if a.rows == 0 {
		return os.Remove(a.tmpPath)
	}
	if err := os.Rename(a.tmpPath, a.outPath); err != nil {
		return fmt.Errorf("publish parquet batch: %w", err)
	}
	return nil
}

// ReadArchive loads every row of one published batch file.
func ReadArchive(path string) ([]TurnRow, error) {
	rows, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", path, err)
	}
	return rows, nil
}
