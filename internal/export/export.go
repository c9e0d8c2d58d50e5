package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"sigview/internal/config"
	"sigview/internal/fileutil"
	"sigview/internal/table"
)

// Write encodes tbl to w.
func Write(w io.Writer, tbl *table.Table, opts Options) error {
	opts, err := opts.normalized()
	if err != nil {
		return err
	}

	mem := memory.NewGoAllocator()
	rec, err := toRecord(mem, tbl)
	if err != nil {
		return err
	}
	defer rec.Release()

	cw, err := compressWriter(w, opts.Compression)
	if err != nil {
		return err
	}

	switch opts.Format {
	case config.ExportFormatCSV:
		enc := csv.NewWriter(cw, rec.Schema(), csv.WithHeader(true), csv.WithComma(','))
		if err := enc.Write(rec); err != nil {
			_ = cw.Close()
			return fmt.Errorf("write csv: %w", err)
		}
		enc.Flush()
		if err := enc.Error(); err != nil {
			_ = cw.Close()
			return fmt.Errorf("flush csv: %w", err)
		}
	case config.ExportFormatArrow:
		enc := ipc.NewWriter(cw, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
		if err := enc.Write(rec); err != nil {
			_ = enc.Close()
			_ = cw.Close()
			return fmt.Errorf("write arrow: %w", err)
		}
		if err := enc.Close(); err != nil {
			_ = cw.Close()
			return fmt.Errorf("close arrow stream: %w", err)
		}
	}

	if err := cw.Close(); err != nil {
		return fmt.Errorf("close %s stream: %w", opts.Compression, err)
	}
	return nil
}

// WriteFile atomically replaces path with the encoded table.
func WriteFile(path string, tbl *table.Table, opts Options) (fileutil.WriteResult, error) {
	if _, err := opts.normalized(); err != nil {
		return fileutil.WriteResult{}, err
	}
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Write(w, tbl, opts)
	})
}

// ReadArrow decodes an Arrow IPC stream written by Write. When schema is nil
// the table schema is derived from the stream.
func ReadArrow(r io.Reader, compression string, schema *table.Schema) (*table.Table, error) {
	src, err := decompressReader(r, compression)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mem := memory.NewGoAllocator()
	rdr, err := ipc.NewReader(src, ipc.WithAllocator(mem))
	if err != nil {
		return nil, fmt.Errorf("open arrow stream: %w", err)
	}
	defer rdr.Release()

	if schema == nil {
		if schema, err = tableSchemaFor(rdr.Schema()); err != nil {
			return nil, err
		}
	} else if rdr.Schema().NumFields() != schema.Len() {
		return nil, fmt.Errorf("arrow stream has %d columns, expected %d", rdr.Schema().NumFields(), schema.Len())
	}

	builder := table.NewBuilder(schema, 0)
	for rdr.Next() {
		if err := appendRecord(builder, schema, rdr.Record()); err != nil {
			return nil, err
		}
	}
	if err := rdr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read arrow stream: %w", err)
	}
	return builder.Build(), nil
}

// csvChunkRows is the number of CSV rows decoded per Arrow record.
const csvChunkRows = 4096

// ReadCSV decodes a CSV export written by Write. CSV carries no types, so
// schema is required; the header row is skipped.
func ReadCSV(r io.Reader, compression string, schema *table.Schema) (*table.Table, error) {
	if schema == nil {
		return nil, errors.New("read csv: schema is required")
	}
	arrowSchema, err := ArrowSchema(schema)
	if err != nil {
		return nil, err
	}
	src, err := decompressReader(r, compression)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mem := memory.NewGoAllocator()
	rdr := csv.NewReader(src, arrowSchema,
		csv.WithHeader(true),
		csv.WithComma(','),
		csv.WithChunk(csvChunkRows),
		csv.WithAllocator(mem),
	)
	defer rdr.Release()

	builder := table.NewBuilder(schema, 0)
	for rdr.Next() {
		if err := appendRecord(builder, schema, rdr.Record()); err != nil {
			return nil, err
		}
	}
	if err := rdr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return builder.Build(), nil
}

// ReadFile decodes an export from path, inferring format and compression
// from the file name. Names without a known suffix are read as Arrow.
func ReadFile(path string, schema *table.Schema) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts := InferOptions(path, Options{Format: config.ExportFormatArrow, Compression: config.CompressionNone})
	if opts.Format == config.ExportFormatCSV {
		return ReadCSV(f, opts.Compression, schema)
	}
	return ReadArrow(f, opts.Compression, schema)
}
