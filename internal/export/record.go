package export

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"sigview/internal/table"
)

func arrowType(kind table.Kind) (arrow.DataType, error) {
	switch kind {
	case table.KindString:
		return arrow.BinaryTypes.String, nil
	case table.KindFloat64, table.KindOther:
		return arrow.PrimitiveTypes.Float64, nil
	case table.KindInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case table.KindUint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case table.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	default:
		return nil, fmt.Errorf("%w: column kind %s", ErrUnsupported, kind)
	}
}

// ArrowSchema maps a table schema onto a non-nullable Arrow schema.
func ArrowSchema(schema *table.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, schema.Len())
	for i, f := range schema.Fields() {
		dt, err := arrowType(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", f.Name, err)
		}
		fields[i] = arrow.Field{Name: f.Name, Type: dt}
	}
	return arrow.NewSchema(fields, nil), nil
}

// toRecord copies tbl into a single Arrow record. Callers release it.
func toRecord(mem memory.Allocator, tbl *table.Table) (arrow.Record, error) {
	schema, err := ArrowSchema(tbl.Schema())
	if err != nil {
		return nil, err
	}
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for col := 0; col < tbl.NumColumns(); col++ {
		fb := b.Field(col)
		fb.Reserve(tbl.NumRows())
		for row := 0; row < tbl.NumRows(); row++ {
			v, _ := tbl.Value(row, col)
			switch x := fb.(type) {
			case *array.StringBuilder:
				x.Append(v.Str)
			case *array.Float64Builder:
				x.Append(v.F64)
			case *array.Int64Builder:
				x.Append(v.I64)
			case *array.Uint64Builder:
				x.Append(v.U64)
			case *array.BooleanBuilder:
				x.Append(v.Bool)
			}
		}
	}
	return b.NewRecord(), nil
}

// appendRecord converts rec back into table rows using schema for kinds.
func appendRecord(builder *table.Builder, schema *table.Schema, rec arrow.Record) error {
	if int(rec.NumCols()) != schema.Len() {
		return fmt.Errorf("record has %d columns, schema has %d", rec.NumCols(), schema.Len())
	}
	for row := 0; row < int(rec.NumRows()); row++ {
		values := make([]table.Value, schema.Len())
		for col := range values {
			kind := schema.Field(col).Kind
			switch arr := rec.Column(col).(type) {
			case *array.String:
				values[col] = table.String(arr.Value(row))
			case *array.Float64:
				if kind == table.KindOther {
					values[col] = table.Other(arr.Value(row))
				} else {
					values[col] = table.Float64(arr.Value(row))
				}
			case *array.Int64:
				values[col] = table.Int64(arr.Value(row))
			case *array.Uint64:
				values[col] = table.Uint64(arr.Value(row))
			case *array.Boolean:
				values[col] = table.Bool(arr.Value(row))
			default:
				return fmt.Errorf("%w: arrow type %s", ErrUnsupported, arr.DataType())
			}
		}
		if err := builder.Append(values); err != nil {
			return err
		}
	}
	return nil
}

// tableSchemaFor reverses ArrowSchema. Float columns come back as KindFloat64.
func tableSchemaFor(schema *arrow.Schema) (*table.Schema, error) {
	fields := make([]table.Field, schema.NumFields())
	for i, f := range schema.Fields() {
		var kind table.Kind
		switch f.Type.ID() {
		case arrow.STRING:
			kind = table.KindString
		case arrow.FLOAT64:
			kind = table.KindFloat64
		case arrow.INT64:
			kind = table.KindInt64
		case arrow.UINT64:
			kind = table.KindUint64
		case arrow.BOOL:
			kind = table.KindBool
		default:
			return nil, fmt.Errorf("%w: arrow type %s for column %s", ErrUnsupported, f.Type, f.Name)
		}
		fields[i] = table.Field{Name: f.Name, Kind: kind}
	}
	return table.NewSchema(fields...)
}
