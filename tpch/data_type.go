package tpch

import "fmt"

type TypeKind int

const (
	TypeKindNull TypeKind = iota
	TypeKindInt32
	TypeKindInt64
	TypeKindString
	TypeKindDecimal
	TypeKindDate32
)

var typeKindNames = []string{
	"null",
	"int32",
	"int64",
	"string",
	"decimal",
	"date32",
}

func (k TypeKind) String() string {
	return typeKindNames[k]
}

// DataType is a column type. Precision and Scale are only set for decimals.
type DataType struct {
	Kind      TypeKind
	Precision int
	Scale     int
}

func Null() DataType   { return DataType{Kind: TypeKindNull} }
func Int32() DataType  { return DataType{Kind: TypeKindInt32} }
func Int64() DataType  { return DataType{Kind: TypeKindInt64} }
func String() DataType { return DataType{Kind: TypeKindString} }
func Date32() DataType { return DataType{Kind: TypeKindDate32} }

func Decimal(precision, scale int) DataType {
	return DataType{Kind: TypeKindDecimal, Precision: precision, Scale: scale}
}

func (dt DataType) String() string {
	if dt.Kind == TypeKindDecimal {
		return fmt.Sprintf("decimal(%d,%d)", dt.Precision, dt.Scale)
	}
	return dt.Kind.String()
}

type Field struct {
	Name     string
	Type     DataType
	Nullable bool
}
