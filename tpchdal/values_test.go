package tpchdal

import (
	"testing"

	"github.com/jamesrr39/tpch-parquet/tpch"
	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	type args struct {
		dataType tpch.DataType
		raw      string
	}
	tests := []struct {
		name    string
		args    args
		want    interface{}
		wantErr bool
	}{
		{name: "int64", args: args{tpch.Int64(), "155190"}, want: int64(155190)},
		{name: "negative int64", args: args{tpch.Int64(), "-3"}, want: int64(-3)},
		{name: "int64 not numeric", args: args{tpch.Int64(), "ALGERIA"}, wantErr: true},
		{name: "int64 empty", args: args{tpch.Int64(), ""}, wantErr: true},
		{name: "int64 trailing garbage", args: args{tpch.Int64(), "12abc"}, wantErr: true},
		{name: "int32", args: args{tpch.Int32(), "7"}, want: int32(7)},
		{name: "int32 out of range", args: args{tpch.Int32(), "2147483648"}, wantErr: true},
		{name: "string kept as-is", args: args{tpch.String(), " haggle. carefully "}, want: " haggle. carefully "},
		{name: "empty string", args: args{tpch.String(), ""}, want: ""},
		{name: "decimal", args: args{tpch.Decimal(15, 2), "21168.23"}, want: int64(2116823)},
		{name: "decimal without fraction", args: args{tpch.Decimal(15, 2), "17"}, want: int64(1700)},
		{name: "decimal with one fraction digit", args: args{tpch.Decimal(15, 2), "0.5"}, want: int64(50)},
		{name: "negative decimal", args: args{tpch.Decimal(15, 2), "-272.60"}, want: int64(-27260)},
		{name: "decimal leading zeros", args: args{tpch.Decimal(15, 2), "0.04"}, want: int64(4)},
		{name: "decimal zero", args: args{tpch.Decimal(15, 2), "0.00"}, want: int64(0)},
		{name: "decimal too many fraction digits", args: args{tpch.Decimal(15, 2), "1.234"}, wantErr: true},
		{name: "decimal too many digits", args: args{tpch.Decimal(15, 2), "12345678901234.00"}, wantErr: true},
		{name: "decimal at precision", args: args{tpch.Decimal(15, 2), "1234567890123.45"}, want: int64(123456789012345)},
		{name: "decimal not numeric", args: args{tpch.Decimal(15, 2), "12.3x"}, wantErr: true},
		{name: "decimal only sign", args: args{tpch.Decimal(15, 2), "-"}, wantErr: true},
		{name: "date", args: args{tpch.Date32(), "1996-03-13"}, want: int32(9568)},
		{name: "date before epoch", args: args{tpch.Date32(), "1969-12-31"}, want: int32(-1)},
		{name: "date invalid", args: args{tpch.Date32(), "1996-13-01"}, wantErr: true},
		{name: "null", args: args{tpch.Null(), ""}, want: nil},
		{name: "null with content", args: args{tpch.Null(), "x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(tt.args.dataType, tt.args.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate32(t *testing.T) {
	assert.Equal(t, "1996-03-13", FormatDate32(9568))
	assert.Equal(t, "1969-12-31", FormatDate32(-1))
}
