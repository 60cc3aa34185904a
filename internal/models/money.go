package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is the uniform monetary type (2 decimal places). It serializes to a
// fixed two-decimal JSON string and is stored as Decimal128 in MongoDB.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a Money from a decimal value.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoneyFromFloat creates a Money from a float value.
func NewMoneyFromFloat(amount float64) Money {
	return Money{Decimal: decimal.NewFromFloat(amount).Round(2)}
}

// MarshalJSON emits a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(2).StringFixed(2))
}

// UnmarshalJSON accepts either a string or a number.
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(2)
	return nil
}

// MarshalBSONValue stores the amount as a Decimal128.
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(m.Decimal.Round(2).StringFixed(2))
	if err != nil {
		return bsontype.Null, nil, err
	}
	return bson.MarshalValue(d128)
}

// UnmarshalBSONValue reads Decimal128 plus the numeric types older documents
// may carry.
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Decimal128:
		d128, ok := raw.Decimal128OK()
		if !ok {
			return fmt.Errorf("money: invalid decimal128 value")
		}
		d, err := decimal.NewFromString(d128.String())
		if err != nil {
			return fmt.Errorf("money: parse decimal128: %w", err)
		}
		m.Decimal = d.Round(2)
		return nil
	case bsontype.Double:
		m.Decimal = decimal.NewFromFloat(raw.Double()).Round(2)
		return nil
	case bsontype.Int32:
		m.Decimal = decimal.NewFromInt32(raw.Int32())
		return nil
	case bsontype.Int64:
		m.Decimal = decimal.NewFromInt(raw.Int64())
		return nil
	case bsontype.Null:
		m.Decimal = decimal.Zero
		return nil
	default:
		return fmt.Errorf("money: unsupported bson type %s", t)
	}
}

// String returns the fixed two-decimal representation.
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
