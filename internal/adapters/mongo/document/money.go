package document

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	dec, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// decimal.String always yields a plain numeral
		panic(err)
	}
	return dec
}

func fromDecimal128(dec primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(dec.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func objectIDFromHex(id string) primitive.ObjectID {
	if id == "" {
		return primitive.NilObjectID
	}
	oid, _ := primitive.ObjectIDFromHex(id)
	return oid
}
