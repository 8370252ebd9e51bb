package model

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/vegasq/inspectcat/schema"
)

// binder converts positional raw fields of one entity. The first failure is
// kept and every later conversion becomes a no-op.
type binder struct {
	entity schema.Entity
	raw    []string
	err    error
}

func bind(entity schema.Entity, raw []string) *binder {
	b := &binder{entity: entity, raw: raw}
	if len(raw) != entity.Arity() {
		b.err = &FieldError{
			Kind: KindArity,
			Err:  errors.Newf("%s row has %d fields, want %d", entity.Name, len(raw), entity.Arity()),
		}
	}
	return b
}

func (b *binder) str(i int) string {
	if b.err != nil {
		return ""
	}
	return b.raw[i]
}

func (b *binder) int32(i int) int32 {
	if b.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(b.raw[i], 10, 32)
	if err != nil {
		b.fail(i, KindInteger, err)
		return 0
	}
	return int32(v)
}

func (b *binder) int64(i int) int64 {
	if b.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(b.raw[i], 10, 64)
	if err != nil {
		b.fail(i, KindLong, err)
		return 0
	}
	return v
}

func (b *binder) float32(i int) float32 {
	if b.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(b.raw[i], 32)
	if err != nil {
		b.fail(i, KindFloat, err)
		return 0
	}
	return float32(v)
}

func (b *binder) fail(i int, kind Kind, err error) {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	b.err = &FieldError{
		Kind:  kind,
		Field: b.entity.Fields[i].Name,
		Value: b.raw[i],
		Err:   err,
	}
}

// BusinessFromFields builds a Business from a raw source row.
func BusinessFromFields(raw []string) (Business, error) {
	b := bind(schema.Business, raw)
	rec := Business{
		BusinessID:          b.int32(0),
		Name:                b.str(1),
		Address:             b.str(2),
		City:                b.str(3),
		PostalCode:          b.str(4),
		Latitude:            b.float32(5),
		Longitude:           b.float32(6),
		Phone:               b.str(7),
		TaxCode:             b.str(8),
		BusinessCertificate: b.str(9),
		ApplicationDate:     b.str(10),
		OwnerName:           b.str(11),
		OwnerAddress:        b.str(12),
		OwnerCity:           b.str(13),
		OwnerState:          b.str(14),
		OwnerZip:            b.str(15),
	}
	if b.err != nil {
		return Business{}, b.err
	}
	return rec, nil
}

// ViolationFromFields builds a Violation from a raw source row.
func ViolationFromFields(raw []string) (Violation, error) {
	b := bind(schema.Violation, raw)
	rec := Violation{
		BusinessID:      b.int32(0),
		Date:            b.str(1),
		ViolationTypeID: b.int64(2),
		RiskCategory:    b.str(3),
		Description:     b.str(4),
	}
	if b.err != nil {
		return Violation{}, b.err
	}
	return rec, nil
}

// InspectionFromFields builds an Inspection from a raw source row.
func InspectionFromFields(raw []string) (Inspection, error) {
	b := bind(schema.Inspection, raw)
	rec := Inspection{
		BusinessID: b.int32(0),
		Score:      b.int32(1),
		Date:       b.str(2),
		Type:       b.str(3),
	}
	if b.err != nil {
		return Inspection{}, b.err
	}
	return rec, nil
}
