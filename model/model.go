// Package model defines the typed records stored in the inspection datasets
// and the conversion of raw delimited fields into those records.
package model

// Business is a permitted food establishment.
type Business struct {
	BusinessID          int32   `parquet:"business_id"`
	Name                string  `parquet:"name"`
	Address             string  `parquet:"address"`
	City                string  `parquet:"city"`
	PostalCode          string  `parquet:"postal_code"`
	Latitude            float32 `parquet:"latitude"`
	Longitude           float32 `parquet:"longitude"`
	Phone               string  `parquet:"phone"`
	TaxCode             string  `parquet:"tax_code"`
	BusinessCertificate string  `parquet:"business_certificate"`
	ApplicationDate     string  `parquet:"application_date"`
	OwnerName           string  `parquet:"owner_name"`
	OwnerAddress        string  `parquet:"owner_address"`
	OwnerCity           string  `parquet:"owner_city"`
	OwnerState          string  `parquet:"owner_state"`
	OwnerZip            string  `parquet:"owner_zip"`
}

// Violation is a single violation recorded against a business.
type Violation struct {
	BusinessID      int32  `parquet:"business_id"`
	Date            string `parquet:"date"`
	ViolationTypeID int64  `parquet:"violation_type_id"`
	RiskCategory    string `parquet:"risk_category"`
	Description     string `parquet:"description"`
}

// Inspection is a scored inspection of a business.
type Inspection struct {
	BusinessID int32  `parquet:"business_id"`
	Score      int32  `parquet:"score"`
	Date       string `parquet:"date"`
	Type       string `parquet:"type"`
}
