package query

import (
	"context"

	"github.com/vegasq/inspectcat/model"
	"github.com/vegasq/inspectcat/output"
)

const (
	// HighRisk is the violation risk category the high-risk report keeps.
	HighRisk = "High Risk"

	// DefaultHighRiskLimit caps the high-risk report.
	DefaultHighRiskLimit = 20
	// DefaultLowScoreThreshold is the exclusive upper bound of the low-score report.
	DefaultLowScoreThreshold int32 = 60

	highRiskTitle = "RESTAURANTS WITH HIGH RISKS"
	lowScoreTitle = "RESTAURANTS WITH LOW INSPECTION SCORES"
)

// HighRiskPlace is a business with one of its high-risk violations.
type HighRiskPlace struct {
	Name         string
	Address      string
	City         string
	Description  string
	RiskCategory string
}

// LowScorePlace is a business with one of its inspection scores.
type LowScorePlace struct {
	BusinessID int32
	Name       string
	Address    string
	City       string
	Score      int32
}

// HighRiskPlaces joins businesses with their violations, keeps high-risk
// violations and returns at most limit distinct places. No ordering is
// applied before the limit.
func HighRiskPlaces(businesses DataSet[model.Business], violations DataSet[model.Violation], limit int) DataSet[HighRiskPlace] {
	joined := Join(businesses, violations,
		func(b model.Business) int32 { return b.BusinessID },
		func(v model.Violation) int32 { return v.BusinessID },
	)
	risky := joined.Filter(func(p Pair[model.Business, model.Violation]) bool {
		return p.Right.RiskCategory == HighRisk
	})
	places := Map(risky, func(p Pair[model.Business, model.Violation]) HighRiskPlace {
		return HighRiskPlace{
			Name:         p.Left.Name,
			Address:      p.Left.Address,
			City:         p.Left.City,
			Description:  p.Right.Description,
			RiskCategory: p.Right.RiskCategory,
		}
	})
	return Distinct(places).First(limit)
}

// LowScorePlaces joins businesses with their inspections and returns the
// distinct (business, score) tuples scoring below threshold.
func LowScorePlaces(businesses DataSet[model.Business], inspections DataSet[model.Inspection], threshold int32) DataSet[LowScorePlace] {
	joined := Join(businesses, inspections,
		func(b model.Business) int32 { return b.BusinessID },
		func(i model.Inspection) int32 { return i.BusinessID },
	)
	places := Map(joined, func(p Pair[model.Business, model.Inspection]) LowScorePlace {
		return LowScorePlace{
			BusinessID: p.Left.BusinessID,
			Name:       p.Left.Name,
			Address:    p.Left.Address,
			City:       p.Left.City,
			Score:      p.Right.Score,
		}
	})
	return Distinct(places).Filter(func(p LowScorePlace) bool {
		return p.Score < threshold
	})
}

// PrintHighRiskPlaces evaluates HighRiskPlaces and writes the report through f.
func PrintHighRiskPlaces(ctx context.Context, f output.Formatter, businesses DataSet[model.Business], violations DataSet[model.Violation], limit int) error {
	places, err := HighRiskPlaces(businesses, violations, limit).Collect(ctx)
	if err != nil {
		return err
	}
	t := &output.Table{
		Title:   highRiskTitle,
		Columns: []string{"name", "address", "city", "description", "risk_category"},
		Rows:    make([][]interface{}, len(places)),
	}
	for i, p := range places {
		t.Rows[i] = []interface{}{p.Name, p.Address, p.City, p.Description, p.RiskCategory}
	}
	return f.Format(t)
}

// PrintLowScorePlaces evaluates LowScorePlaces and writes the report through f.
func PrintLowScorePlaces(ctx context.Context, f output.Formatter, businesses DataSet[model.Business], inspections DataSet[model.Inspection], threshold int32) error {
	places, err := LowScorePlaces(businesses, inspections, threshold).Collect(ctx)
	if err != nil {
		return err
	}
	t := &output.Table{
		Title:   lowScoreTitle,
		Columns: []string{"business_id", "name", "address", "city", "score"},
		Rows:    make([][]interface{}, len(places)),
	}
	for i, p := range places {
		t.Rows[i] = []interface{}{p.BusinessID, p.Name, p.Address, p.City, p.Score}
	}
	return f.Format(t)
}
