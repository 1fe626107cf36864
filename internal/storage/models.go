package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RunRecord is one persisted hypothesis test run.
type RunRecord struct {
	ID           uuid.UUID
	MenSource    string
	WomenSource  string
	Alpha        decimal.Decimal
	PValue       decimal.Decimal
	UStatistic   decimal.Decimal
	MenMatches   int
	WomenMatches int
	MenMean      decimal.Decimal
	WomenMean    decimal.Decimal
	Result       string
	CreatedAt    time.Time
}
