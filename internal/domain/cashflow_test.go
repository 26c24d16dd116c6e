package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCashflow_Validate(t *testing.T) {
	tests := []struct {
		name     string
		cashflow Cashflow
		wantErr  bool
		errMsg   string
	}{
		{
			name: "Contribution with negative amount should pass",
			cashflow: Cashflow{
				ID:       uuid.New(),
				Amount:   decimal.NewFromInt(-100_000),
				FlowType: FlowTypeContribution,
			},
			wantErr: false,
		},
		{
			name: "Contribution with positive amount should fail",
			cashflow: Cashflow{
				ID:       uuid.New(),
				Amount:   decimal.NewFromInt(100_000),
				FlowType: FlowTypeContribution,
			},
			wantErr: true,
			errMsg:  "contribution amount must be negative",
		},
		{
			name: "Contribution with zero amount should fail",
			cashflow: Cashflow{
				ID:       uuid.New(),
				Amount:   decimal.Zero,
				FlowType: FlowTypeContribution,
			},
			wantErr: true,
			errMsg:  "contribution amount must be negative",
		},
		{
			name: "Distribution with positive amount should pass",
			cashflow: Cashflow{
				ID:       uuid.New(),
				Amount:   decimal.NewFromInt(25_000),
				FlowType: FlowTypeDistribution,
			},
			wantErr: false,
		},
		{
			name: "Distribution with negative amount should fail",
			cashflow: Cashflow{
				ID:       uuid.New(),
				Amount:   decimal.NewFromInt(-25_000),
				FlowType: FlowTypeDistribution,
			},
			wantErr: true,
			errMsg:  "DISTRIBUTION amount must be non-negative",
		},
		{
			name: "NAV with zero amount should pass",
			cashflow: Cashflow{
				ID:       uuid.New(),
				Amount:   decimal.Zero,
				FlowType: FlowTypeNAV,
			},
			wantErr: false,
		},
		{
			name: "Unknown flow type should fail",
			cashflow: Cashflow{
				ID:       uuid.New(),
				Amount:   decimal.NewFromInt(100),
				FlowType: FlowType("DIVIDEND"),
			},
			wantErr: true,
			errMsg:  "flow type must be CONTRIBUTION, DISTRIBUTION or NAV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cashflow.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSortCashflows(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	first := &Cashflow{Date: day(2020, time.January, 1), Description: "first"}
	dupA := &Cashflow{Date: day(2021, time.June, 1), Description: "dup-a"}
	dupB := &Cashflow{Date: day(2021, time.June, 1), Description: "dup-b"}
	last := &Cashflow{Date: day(2022, time.March, 15), Description: "last"}

	cashflows := []*Cashflow{last, dupA, first, dupB}
	SortCashflows(cashflows)

	assert.Equal(t, "first", cashflows[0].Description)
	assert.Equal(t, "last", cashflows[3].Description)
	// stable: duplicate dates keep their relative order
	assert.Equal(t, "dup-a", cashflows[1].Description)
	assert.Equal(t, "dup-b", cashflows[2].Description)
}
