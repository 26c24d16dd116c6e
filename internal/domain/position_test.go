package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPosition_Validate(t *testing.T) {
	tests := []struct {
		name     string
		position Position
		wantErr  bool
		errMsg   string
	}{
		{
			name: "Valid active position should pass",
			position: Position{
				ID:           uuid.New(),
				InvestAmount: decimal.NewFromInt(1_000_000),
				Shares:       decimal.NewFromInt(200_000),
				Status:       PositionStatusActive,
			},
			wantErr: false,
		},
		{
			name: "Zero invest amount should fail",
			position: Position{
				ID:           uuid.New(),
				InvestAmount: decimal.Zero,
				Shares:       decimal.NewFromInt(100),
				Status:       PositionStatusActive,
			},
			wantErr: true,
			errMsg:  "invest amount must be positive",
		},
		{
			name: "Negative shares should fail",
			position: Position{
				ID:           uuid.New(),
				InvestAmount: decimal.NewFromInt(1000),
				Shares:       decimal.NewFromInt(-5),
				Status:       PositionStatusRealized,
			},
			wantErr: true,
			errMsg:  "shares must be positive",
		},
		{
			name: "Unknown status should fail",
			position: Position{
				ID:           uuid.New(),
				InvestAmount: decimal.NewFromInt(1000),
				Shares:       decimal.NewFromInt(100),
				Status:       PositionStatus("CLOSED"),
			},
			wantErr: true,
			errMsg:  "status must be ACTIVE, REALIZED or WRITTEN_OFF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.position.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPosition_CurrentValue(t *testing.T) {
	nav := decimal.RequireFromString("7.80")
	position := Position{
		Shares:    decimal.NewFromInt(400_000),
		NAVLatest: &nav,
	}
	assert.True(t, decimal.NewFromInt(3_120_000).Equal(position.CurrentValue()))

	// a position with no NAV mark yet is worth zero
	position.NAVLatest = nil
	assert.True(t, decimal.Zero.Equal(position.CurrentValue()))
}
