package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Company represents the portfolio company a position invests in
// Sector is the grouping key used by the sector-level rollup
type Company struct {
	ID       uuid.UUID
	Name     string
	Ticker   string
	Sector   string
	Currency string
}

// Validate ensures the company adheres to domain rules
func (c *Company) Validate() error {
	if c.Name == "" {
		return errors.New("company name cannot be empty")
	}
	if c.Ticker == "" {
		return errors.New("company ticker cannot be empty")
	}
	if c.Sector == "" {
		return errors.New("company sector cannot be empty")
	}

	return nil
}
