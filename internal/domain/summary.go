package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportSummary — итог одного прогона импорта.
type ImportSummary struct {
	RunID     uuid.UUID     `json:"run_id"`
	File      string        `json:"file"`
	Orders    int           `json:"orders"`
	Customers int           `json:"customers"`
	Products  int           `json:"products"`
	LineItems int           `json:"line_items"`
	Duration  time.Duration `json:"duration"`
	DryRun    bool          `json:"dry_run"`
}

// NewImportSummary — сводка по накопленному графу.
func NewImportSummary(runID uuid.UUID, file string, g *Graph) ImportSummary {
	s := ImportSummary{RunID: runID, File: file}
	if g != nil {
		s.Orders = len(g.Orders)
		s.Customers = len(g.Customers)
		s.Products = len(g.Products)
		s.LineItems = g.LineItemsCount()
	}
	return s
}
