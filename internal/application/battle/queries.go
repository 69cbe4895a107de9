package battle

import (
	"context"
	"fmt"

	"github.com/andrescamacho/shipforge-go/internal/application/mediator"
	"github.com/andrescamacho/shipforge-go/internal/domain/combat"
)

// GetReportQuery fetches one stored battle report
type GetReportQuery struct {
	ReportID string
}

// ListReportsQuery lists the most recent battle reports, newest first
type ListReportsQuery struct {
	Limit int
}

type ReportsResponse struct {
	Reports []*combat.Report
}

type ReportQueryHandler struct {
	reports combat.ReportRepository
}

func NewReportQueryHandler(reports combat.ReportRepository) *ReportQueryHandler {
	return &ReportQueryHandler{reports: reports}
}

// Handle executes a report query
func (h *ReportQueryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch q := request.(type) {
	case *GetReportQuery:
		report, err := h.reports.FindByID(ctx, q.ReportID)
		if err != nil {
			return nil, err
		}
		return &ReportsResponse{Reports: []*combat.Report{report}}, nil

	case *ListReportsQuery:
		limit := q.Limit
		if limit <= 0 {
			limit = 20
		}
		reports, err := h.reports.List(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list battle reports: %w", err)
		}
		return &ReportsResponse{Reports: reports}, nil
	}
	return nil, fmt.Errorf("invalid request type")
}

// RegisterHandlers wires the battle command and report queries into m
func RegisterHandlers(m mediator.Mediator, run *RunBattleHandler, reports combat.ReportRepository) error {
	if err := mediator.RegisterHandler[*RunBattleCommand](m, run); err != nil {
		return err
	}
	queries := NewReportQueryHandler(reports)
	if err := mediator.RegisterHandler[*GetReportQuery](m, queries); err != nil {
		return err
	}
	return mediator.RegisterHandler[*ListReportsQuery](m, queries)
}
