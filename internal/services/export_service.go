package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"
)

type exportService struct {
	quizService QuizService
	logger      *slog.Logger
}

func NewExportService(quizService QuizService, logger *slog.Logger) ExportService {
	return &exportService{
		quizService: quizService,
		logger:      logger,
	}
}

const attemptSheetName = "Attempts"

var attemptSheetHeaders = []string{
	"Attempt ID", "Quiz", "Quiz ID", "User", "Email", "User ID",
	"Score", "Correct", "Total Questions", "Completed", "Started", "Ended",
}

// AttemptSummariesWorkbook renders the teacher attempt summaries as a
// spreadsheet, one row per attempt.
func (s *exportService) AttemptSummariesWorkbook(ctx context.Context) (*excelize.File, error) {
	summaries, err := s.quizService.AttemptSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempt summaries: %w", err)
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(attemptSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("failed to drop default sheet", "error", err)
	}

	for col, header := range attemptSheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(attemptSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, summary := range summaries {
		values := []interface{}{
			summary.AttemptID,
			summary.QuizTitle,
			summary.QuizID,
			summary.Username,
			summary.Email,
			summary.UserID,
			derefInt(summary.Score),
			derefInt(summary.CorrectAnswers),
			derefInt(summary.TotalQuestions),
			summary.Completed,
			summary.StartTime.Format(time.RFC3339),
			formatTimePtr(summary.EndTime),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(attemptSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	s.logger.Info("attempt summary workbook generated", "rows", len(summaries))
	return f, nil
}

func derefInt(p *int) interface{} {
	if p == nil {
		return ""
	}
	return *p
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
