// curator/controllers/analysis.go
package controllers

import (
	"context"
	"fmt"
	"strings"

	"curator/curator/services/gemini"
	"curator/curator/sources/psql/dao"
	"curator/curator/sources/psql/models"
)

type AnalysisController struct {
	analysisDAO *dao.AnalysisDAO
	gemini      *gemini.Service
}

func NewAnalysisController(analysisDAO *dao.AnalysisDAO, geminiService *gemini.Service) *AnalysisController {
	return &AnalysisController{
		analysisDAO: analysisDAO,
		gemini:      geminiService,
	}
}

// Create runs one analysis and records the result under the user's account.
// The row is written only after the external call returns, in its own short
// transaction.
func (c *AnalysisController) Create(ctx context.Context, user *models.User, text, kindStr string) (*models.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	kind, err := gemini.ParseKind(kindStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	result, err := c.gemini.Analyze(ctx, text, kind)
	if err != nil {
		return nil, err
	}

	processingTime := fmt.Sprintf("%.2fs", result.Duration.Seconds())
	return c.analysisDAO.CreateAnalysis(ctx, user.ID, text, kind.String(), result.Text, result.Confidence, &processingTime)
}

// List pages through the user's analyses, newest first. The returned total
// ignores paging.
func (c *AnalysisController) List(ctx context.Context, user *models.User, kindStr string, offset, limit int) ([]models.Analysis, int64, error) {
	var kind *string
	if kindStr != "" {
		parsed, err := gemini.ParseKind(kindStr)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		s := parsed.String()
		kind = &s
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return c.analysisDAO.ListAnalysesByUser(ctx, user.ID, kind, offset, limit)
}

func (c *AnalysisController) Get(ctx context.Context, user *models.User, id int) (*models.Analysis, error) {
	return c.analysisDAO.GetAnalysis(ctx, user.ID, id)
}

func (c *AnalysisController) Delete(ctx context.Context, user *models.User, id int) error {
	return c.analysisDAO.DeleteAnalysis(ctx, user.ID, id)
}
