package dao

import (
	"context"
	"errors"

	"curator/curator/sources/psql/models"

	"gorm.io/gorm"
)

type AnalysisDAO struct {
	DB *gorm.DB
}

func NewAnalysisDAO(db *gorm.DB) *AnalysisDAO {
	return &AnalysisDAO{DB: db}
}

func (dao *AnalysisDAO) CreateAnalysis(ctx context.Context, userID int, originalText, kind, result string, confidence *float64, processingTime *string) (*models.Analysis, error) {
	analysis := models.Analysis{
		UserID:         userID,
		OriginalText:   originalText,
		Kind:           kind,
		Result:         result,
		Confidence:     confidence,
		ProcessingTime: processingTime,
	}
	if err := dao.DB.WithContext(ctx).Create(&analysis).Error; err != nil {
		return nil, err
	}
	return &analysis, nil
}

// ListAnalysesByUser returns one page of the user's analyses, newest first,
// plus the total matching count. The total ignores offset/limit.
func (dao *AnalysisDAO) ListAnalysesByUser(ctx context.Context, userID int, kind *string, offset, limit int) ([]models.Analysis, int64, error) {
	query := dao.DB.WithContext(ctx).Model(&models.Analysis{}).Where("user_id = ?", userID)
	if kind != nil {
		query = query.Where("analysis_type = ?", *kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var analyses []models.Analysis
	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, 0, err
	}
	return analyses, total, nil
}

// GetAnalysis is ownership-scoped: a row belonging to another user is
// indistinguishable from a missing one.
func (dao *AnalysisDAO) GetAnalysis(ctx context.Context, userID, id int) (*models.Analysis, error) {
	var analysis models.Analysis
	err := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&analysis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}

// DeleteAnalysis hard-deletes the row. Same ownership scoping as GetAnalysis.
func (dao *AnalysisDAO) DeleteAnalysis(ctx context.Context, userID, id int) error {
	res := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Analysis{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
