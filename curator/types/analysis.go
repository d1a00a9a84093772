// curator/types/analysis.go
package types

import (
	"curator/curator/sources/psql/models"
)

type AnalysisRequest struct {
	Text string `json:"text"`
	Kind string `json:"analysis_type"`
}

type AnalysisListResponse struct {
	Analyses []models.Analysis `json:"analyses"`
	Total    int64             `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}
