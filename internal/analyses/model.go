package analyses

import (
	"time"

	"resume-check/report/model"
)

// Analysis is the report produced for one uploaded resume, owned by a
// browser session. A session holds at most one current analysis.
type Analysis struct {
	ID        string               `json:"analysisId"`
	SessionID string               `json:"-"`
	FileName  string               `json:"fileName"`
	MimeType  string               `json:"mimeType"`
	SizeBytes int64                `json:"sizeBytes"`
	Preview   string               `json:"preview"`
	Report    model.AnalysisReport `json:"report"`
	CreatedAt time.Time            `json:"createdAt"`
}

// clone returns a copy whose report lists are not shared with a.
func (a Analysis) clone() Analysis {
	a.Report = a.Report.Normalized()
	return a
}
