package analyses

import (
	"context"
	"time"

	"resume-check/report/model"
)

// Producer turns an uploaded resume into an analysis report.
type Producer interface {
	Produce(ctx context.Context, fileName string) (model.AnalysisReport, error)
}

// MockProducer returns the fixed sample report for any file. Delay simulates
// analysis latency and honors cancellation.
type MockProducer struct {
	Delay time.Duration
}

// Produce implements Producer.
func (p MockProducer) Produce(ctx context.Context, fileName string) (model.AnalysisReport, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return model.AnalysisReport{}, ctx.Err()
		case <-timer.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return model.AnalysisReport{}, err
	}
	return model.Sample(fileName), nil
}
