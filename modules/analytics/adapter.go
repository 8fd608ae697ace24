package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AnalyticsPort is the typed client for analytics services.
type AnalyticsPort interface {
	GetSummary(ctx context.Context) (*Summary, error)
}

type analyticsAdapter struct {
	container mono.ServiceContainer
}

// NewAnalyticsAdapter creates a new adapter for analytics services.
func NewAnalyticsAdapter(container mono.ServiceContainer) AnalyticsPort {
	if container == nil {
		panic("analytics adapter requires non-nil ServiceContainer")
	}
	return &analyticsAdapter{container: container}
}

// GetSummary returns the current analytics summary.
func (a *analyticsAdapter) GetSummary(ctx context.Context) (*Summary, error) {
	req := GetAnalyticsRequest{}
	var resp Summary
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-analytics",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-analytics service call failed: %w", err)
	}
	return &resp, nil
}
