package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/edosept/edo-tsdn2024-ml-classifying-diseases/internal/domain"
)

// KV 键与保留时长：
// dummy-data:run:<run_id>:summary 存运行参数+分组统计的 JSON，
// dummy-data:latest-run 指向最近一次成功运行的 run_id
const (
	runSummaryKeyPattern = "dummy-data:run:%s:summary"
	latestRunKey         = "dummy-data:latest-run"
	publishTTL           = 24 * time.Hour
)

// publishedRun 发布到 KV 的载荷
type publishedRun struct {
	Run     *domain.GenerationRun `json:"run"`
	Summary *Summary              `json:"summary"`
}

// publishRun 把运行摘要写入 KV，供监控面板和后续运行查询
func (g *Generator) publishRun(ctx context.Context, run *domain.GenerationRun, summary *Summary) error {
	payload, err := json.Marshal(publishedRun{Run: run, Summary: summary})
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	key := fmt.Sprintf(runSummaryKeyPattern, run.RunID)
	if err := g.kv.Set(ctx, key, string(payload), publishTTL); err != nil {
		return fmt.Errorf("failed to publish run summary: %w", err)
	}
	if err := g.kv.Set(ctx, latestRunKey, run.RunID, publishTTL); err != nil {
		return fmt.Errorf("failed to publish latest run pointer: %w", err)
	}
	return nil
}
