/**
 * 结果输出接口定义
 * @author: Sun977
 * @date: 2026.08.25
 * @description: 定义解析结果输出的通用接口，解耦 File/Json/Csv 输出。
 */

package reporter

import (
	"context"

	"wifiparse/internal/core/model"
)

// TabularData 是一个可以被渲染为表格的数据接口
// 任何想要导出为 CSV 的结果都应该实现此接口
type TabularData interface {
	Headers() []string
	Rows() [][]string
}

// Reporter 定义解析结果输出的行为
type Reporter interface {
	// Report 输出解析结果
	Report(ctx context.Context, result *model.ParseResult) error
}

// MultiReporter 支持同时向多个目标输出 (e.g., Json + Csv)
type MultiReporter struct {
	reporters []Reporter
}

func NewMultiReporter(reporters ...Reporter) *MultiReporter {
	return &MultiReporter{
		reporters: reporters,
	}
}

func (m *MultiReporter) Report(ctx context.Context, result *model.ParseResult) error {
	var errs []error
	for _, r := range m.reporters {
		if err := r.Report(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0] // 简单返回第一个错误，实际可能需要聚合错误
	}
	return nil
}
