package model

import (
	"time"
)

// ParseFormat 定义扫描输出格式
type ParseFormat string

const (
	FormatAirport  ParseFormat = "airport"  // airport -s 表格输出
	FormatProfiler ParseFormat = "profiler" // system_profiler SPAirPortDataType -json 输出
)

// ParseResult 一次解析调用的结果
type ParseResult struct {
	Format      ParseFormat     `json:"format"`
	Records     []NetworkRecord `json:"records"`
	RecordCount int             `json:"record_count"`
	StartTime   time.Time       `json:"start_time"`
	EndTime     time.Time       `json:"end_time"`
}

// Duration 解析耗时
func (r *ParseResult) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Headers 实现 TabularData 接口，聚合所有记录
func (r *ParseResult) Headers() []string {
	return NetworkRecord{}.Headers()
}

// Rows 实现 TabularData 接口
func (r *ParseResult) Rows() [][]string {
	rows := make([][]string, 0, len(r.Records))
	for _, record := range r.Records {
		rows = append(rows, record.Rows()...)
	}
	return rows
}
