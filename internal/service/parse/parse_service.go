/**
 * 解析服务
 * @author: sun977
 * @date: 2026.08.25
 * @description: 管理已注册的解析器并执行解析请求
 * @func: 解析器注册、查询、文本解析
 */
package parse

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"wifiparse/internal/core/factory"
	"wifiparse/internal/core/model"
	"wifiparse/internal/core/parser"
	"wifiparse/internal/pkg/logger"
)

// ParseService 解析服务接口
type ParseService interface {
	// ==================== 解析器管理 ====================
	Register(p parser.Parser)                            // 注册解析器
	Get(format model.ParseFormat) (parser.Parser, error) // 获取指定格式的解析器
	Formats() []model.ParseFormat                        // 列出已注册的格式

	// ==================== 解析执行 ====================
	ParseText(format model.ParseFormat, text, source string) (*model.ParseResult, error) // 解析文本，source 仅用于日志
}

// parseService 解析服务实现
type parseService struct {
	parsers map[model.ParseFormat]parser.Parser
	mu      sync.RWMutex
}

// NewParseService 创建解析服务实例并注册内置解析器
func NewParseService() ParseService {
	s := &parseService{
		parsers: make(map[model.ParseFormat]parser.Parser),
	}

	// 注册内置解析器
	s.Register(factory.NewAirportParser())
	s.Register(factory.NewProfilerParser())

	return s
}

// ==================== 解析器管理实现 ====================

// Register 注册一个解析器，同格式的后注册者覆盖先注册者
func (s *parseService) Register(p parser.Parser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsers[p.Format()] = p
}

// Get 获取指定格式的解析器
func (s *parseService) Get(format model.ParseFormat) (parser.Parser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.parsers[format]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("no parser registered for format: %s", format)
}

// Formats 列出已注册的格式，按名称排序
func (s *parseService) Formats() []model.ParseFormat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	formats := make([]model.ParseFormat, 0, len(s.parsers))
	for format := range s.parsers {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool {
		return formats[i] < formats[j]
	})
	return formats
}

// ==================== 解析执行实现 ====================

// ParseText 按指定格式解析扫描输出文本
// 解析失败时不返回部分结果
func (s *parseService) ParseText(format model.ParseFormat, text, source string) (*model.ParseResult, error) {
	p, err := s.Get(format)
	if err != nil {
		return nil, err
	}

	if source == "" {
		source = "text"
	}

	startTime := time.Now()
	records, err := p.Parse(text)
	endTime := time.Now()
	duration := endTime.Sub(startTime).Milliseconds()

	if err != nil {
		logger.LogParseOperation(string(format), source, "failed", 0, duration, map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	logger.LogParseOperation(string(format), source, "completed", len(records), duration, nil)

	return &model.ParseResult{
		Format:      format,
		Records:     records,
		RecordCount: len(records),
		StartTime:   startTime,
		EndTime:     endTime,
	}, nil
}
