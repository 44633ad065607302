/**
 * airport 表格输出解析器
 * @author: Sun977
 * @date: 2026.08.25
 * @description: 解析 airport -s 的固定列宽表格输出。
 * 列边界由表头行中各列标记的字节偏移动态推导，不硬编码列宽，
 * 以兼容不同版本工具的列宽变化。
 */

package airport

import (
	"bufio"
	"fmt"
	"strings"

	"wifiparse/internal/core/model"
	"wifiparse/internal/core/parser"
)

// DefaultMarkers 英文版表头的五个列标记
// 从左到右依次为: MAC地址列、信号列、信道列、信道右边界列、安全模式列
var DefaultMarkers = []string{"BSSID", "RSSI", "CHANNEL", "HT", "SECURITY"}

// headerSchema 由表头行推导出的列边界，单次解析内不变
type headerSchema struct {
	mac      int // MAC 列起始偏移，同时是 SSID 列的右边界
	signal   int
	channel  int
	htBound  int // 仅作为信道列的右边界，该列本身不取值
	security int // 安全模式列起始偏移，右边界是行尾
}

// discoverSchema 在表头行中定位各列标记的字节偏移
// 标记必须按给定顺序从左到右出现，每个标记从上一个标记之后开始查找，
// 任何一个找不到都返回 HeaderNotFoundError
func discoverSchema(header string, markers []string) (*headerSchema, error) {
	offsets := make([]int, len(markers))
	searchFrom := 0
	for i, marker := range markers {
		idx := strings.Index(header[searchFrom:], marker)
		if idx < 0 {
			return nil, &parser.HeaderNotFoundError{Marker: marker}
		}
		offsets[i] = searchFrom + idx
		searchFrom = offsets[i] + len(marker)
	}

	return &headerSchema{
		mac:      offsets[0],
		signal:   offsets[1],
		channel:  offsets[2],
		htBound:  offsets[3],
		security: offsets[4],
	}, nil
}

// minWidth 数据行可以被完整切分所需的最小字节长度
func (s *headerSchema) minWidth() int {
	return s.security
}

// sliceRow 按列边界把一个数据行切分为一条记录
// 调用方必须先保证 len(line) >= minWidth()
func (s *headerSchema) sliceRow(line string) model.NetworkRecord {
	mac := strings.TrimSpace(line[s.mac:s.signal])
	return model.NetworkRecord{
		SSID:        strings.TrimSpace(line[:s.mac]),
		Mac:         &mac,
		SignalLevel: strings.TrimSpace(line[s.signal:s.channel]),
		Channel:     strings.TrimSpace(line[s.channel:s.htBound]),
		Security:    strings.TrimSpace(line[s.security:]),
	}
}

// Parser 解析 airport -s 的表格输出
type Parser struct {
	markers []string
}

// NewParser 创建表格输出解析器
// markers 是表头中五个列标记的文本，本地化系统上可能不同；
// 为 nil 或数量不是五个时使用默认英文标记
func NewParser(markers []string) *Parser {
	if len(markers) != 5 {
		markers = DefaultMarkers
	}
	return &Parser{markers: markers}
}

// Format 返回解析器对应的输出格式
func (p *Parser) Format() model.ParseFormat {
	return model.FormatAirport
}

// Parse 解析表格输出
// 第一行是表头，之后每行产出一条记录；完全没有输出行时返回空列表。
// 任何一行短于列边界都视为表格损坏，整体解析失败
func (p *Parser) Parse(text string) ([]model.NetworkRecord, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))

	if !scanner.Scan() {
		// 零行输入是合法的空扫描结果
		return []model.NetworkRecord{}, nil
	}

	schema, err := discoverSchema(scanner.Text(), p.markers)
	if err != nil {
		return nil, err
	}

	records := make([]model.NetworkRecord, 0)
	lineNo := 1 // 表头是第1行
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) < schema.minWidth() {
			return nil, &parser.RowTooShortError{
				Line:     lineNo,
				Width:    len(line),
				Required: schema.minWidth(),
			}
		}
		records = append(records, schema.sliceRow(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return records, nil
}
