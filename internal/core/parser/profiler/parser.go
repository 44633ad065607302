/**
 * system_profiler JSON 输出解析器
 * @author: Sun977
 * @date: 2026.08.25
 * @description: 解析 system_profiler SPAirPortDataType -json 的嵌套 JSON 输出，
 * 把所有接口下扫描到的无线网络拍平成统一记录序列。
 */

package profiler

import (
	"encoding/json"

	"wifiparse/internal/core/model"
	"wifiparse/internal/core/parser"
)

const (
	// DefaultSecurityPrefix 安全模式字段携带的机器前缀
	DefaultSecurityPrefix = "spairport_security_mode_"
	// DefaultSignalSeparator 信号/噪声复合字段的分隔符
	DefaultSignalSeparator = "/"
)

// 文档结构镜像 system_profiler 的输出
// 必需字段用指针建模，缺失或为 null 时保持 nil，据此判定文档损坏
type spDocument struct {
	AirPortData *[]spDataType `json:"SPAirPortDataType"`
}

type spDataType struct {
	Interfaces *[]spInterface `json:"spairport_airport_interfaces"`
}

type spInterface struct {
	// 接口附近没有其他无线网络时该列表整体缺失
	Networks *[]spNetwork `json:"spairport_airport_other_local_wireless_networks"`
}

type spNetwork struct {
	Name         *string `json:"_name"`
	Channel      *string `json:"spairport_network_channel"`
	SecurityMode *string `json:"spairport_security_mode"`
	SignalNoise  *string `json:"spairport_signal_noise"`
}

// Parser 解析 system_profiler 的 JSON 输出
type Parser struct {
	securityPrefix  string
	signalSeparator string
}

// NewParser 创建 JSON 输出解析器
// 空参数使用默认的前缀和分隔符
func NewParser(securityPrefix, signalSeparator string) *Parser {
	if securityPrefix == "" {
		securityPrefix = DefaultSecurityPrefix
	}
	if signalSeparator == "" {
		signalSeparator = DefaultSignalSeparator
	}
	return &Parser{
		securityPrefix:  securityPrefix,
		signalSeparator: signalSeparator,
	}
}

// Format 返回解析器对应的输出格式
func (p *Parser) Format() model.ParseFormat {
	return model.FormatProfiler
}

// Parse 解析 JSON 输出
// 文档不符合预期结构时整体失败，不做部分恢复；
// 接口下的网络列表缺失表示零个网络，不是错误
func (p *Parser) Parse(text string) ([]model.NetworkRecord, error) {
	var doc spDocument
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &parser.MalformedDocumentError{Reason: "invalid json document", Err: err}
	}

	if doc.AirPortData == nil {
		return nil, &parser.MalformedDocumentError{Reason: "missing key SPAirPortDataType"}
	}

	records := make([]model.NetworkRecord, 0)
	for _, dataType := range *doc.AirPortData {
		if dataType.Interfaces == nil {
			return nil, &parser.MalformedDocumentError{Reason: "missing key spairport_airport_interfaces"}
		}
		for _, iface := range *dataType.Interfaces {
			if iface.Networks == nil {
				continue
			}
			for _, network := range *iface.Networks {
				record, err := p.toRecord(network)
				if err != nil {
					return nil, err
				}
				records = append(records, record)
			}
		}
	}

	return records, nil
}

// toRecord 把一个网络条目转换为统一记录
// 网络条目的四个字段都是必需的；MAC 在该格式中始终缺失
func (p *Parser) toRecord(network spNetwork) (model.NetworkRecord, error) {
	if network.Name == nil {
		return model.NetworkRecord{}, &parser.MalformedDocumentError{Reason: "network entry missing key _name"}
	}
	if network.Channel == nil {
		return model.NetworkRecord{}, &parser.MalformedDocumentError{Reason: "network entry missing key spairport_network_channel"}
	}
	if network.SecurityMode == nil {
		return model.NetworkRecord{}, &parser.MalformedDocumentError{Reason: "network entry missing key spairport_security_mode"}
	}
	if network.SignalNoise == nil {
		return model.NetworkRecord{}, &parser.MalformedDocumentError{Reason: "network entry missing key spairport_signal_noise"}
	}

	return model.NetworkRecord{
		SSID:        *network.Name,
		Channel:     *network.Channel,
		Security:    parser.StripSecurityPrefix(*network.SecurityMode, p.securityPrefix),
		SignalLevel: parser.ExtractSignalLevel(*network.SignalNoise, p.signalSeparator),
	}, nil
}
