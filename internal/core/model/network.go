/**
 * 无线网络记录模型 (Core Domain)
 * @author: Sun977
 * @date: 2026.08.25
 * @description: 扫描输出解析后的统一网络记录，CLI 和 Server 模式共用。
 */

package model

// NetworkRecord 一条扫描到的无线网络记录
// Mac 为指针类型: 表格输出中该列存在(可能为空字符串)，JSON 输出中整体缺失
type NetworkRecord struct {
	Mac         *string `json:"mac,omitempty"` // BSSID，JSON 输出没有该字段时为 nil
	SSID        string  `json:"ssid"`          // 网络名称
	Channel     string  `json:"channel"`       // 信道，保留原始文本
	SignalLevel string  `json:"signal_level"`  // 信号强度 (dBm)
	Security    string  `json:"security"`      // 安全模式
}

// Headers 实现 TabularData 接口
// SSID    | MAC               | Signal | Channel | Security
// OurTest | 00:35:1a:90:56:03 | -70    | 112     | WPA2(PSK/AES/AES)
func (r NetworkRecord) Headers() []string {
	// 表头列
	return []string{"SSID", "MAC", "Signal", "Channel", "Security"}
}

// Rows 实现 TabularData 接口
func (r NetworkRecord) Rows() [][]string {
	mac := "N/A"
	if r.Mac != nil {
		mac = *r.Mac
	}

	return [][]string{{r.SSID, mac, r.SignalLevel, r.Channel, r.Security}}
}
