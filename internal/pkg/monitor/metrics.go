package monitor

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"wifiparse/internal/pkg/logger"
)

// HostInfo 主机静态信息
type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	Arch            string `json:"arch"`
	CPUCores        int    `json:"cpu_cores"`
	MemoryTotal     uint64 `json:"memory_total"`
	DiskTotal       uint64 `json:"disk_total"`
}

// SystemMetrics 系统指标
type SystemMetrics struct {
	CPUUsage         float64 `json:"cpu_usage"`
	MemoryUsage      float64 `json:"memory_usage"`
	DiskUsage        float64 `json:"disk_usage"`
	NetworkBytesSent int64   `json:"network_bytes_sent"`
	NetworkBytesRecv int64   `json:"network_bytes_recv"`
	Uptime           uint64  `json:"uptime"`
	Goroutines       int     `json:"goroutines"`
}

// GetSystemMetrics 获取系统指标
// 采集失败的单项指标记录告警日志后置零，不中断其余采集
func GetSystemMetrics() (*SystemMetrics, error) {
	metrics := &SystemMetrics{
		Goroutines: runtime.NumGoroutine(),
	}

	// CPU 使用率需要采样窗口，这里用 100ms 短窗口换取即时返回
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetSystemMetrics", "Failed to get CPU usage: "+err.Error(), logger.WarnLevel, nil)
	} else if len(cpuPercent) > 0 {
		metrics.CPUUsage = cpuPercent[0]
	}

	vMem, err := mem.VirtualMemory()
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetSystemMetrics", "Failed to get Memory usage: "+err.Error(), logger.WarnLevel, nil)
	} else {
		metrics.MemoryUsage = vMem.UsedPercent
	}

	// 根分区用量，Windows 下回退到 C:
	dUsage, err := disk.Usage("/")
	if err != nil {
		dUsage, err = disk.Usage("C:")
	}
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetSystemMetrics", "Failed to get Disk usage: "+err.Error(), logger.WarnLevel, nil)
	} else {
		metrics.DiskUsage = dUsage.UsedPercent
	}

	// 所有网卡合并的收发计数
	netIO, err := net.IOCounters(false)
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetSystemMetrics", "Failed to get Network stats: "+err.Error(), logger.WarnLevel, nil)
	} else if len(netIO) > 0 {
		metrics.NetworkBytesSent = int64(netIO[0].BytesSent)
		metrics.NetworkBytesRecv = int64(netIO[0].BytesRecv)
	}

	uptime, err := host.Uptime()
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetSystemMetrics", "Failed to get uptime: "+err.Error(), logger.WarnLevel, nil)
	} else {
		metrics.Uptime = uptime
	}

	return metrics, nil
}

// GetHostInfo 获取主机静态信息
func GetHostInfo() (*HostInfo, error) {
	info := &HostInfo{}

	hInfo, err := host.Info()
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetHostInfo", "Failed to get host info: "+err.Error(), logger.WarnLevel, nil)
	} else {
		info.Hostname = hInfo.Hostname
		info.OS = hInfo.OS
		info.Platform = hInfo.Platform
		info.PlatformVersion = hInfo.PlatformVersion
		info.KernelVersion = hInfo.KernelVersion
		info.Arch = hInfo.KernelArch
	}

	// host.Info 失败或字段为空时用 runtime 兜底
	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}

	cpuInfo, err := cpu.Info()
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetHostInfo", "Failed to get CPU info: "+err.Error(), logger.WarnLevel, nil)
		info.CPUCores = runtime.NumCPU()
	} else if len(cpuInfo) > 0 {
		cores := 0
		for _, c := range cpuInfo {
			cores += int(c.Cores)
		}
		if cores == 0 {
			cores = runtime.NumCPU()
		}
		info.CPUCores = cores
	} else {
		info.CPUCores = runtime.NumCPU()
	}

	vMem, err := mem.VirtualMemory()
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetHostInfo", "Failed to get Memory info: "+err.Error(), logger.WarnLevel, nil)
	} else {
		info.MemoryTotal = vMem.Total
	}

	dUsage, err := disk.Usage("/")
	if err != nil {
		dUsage, err = disk.Usage("C:")
	}
	if err != nil {
		logger.LogSystemEvent("Monitor", "GetHostInfo", "Failed to get Disk info: "+err.Error(), logger.WarnLevel, nil)
	} else {
		info.DiskTotal = dUsage.Total
	}

	return info, nil
}
