package options

// OutputOptions 定义结果输出的通用参数
type OutputOptions struct {
	OutputJson string // -oj, --outputJson
	OutputCsv  string // -oc, --outputCsv
}

// Enabled 判断是否配置了任意一种文件输出
func (o *OutputOptions) Enabled() bool {
	return o.OutputJson != "" || o.OutputCsv != ""
}
