package codec

// 编解码配置默认值
const (
	// defaultABIDir 默认不预加载任何 ABI 目录
	defaultABIDir = ""

	// defaultStrictDecode 默认严格解码：校验填充位、布尔取值、偏移对齐与 UTF-8
	defaultStrictDecode = true

	// defaultMetricsEnabled 默认启用编解码指标
	defaultMetricsEnabled = true
)
