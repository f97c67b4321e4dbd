// Package dashboard 定义声明式的图表页面，并实现
// 加载 → 过滤 → 聚合 → 归一化/排序 → 配色 → 输出 的渲染流程。
//
// 页面定义文件可以是 TOML 或 YAML：
//
//	[[pages]]
//	name = "subway"
//	file = "subway.csv"
//	date_column = "사용일자"
//	label = "역명"
//	values = ["승차총승객수", "하차총승객수"]
//	top = 10
//	sort = true
//	palette = "subway"
package dashboard
