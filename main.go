// rankviz 把表格数据聚合成排名序列，第一名使用强调色，其余条目按名次或数值渐变着色。
package main

import (
	"rankviz/cmd"
)

// main 是程序的入口函数，负责启动 CLI 命令执行。
func main() {
	cmd.Execute()
}
