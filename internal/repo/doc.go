// Package repo 把本地 Git 仓库作为数据源：扫描目录找到仓库，
// 再统计每个仓库的提交数，生成可排名配色的序列。
package repo
