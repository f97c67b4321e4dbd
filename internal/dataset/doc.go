// Package dataset 负责把磁盘上的表格文件读成 Table，并聚合为排名序列。
//
// 支持 CSV（按候选编码依次尝试解码）和 XLSX 两种格式；
// 数值列中的缺失值和非数值统一按 0 处理。
package dataset
