// Package colorize 实现排名配色：数值最大的条目使用固定的强调色，
// 其余条目按名次或按数值在两个端点色之间做线性渐变。
//
// Colorize 是纯函数，不持有任何状态，可在多个 goroutine 中同时调用。
package colorize
