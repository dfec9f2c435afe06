// Package repo 提供本地仓库的发现与诊断功能。
//
// 主要功能：
//   - Scan: 惰性遍历目录树查找 .git、.svn、.hg、_darcs 仓库，找到后不再深入
//   - ScanRepos: 收集 Scan 的结果并排序
//   - CheckHeadReachable / CheckPermissions / CheckPerformance: doctor 使用的检查项
package repo
