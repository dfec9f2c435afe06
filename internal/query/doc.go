// Package query 将用户输入的仓库引用解析为结构化的 Locator。
//
// 支持三种形式（按优先级依次匹配）：
//   - <scheme>://[<username>[:<password>]@]<host>[:<port>]/<path>[.git]，scheme 为 http、https、ssh 或 git
//   - [<username>@]<host>:[/]<path>[.git]，等价于 ssh://<username>@<host>/<path>.git
//   - <path>，以 / 分隔的路径片段
package query
