// rhq 管理本地仓库：列出 root 目录下已有的仓库，并把远程仓库 clone 到 root/<host>/<path>。
package main

import (
	"rhq/cmd"
)

// main 是程序的入口函数，负责启动 CLI 命令执行。
func main() {
	cmd.Execute()
}
