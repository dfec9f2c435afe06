// Package config 提供 rhq 的配置管理功能。
//
// 配置文件存储在 ~/.config/rhq/config.yaml，使用 YAML 格式。
// 支持的配置项包括仓库根目录、默认主机、clone 协议与后端、扫描排除目录。
// 所有配置项都可以通过 RHQ_ 前缀的环境变量覆盖。
package config
