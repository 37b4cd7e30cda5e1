package app

import "fmt"

// コマンド名の定数。
const (
	// CommandServe はHTTP APIサーバーを起動する。
	CommandServe = "serve"
	// CommandHealthcheck は稼働中のサーバーのヘルスチェックを行う。
	// コンテナのHEALTHCHECK命令から使用される想定。
	CommandHealthcheck = "healthcheck"
)

// ParseCommand はコマンドライン引数からサブコマンドを解析する。
// 引数なしの場合はserveをデフォルトとする。
func ParseCommand(args []string) (string, error) {
	if len(args) == 0 {
		return CommandServe, nil
	}

	switch args[0] {
	case CommandServe, CommandHealthcheck:
		return args[0], nil
	default:
		return "", fmt.Errorf("unknown command: %s (available: %s, %s)", args[0], CommandServe, CommandHealthcheck)
	}
}
