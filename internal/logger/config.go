package logger

import (
	"os"
	"strings"
)

// ConfigFromEnv は環境変数から設定を読み込む
//
// 優先順位: LOG_LEVEL > DEBUG / RUNNER_DEBUG > デフォルト(info)
func ConfigFromEnv() *Config {
	return configFromGetenv(os.Getenv)
}

func configFromGetenv(getenv func(string) string) *Config {
	config := &Config{
		Level:  "info",
		Format: "text",
	}

	// Actionsの「デバッグログを有効にして再実行」はRUNNER_DEBUG=1を設定する
	if isTrue(getenv("DEBUG")) || isTrue(getenv("RUNNER_DEBUG")) {
		config.Level = "debug"
	}

	if level := getenv("LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}

	if format := getenv("LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}

	return config
}

// NewFromEnv は環境変数から設定を読み込んでロガーを作成する
func NewFromEnv(opts ...Option) (Logger, error) {
	config := ConfigFromEnv()
	return New(append([]Option{
		WithLevel(config.Level),
		WithFormat(config.Format),
	}, opts...)...)
}

// isTrue は文字列がtrueを表すかチェックする
func isTrue(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
