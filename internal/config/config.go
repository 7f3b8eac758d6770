package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DefaultGitHubAPIURL は github.com のREST APIエンドポイント
	DefaultGitHubAPIURL = "https://api.github.com"
	// DefaultSubscriptionURL はサブスクリプション確認APIのURLテンプレート（%sにowner/repo）
	DefaultSubscriptionURL = "https://agent.api.stepsecurity.io/v1/github/%s/actions/subscription"
	// DefaultSubscriptionTimeout はサブスクリプション確認のタイムアウト
	DefaultSubscriptionTimeout = 3000 * time.Millisecond
)

// Config はステップの入力と実行環境の設定
type Config struct {
	GitHubToken string `mapstructure:"github_token"`
	// Labels は改行区切りの生の入力値
	Labels string `mapstructure:"labels"`
	// Repo は "owner/repo" 形式
	Repo string `mapstructure:"repo"`
	// Number は空の場合にトリガーイベントの番号を使う
	Number      string `mapstructure:"number"`
	FailOnError string `mapstructure:"fail_on_error"`

	GitHubAPIURL        string        `mapstructure:"github_api_url"`
	SubscriptionURL     string        `mapstructure:"subscription_url"`
	SubscriptionTimeout time.Duration `mapstructure:"subscription_timeout"`
}

// 設定キーと環境変数の対応（先に書いたものが優先）
var envBindings = map[string][]string{
	"github_token":         {"INPUT_GITHUB_TOKEN", "GITHUB_TOKEN"},
	"labels":               {"INPUT_LABELS"},
	"repo":                 {"INPUT_REPO", "GITHUB_REPOSITORY"},
	"number":               {"INPUT_NUMBER"},
	"fail_on_error":        {"INPUT_FAIL_ON_ERROR"},
	"github_api_url":       {"GITHUB_API_URL"},
	"subscription_url":     {"REMOVE_LABELS_SUBSCRIPTION_URL"},
	"subscription_timeout": {"REMOVE_LABELS_SUBSCRIPTION_TIMEOUT"},
}

// FlagNames は設定キーに対応するコマンドラインフラグ名
var FlagNames = map[string]string{
	"github_token":  "github-token",
	"labels":        "labels",
	"repo":          "repo",
	"number":        "number",
	"fail_on_error": "fail-on-error",
}

// NewConfig はデフォルト値を持つConfigを作成する
func NewConfig() *Config {
	return &Config{
		GitHubAPIURL:        DefaultGitHubAPIURL,
		SubscriptionURL:     DefaultSubscriptionURL,
		SubscriptionTimeout: DefaultSubscriptionTimeout,
	}
}

// Load は環境変数とフラグから設定を読み込む
//
// 優先順位: 明示的に指定されたフラグ > 環境変数 > デフォルト値。flagsはnilでもよい。
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("github_api_url", DefaultGitHubAPIURL)
	v.SetDefault("subscription_url", DefaultSubscriptionURL)
	v.SetDefault("subscription_timeout", DefaultSubscriptionTimeout)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if flags != nil {
		for key, name := range FlagNames {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	c := NewConfig()
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// サブスクリプション確認の前に検証する
	if c.SubscriptionTimeout <= 0 {
		return nil, &ConfigError{Field: "subscription_timeout", Value: c.SubscriptionTimeout.String(), Reason: "must be positive"}
	}

	return c, nil
}

// FailOnErrorEnabled は fail_on_error が "true" の場合のみ真を返す
func (c *Config) FailOnErrorEnabled() bool {
	return c.FailOnError == "true"
}

// LabelList は labels 入力を解析したラベル一覧を返す
func (c *Config) LabelList() []string {
	return ParseLabels(c.Labels)
}

// SubscriptionEndpoint は実行中のワークフローのリポジトリ（owner/repo）用のサブスクリプション確認URLを返す
func (c *Config) SubscriptionEndpoint(repository string) string {
	return fmt.Sprintf(c.SubscriptionURL, repository)
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return &ConfigError{Field: "github_token", Reason: "is required"}
	}
	if c.SubscriptionTimeout <= 0 {
		return &ConfigError{Field: "subscription_timeout", Value: c.SubscriptionTimeout.String(), Reason: "must be positive"}
	}
	return nil
}
