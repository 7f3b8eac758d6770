package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/douhashi/remove-labels/internal/actions"
	"github.com/douhashi/remove-labels/internal/config"
	gh "github.com/douhashi/remove-labels/internal/github"
	"github.com/douhashi/remove-labels/internal/logger"
	"github.com/douhashi/remove-labels/internal/step"
	"github.com/douhashi/remove-labels/internal/subscription"
	"github.com/douhashi/remove-labels/internal/version"
	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	rootCmd *cobra.Command
	appLog  logger.Logger
)

func init() {
	rootCmd = newRootCmd()
}

// NewRootCmd creates a new root command
func NewRootCmd() *cobra.Command {
	return newRootCmd()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-labels",
		Short: "issue / pull request からラベルを削除する",
		Long: `remove-labelsは、指定したissueまたはpull requestから
ラベルを1つずつ削除するGitHub Actions用のステップです。`,
		Version: version.Get().String(),
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var opts []logger.Option
			if verbose {
				opts = append(opts, logger.WithLevel("debug"))
			}
			opts = append(opts, logger.WithOutput(cmd.ErrOrStderr()))

			var err error
			appLog, err = logger.NewFromEnv(opts...)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		RunE: runRemoveLabels,
	}

	flags := cmd.Flags()
	flags.String(config.FlagNames["github_token"], "", "GitHubトークン (INPUT_GITHUB_TOKEN)")
	flags.String(config.FlagNames["labels"], "", "削除するラベル（改行区切り） (INPUT_LABELS)")
	flags.String(config.FlagNames["repo"], "", "対象リポジトリ owner/repo (INPUT_REPO)")
	flags.String(config.FlagNames["number"], "", "issue / pull request 番号。省略時はイベントから取得 (INPUT_NUMBER)")
	flags.String(config.FlagNames["fail_on_error"], "", `"true" の場合、削除失敗でステップを失敗させる (INPUT_FAIL_ON_ERROR)`)
	flags.Lookup(config.FlagNames["fail_on_error"]).NoOptDefVal = "true"

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")

	return cmd
}

func runRemoveLabels(cmd *cobra.Command, args []string) error {
	// ここから先のエラーはアノテーションとして報告済みか、Executeで出力する
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	log := appLog
	if log == nil {
		log = logger.NewNop()
	}

	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	workflow := actions.New(githubactions.WithWriter(cmd.OutOrStdout()))

	// イベントファイルが壊れていても確認は行う。番号の解決時に改めて報告される
	repository, err := workflow.Repository()
	if err != nil {
		log.Debug("failed to read workflow repository", "error", err.Error())
	}

	checker := subscription.NewChecker(
		cfg.SubscriptionEndpoint(repository),
		cfg.SubscriptionTimeout,
		subscription.WithLogger(log),
		subscription.WithNotifier(workflow),
	)

	newRemover := func(cfg *config.Config) (step.Remover, error) {
		client, err := gh.NewClient(cfg.GitHubToken,
			gh.WithBaseURL(cfg.GitHubAPIURL),
			gh.WithLogger(log),
		)
		if err != nil {
			return nil, err
		}
		return gh.NewLabelRemover(client.Issues(), log, gh.WithAnnotator(workflow)), nil
	}

	log.Debug("starting remove-labels",
		"version", version.Get().Version,
		"repo", cfg.Repo,
		"fail_on_error", cfg.FailOnError,
	)

	runner := step.NewRunner(cfg, checker, newRemover, workflow, workflow, log)
	return runner.Run(context.Background())
}

// Execute はルートコマンドを実行し、失敗時は終了コード1で終了する
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !alreadyReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// alreadyReported はエラーが ::error:: アノテーションとして出力済みかを判定する
func alreadyReported(err error) bool {
	var failed *step.FailedError
	return errors.Is(err, subscription.ErrSubscriptionInvalid) || errors.As(err, &failed)
}
