// Package actions はGitHub Actionsランナーとのやり取り（ワークフローコマンド、イベントコンテキスト）を扱う
package actions

import (
	"fmt"

	"github.com/sethvargo/go-githubactions"
)

// Workflow はランナーへのアノテーション出力とトリガーイベントの参照を提供する
type Workflow struct {
	action *githubactions.Action
}

// New は新しいWorkflowを作成する
func New(opts ...githubactions.Option) *Workflow {
	return &Workflow{action: githubactions.New(opts...)}
}

// Info は通常のログ行を出力する
func (w *Workflow) Info(msg string) {
	w.action.Infof("%s", msg)
}

// Warning は ::warning:: アノテーションを出力する
func (w *Workflow) Warning(msg string) {
	w.action.Warningf("%s", msg)
}

// Error は ::error:: アノテーションを出力する
func (w *Workflow) Error(msg string) {
	w.action.Errorf("%s", msg)
}

// Repository は GITHUB_REPOSITORY（owner/repo）を返す
func (w *Workflow) Repository() (string, error) {
	ctx, err := w.action.Context()
	if err != nil {
		return "", fmt.Errorf("failed to read workflow context: %w", err)
	}
	return ctx.Repository, nil
}

// IssueNumber はトリガーイベントの issue / pull request 番号を返す
//
// issue.number、pull_request.number、トップレベルの number の順に参照し、
// どれもなければ 0 を返す。
func (w *Workflow) IssueNumber() (int, error) {
	ctx, err := w.action.Context()
	if err != nil {
		return 0, fmt.Errorf("failed to read workflow context: %w", err)
	}
	return issueNumberFromEvent(ctx.Event), nil
}

func issueNumberFromEvent(event map[string]any) int {
	for _, key := range []string{"issue", "pull_request"} {
		if nested, ok := event[key].(map[string]any); ok {
			if number := numberField(nested); number > 0 {
				return number
			}
		}
	}
	return numberField(event)
}

// JSONの数値はfloat64としてデコードされる
func numberField(m map[string]any) int {
	if number, ok := m["number"].(float64); ok {
		return int(number)
	}
	return 0
}
