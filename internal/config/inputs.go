package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoIssueNumber はイベントから issue / pull request 番号を取得できない場合のエラー
var ErrNoIssueNumber = errors.New("no issue or pull request number in the triggering event")

// ConfigError は入力値の不正を表す
type ConfigError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid input %s", e.Field)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += fmt.Sprintf(" (%v)", e.Err)
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IssueNumberSource はトリガーイベントから番号を取得する
type IssueNumberSource interface {
	IssueNumber() (int, error)
}

// ParseLabels は改行区切りの入力をラベル一覧に変換する（空行は除外）
func ParseLabels(raw string) []string {
	var labels []string
	for _, line := range strings.Split(raw, "\n") {
		// CRLF の改行だけを取り除き、ラベル名はそのまま渡す
		label := strings.TrimSuffix(line, "\r")
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// ParseRepository は "owner/repo" を分解する
func ParseRepository(s string) (string, string, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", &ConfigError{Field: "repo", Value: s, Reason: `must be in the form "owner/repo"`}
	}
	return owner, repo, nil
}

// ResolveIssueNumber は明示的な入力を優先し、空であればイベントから番号を解決する
func ResolveIssueNumber(input string, event IssueNumberSource) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		if event == nil {
			return 0, &ConfigError{Field: "number", Reason: "is empty and no event context is available", Err: ErrNoIssueNumber}
		}
		number, err := event.IssueNumber()
		if err != nil {
			return 0, &ConfigError{Field: "number", Reason: "is empty and could not be read from the event", Err: err}
		}
		if number <= 0 {
			return 0, &ConfigError{Field: "number", Reason: "is empty and the event has no issue number", Err: ErrNoIssueNumber}
		}
		return number, nil
	}

	number, err := strconv.Atoi(input)
	if err != nil {
		return 0, &ConfigError{Field: "number", Value: input, Reason: "must be an integer", Err: err}
	}
	if number <= 0 {
		return 0, &ConfigError{Field: "number", Value: input, Reason: "must be a positive integer"}
	}
	return number, nil
}
