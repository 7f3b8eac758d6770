package main

import (
	"os"
	"strings"
	"testing"

	"github.com/douhashi/remove-labels/internal/config"
)

// TestActionMetadata はaction.ymlが設定キーと一致する入力を宣言しているか検証する
func TestActionMetadata(t *testing.T) {
	content, err := os.ReadFile("action.yml")
	if err != nil {
		t.Fatalf("failed to read action.yml: %v", err)
	}
	contentStr := string(content)

	for key := range config.FlagNames {
		t.Run(key, func(t *testing.T) {
			if !strings.Contains(contentStr, "\n  "+key+":") {
				t.Errorf("action.yml does not declare input: %s", key)
			}
		})
	}

	t.Run("Dockerで実行する", func(t *testing.T) {
		if !strings.Contains(contentStr, "using: 'docker'") {
			t.Error("action.yml must run with docker")
		}
		if _, err := os.Stat("Dockerfile"); os.IsNotExist(err) {
			t.Error("Dockerfile does not exist")
		}
	})
}
