package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/douhashi/remove-labels/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewClient(t *testing.T) {
	t.Run("トークンが空の場合はエラー", func(t *testing.T) {
		client, err := NewClient("")
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("デフォルトのAPI URLを使う", func(t *testing.T) {
		client, err := NewClient("token", WithBaseURL("https://api.github.com"))
		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com/", client.github.BaseURL.String())
	})

	t.Run("Enterprise ServerのURLを設定できる", func(t *testing.T) {
		client, err := NewClient("token", WithBaseURL("https://ghe.example.com/api/v3"))
		require.NoError(t, err)
		assert.Equal(t, "https://ghe.example.com/api/v3/", client.github.BaseURL.String())
	})

	t.Run("不正なURLはエラー", func(t *testing.T) {
		_, err := NewClient("token", WithBaseURL("not a url"))
		assert.Error(t, err)
	})
}

// fakeLabelAPI serves DELETE /repos/{owner}/{repo}/issues/{number}/labels/{name}.
type fakeLabelAPI struct {
	mu      sync.Mutex
	present map[string]bool
	calls   []string
	auth    []string
}

func (f *fakeLabelAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.auth = append(f.auth, r.Header.Get("Authorization"))

	const prefix = "/repos/owner/repo/issues/9/labels/"
	if r.Method != http.MethodDelete || !strings.HasPrefix(r.URL.Path, prefix) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}

	label := strings.TrimPrefix(r.URL.Path, prefix)
	f.calls = append(f.calls, label)

	w.Header().Set("Content-Type", "application/json")
	if !f.present[label] {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Label does not exist","documentation_url":"https://docs.github.com/rest"}`))
		return
	}

	delete(f.present, label)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`[]`))
}

func TestClient_RemoveLabelsAgainstServer(t *testing.T) {
	t.Run("実際のHTTP経由で一部失敗を集約する", func(t *testing.T) {
		api := &fakeLabelAPI{present: map[string]bool{"bug": true, "needs-triage": true}}
		server := httptest.NewServer(api)
		defer server.Close()

		core, observed := observer.New(zapcore.DebugLevel)
		log := logger.NewWithCore(core)

		client, err := NewClient("test-token", WithBaseURL(server.URL), WithLogger(log))
		require.NoError(t, err)

		remover := NewLabelRemover(client.Issues(), log)
		err = remover.RemoveLabels(context.Background(),
			NewRemovalRequest("owner", "repo", 9, []string{"bug", "wip", "needs-triage"}))

		var removalErr *LabelRemovalError
		require.ErrorAs(t, err, &removalErr)
		assert.Equal(t, []string{"wip"}, removalErr.Labels)
		assert.Equal(t, "failed to remove labels: wip", err.Error())

		classified := ClassifyError(removalErr.Outcomes[0].Err)
		assert.Equal(t, ErrorTypeNotFound, classified.Type)
		assert.Equal(t, "Label does not exist", classified.Message)

		assert.Equal(t, []string{"bug", "wip", "needs-triage"}, api.calls)
		assert.Empty(t, api.present, "成功したラベルは全体が失敗しても削除されたまま")
		for _, auth := range api.auth {
			assert.Equal(t, "Bearer test-token", auth)
		}

		assert.NotEmpty(t, observed.FilterMessage("github_api_request").All())
		assert.NotEmpty(t, observed.FilterMessage("github_api_response").All())
	})
}
