package e2e_test

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordtiles/internal/api"
	"github.com/mcoot/wordtiles/internal/factory"
	"github.com/mcoot/wordtiles/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "wordtiles-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/wordtiles")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(user string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "WORDTILES_USER="+user)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *api.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	wordsPath := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(wordsPath, []byte("cat\ncats\nat\nta\n"), 0o600))

	cfg := factory.DefaultConfig()
	cfg.Logger = testutil.NopLogger()
	cfg.DictionaryPaths = map[string]string{"en": wordsPath}

	app, err := factory.New(cfg)
	require.NoError(t, err)
	require.NoError(t, app.LoadDictionaries(context.Background()))

	router := api.NewRouter(api.RouterConfig{
		Logger:         cfg.Logger,
		GameController: app.GameController,
		Stats:          app.StatsService,
		HubManager:     app.HubManager,
	})
	server := api.NewServer(router, api.DefaultServerConfig(), cfg.Logger)
	server.OnShutdown(app.HubManager.Close)

	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type gameResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	CurrentTurn *string `json:"current_turn"`
	Winner      *string `json:"winner"`
	EndReason   string  `json:"end_reason"`
	Players     []struct {
		UserID    string `json:"user_id"`
		RackCount int    `json:"rack_count"`
		Rack      []struct {
			Letter string `json:"letter"`
		} `json:"rack"`
	} `json:"players"`
}

type actionResponse struct {
	Game     gameResponse `json:"game"`
	Finished bool         `json:"finished"`
	Move     struct {
		Type string `json:"type"`
	} `json:"move"`
}

type statsResponse struct {
	GamesPlayed int `json:"games_played"`
	GamesWon    int `json:"games_won"`
	GamesLost   int `json:"games_lost"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("", "health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, sonic.UnmarshalString(output, &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_CreateJoinAndResign(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("alice", "game", "create")
	require.NoError(t, err, "output: %s", output)

	var created gameResponse
	require.NoError(t, sonic.UnmarshalString(output, &created))
	assert.Equal(t, "pending", created.Status)
	require.Len(t, created.Players, 1)
	assert.Len(t, created.Players[0].Rack, 7)

	output, err = cli.run("bob", "game", "join", created.ID)
	require.NoError(t, err, "output: %s", output)

	var joined gameResponse
	require.NoError(t, sonic.UnmarshalString(output, &joined))
	assert.Equal(t, "active", joined.Status)
	require.Len(t, joined.Players, 2)
	assert.Empty(t, joined.Players[0].Rack, "creator's rack is hidden from bob")

	// A third user cannot join
	output, err = cli.run("carol", "game", "join", created.ID)
	require.Error(t, err)
	assert.Contains(t, output, "GAME_NOT_PENDING")

	output, err = cli.run("bob", "game", "resign", created.ID)
	require.NoError(t, err, "output: %s", output)

	var resigned actionResponse
	require.NoError(t, sonic.UnmarshalString(output, &resigned))
	assert.True(t, resigned.Finished)
	assert.Equal(t, "resign", resigned.Move.Type)
	require.NotNil(t, resigned.Game.Winner)
	assert.Equal(t, "alice", *resigned.Game.Winner)

	output, err = cli.run("alice", "user", "stats")
	require.NoError(t, err, "output: %s", output)

	var stats statsResponse
	require.NoError(t, sonic.UnmarshalString(output, &stats))
	assert.Equal(t, 1, stats.GamesPlayed)
	assert.Equal(t, 1, stats.GamesWon)
}

func TestCLI_ConsecutivePassesEndGame(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("alice", "game", "create", "--opponent", "bob")
	require.NoError(t, err, "output: %s", output)

	var game gameResponse
	require.NoError(t, sonic.UnmarshalString(output, &game))
	require.NotNil(t, game.CurrentTurn)

	players := []string{"alice", "bob"}
	var last actionResponse
	for i := 0; i < 4; i++ {
		output, err = cli.run(players[i%2], "game", "pass", game.ID)
		require.NoError(t, err, "pass %d output: %s", i, output)
		require.NoError(t, sonic.UnmarshalString(output, &last))
	}

	assert.True(t, last.Finished)
	assert.Equal(t, "finished", last.Game.Status)
	assert.NotEmpty(t, last.Game.EndReason)

	// Finished games accept no further actions
	output, err = cli.run("alice", "game", "pass", game.ID)
	require.Error(t, err)
	assert.True(t, strings.Contains(output, "RULE_VIOLATION"), output)

	output, err = cli.run("bob", "game", "moves", game.ID)
	require.NoError(t, err, "output: %s", output)

	var moves struct {
		Moves []struct {
			Type string `json:"type"`
		} `json:"moves"`
	}
	require.NoError(t, sonic.UnmarshalString(output, &moves))
	assert.Len(t, moves.Moves, 4)
}
