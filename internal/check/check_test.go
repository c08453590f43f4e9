package check

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
	derrors "git.home.luguber.info/inful/docsite/internal/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

type testRecorder struct {
	mu       sync.Mutex
	stages   map[string]int
	outcomes map[metrics.Outcome]int
	triggers map[metrics.Trigger]int
	missing  int
	writes   []bool
}

func newTestRecorder() *testRecorder {
	return &testRecorder{stages: map[string]int{}, outcomes: map[metrics.Outcome]int{}, triggers: map[metrics.Trigger]int{}}
}

func (r *testRecorder) ObserveStageDuration(stage string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[stage]++
}
func (r *testRecorder) ObserveCheckDuration(time.Duration) {}
func (r *testRecorder) IncCheckOutcome(o metrics.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[o]++
}
func (r *testRecorder) IncCheckTrigger(tr metrics.Trigger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers[tr]++
}
func (r *testRecorder) SetMissingDocuments(n int) { r.missing = n }
func (r *testRecorder) IncEmitWrite(written bool) { r.writes = append(r.writes, written) }

func setup(t *testing.T) (cfgPath, docsRoot string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "docsite.yaml")
	require.NoError(t, config.Init(cfgPath, false))

	docsRoot = filepath.Join(dir, "docs")
	for _, name := range []string{"README", "getting-started", "models", "relationships", "hooks", "query-parameters", "security"} {
		path := filepath.Join(docsRoot, "guide", name+".md")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("# "+name+"\n"), 0o600))
	}
	return cfgPath, docsRoot
}

func TestRunReportsMissingDocuments(t *testing.T) {
	cfgPath, docsRoot := setup(t)
	rec := newTestRecorder()
	c := NewChecker(Options{ConfigPath: cfgPath, DocsRoot: docsRoot}, rec)
	assert.Nil(t, c.Last())

	res, err := c.Run(context.Background(), metrics.TriggerStartup)
	require.NoError(t, err)
	assert.Equal(t, metrics.OutcomeWarning, res.Outcome)
	require.Len(t, res.Missing, 1)
	assert.Equal(t, "responses", res.Missing[0].Ref)
	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)

	assert.Same(t, res, c.Last())
	assert.Equal(t, 1, rec.missing)
	assert.Equal(t, 1, rec.triggers[metrics.TriggerStartup])
	assert.Equal(t, 1, rec.stages["load"])
	assert.Equal(t, 1, rec.stages["resolve"])
	assert.Zero(t, rec.stages["emit"])
}

func TestRunStrict(t *testing.T) {
	cfgPath, docsRoot := setup(t)
	rec := newTestRecorder()
	c := NewChecker(Options{ConfigPath: cfgPath, DocsRoot: docsRoot, Strict: true}, rec)

	res, err := c.Run(context.Background(), metrics.TriggerStartup)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
	assert.Equal(t, metrics.OutcomeFailed, res.Outcome)
	assert.Equal(t, 1, rec.outcomes[metrics.OutcomeFailed])

	require.NoError(t, os.WriteFile(filepath.Join(docsRoot, "guide", "responses.md"), []byte("# Responses\n"), 0o600))
	res, err = c.Run(context.Background(), metrics.TriggerSchedule)
	require.NoError(t, err)
	assert.Equal(t, metrics.OutcomeSuccess, res.Outcome)
}

func TestRunEmits(t *testing.T) {
	cfgPath, docsRoot := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(docsRoot, "guide", "responses.md"), []byte("# Responses\n"), 0o600))
	out := filepath.Join(t.TempDir(), ".vuepress", "config.js")
	rec := newTestRecorder()
	c := NewChecker(Options{ConfigPath: cfgPath, EmitTo: out}, rec)

	res, err := c.Run(context.Background(), metrics.TriggerStartup)
	require.NoError(t, err)
	assert.True(t, res.Written)
	assert.Equal(t, metrics.OutcomeSuccess, res.Outcome)

	res, err = c.Run(context.Background(), metrics.TriggerConfig)
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.Equal(t, []bool{true, false}, rec.writes)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	rendered, err := emit.Render(res.Config, emit.FormatJS)
	require.NoError(t, err)
	assert.Equal(t, rendered.Bytes(), data)
}

func TestRunInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: docs\nthemeConfig:\n  nav:\n    - {text: Broken}\n"), 0o600))

	c := NewChecker(Options{ConfigPath: path}, nil)
	res, err := c.Run(context.Background(), metrics.TriggerStartup)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
	assert.Nil(t, res.Config)
	assert.Equal(t, metrics.OutcomeFailed, c.Last().Outcome)
}

func TestRunDerivesDocsRoot(t *testing.T) {
	cfgPath, docsRoot := setup(t)
	assert.Equal(t, docsRoot, DefaultDocsRoot(cfgPath, config.Example()))

	c := NewChecker(Options{ConfigPath: cfgPath}, nil)
	res, err := c.Run(context.Background(), metrics.TriggerCLI)
	require.NoError(t, err)
	require.NotNil(t, res.Site)
	assert.Equal(t, docsRoot, res.Site.DocsRoot)
	assert.Len(t, res.Missing, 1)

	strict := NewChecker(Options{ConfigPath: cfgPath, Strict: true}, nil)
	_, err = strict.Run(context.Background(), metrics.TriggerCLI)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))

	// docsDir is re-read on every run
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.ThemeConfig.DocsDir = "elsewhere"
	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfgPath, data, 0o600))

	res, err = c.Run(context.Background(), metrics.TriggerConfig)
	require.NoError(t, err)
	assert.Nil(t, res.Site, "a derived root that does not exist skips resolution")
	assert.Equal(t, metrics.OutcomeSuccess, res.Outcome)

	_, err = strict.Run(context.Background(), metrics.TriggerConfig)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryFileSystem))
}
