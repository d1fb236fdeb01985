package batchos

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/batchos/model/resource"
)

func TestLoadConfig(t *testing.T) {
	var testCases = []struct {
		description string
		document    string
		expectErr   bool
		assertFn    func(t *testing.T, cfg *Config)
	}{
		{
			description: "overrides tasks and keeps defaults",
			document: `
resources:
  cpu: 2
  memory: 2048
log:
  level: debug
tasks:
  - name: build
    priority: 5
    arguments: [all]
    requirement:
      cpu: 2
      memory: 1024
`,
			assertFn: func(t *testing.T, cfg *Config) {
				assert.Equal(t, resource.Requirement{CPU: 2, Memory: 2048}, cfg.Resources)
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, DefaultConfig().Heap, cfg.Heap)
				require.Len(t, cfg.Tasks, 1)
				assert.Equal(t, &TaskConfig{Name: "build", Priority: 5, Arguments: []string{"all"},
					Requirement: resource.Requirement{CPU: 2, Memory: 1024}}, cfg.Tasks[0])
			},
		},
		{
			description: "policy",
			document: `
policy:
  mode: auto
  block: [task1]
`,
			assertFn: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.Policy)
				assert.Equal(t, []string{"task1"}, cfg.Policy.BlockList)
				assert.Len(t, cfg.Tasks, 2)
			},
		},
		{
			description: "duplicated task",
			document: `
tasks:
  - name: a
  - name: a
`,
			expectErr: true,
		},
		{
			description: "malformed",
			document:    "resources: [",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			URL := filepath.Join(t.TempDir(), "batch.yaml")
			require.NoError(t, os.WriteFile(URL, []byte(testCase.document), 0o644))

			cfg, err := LoadConfig(context.Background(), URL)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			testCase.assertFn(t, cfg)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Resources = resource.Requirement{}
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Heap.Size = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Tasks = append(cfg.Tasks, &TaskConfig{})
	assert.Error(t, cfg.Validate())
}

func TestConfig_KernelConfig(t *testing.T) {
	cfg := DefaultConfig()
	first := cfg.KernelConfig()
	second := cfg.KernelConfig()

	require.Len(t, first.Tasks, 2)
	assert.Equal(t, "task2", first.Tasks[1].Name)
	assert.EqualValues(t, 2, first.Tasks[1].Priority)
	assert.Equal(t, []string{"arg2"}, first.Tasks[1].Arguments)
	assert.NotEqual(t, first.Tasks[0].ID, second.Tasks[0].ID)
	assert.EqualValues(t, 0x80400000, first.HeapStart)
}
