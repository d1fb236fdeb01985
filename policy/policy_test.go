package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Admit(t *testing.T) {
	var testCases = []struct {
		description string
		policy      *Policy
		name        string
		expectErr   bool
	}{
		{description: "nil policy", name: "task1"},
		{description: "auto", policy: &Policy{Mode: ModeAuto}, name: "task1"},
		{description: "deny", policy: &Policy{Mode: ModeDeny}, name: "task1", expectErr: true},
		{description: "blocked", policy: &Policy{BlockList: []string{"TASK1"}}, name: "task1", expectErr: true},
		{description: "allowed", policy: &Policy{AllowList: []string{"task2"}}, name: "Task2"},
		{description: "not on allow list", policy: &Policy{AllowList: []string{"task2"}}, name: "task1", expectErr: true},
		{description: "block wins", policy: &Policy{AllowList: []string{"task1"}, BlockList: []string{"task1"}}, name: "task1", expectErr: true},
		{
			description: "ask declines",
			policy: &Policy{Mode: ModeAsk, Ask: func(ctx context.Context, name string, args []string, p *Policy) bool {
				return len(args) > 0
			}},
			name:      "task1",
			expectErr: true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			err := testCase.policy.Admit(context.Background(), testCase.name, nil)
			if testCase.expectErr {
				assert.ErrorIs(t, err, ErrRejected)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	cfg := &Config{Mode: ModeAuto, BlockList: []string{"x"}}
	assert.Equal(t, cfg, ToConfig(FromConfig(cfg)))
	assert.Nil(t, FromConfig(nil))
}
