package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequirement_Fits(t *testing.T) {
	available := Requirement{CPU: 4, Memory: 1024}
	testCases := []struct {
		name   string
		req    Requirement
		expect bool
	}{
		{name: "zero", req: Requirement{}, expect: true},
		{name: "exact", req: Requirement{CPU: 4, Memory: 1024}, expect: true},
		{name: "cpu over", req: Requirement{CPU: 5, Memory: 1}, expect: false},
		{name: "memory over", req: Requirement{CPU: 1, Memory: 1025}, expect: false},
		{name: "both under", req: Requirement{CPU: 1, Memory: 256}, expect: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.req.Fits(available))
		})
	}
}

func TestRequirement_AddSub(t *testing.T) {
	a := Requirement{CPU: 8, Memory: 16000}
	b := Requirement{CPU: 4, Memory: 4000}
	assert.Equal(t, Requirement{CPU: 4, Memory: 12000}, a.Sub(b))
	assert.Equal(t, a, a.Sub(b).Add(b))
	assert.True(t, Requirement{}.IsZero())
	assert.Equal(t, "cpu=4 memory=4000KB", b.String())
}

func TestPool(t *testing.T) {
	pool := NewPool(Requirement{CPU: 8, Memory: 16000})
	assert.True(t, pool.Consistent())
	assert.True(t, pool.InUse().IsZero())

	pool.Available = Requirement{CPU: 2, Memory: 1000}
	assert.Equal(t, Requirement{CPU: 6, Memory: 15000}, pool.InUse())

	pool.Available = Requirement{CPU: 9, Memory: 1000}
	assert.False(t, pool.Consistent())
}
