package hero

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSafeSet(t *testing.T) {
	safe := DefaultSafeSet()

	assert.True(t, safe.HasPID(1), "init must always be protected")
	assert.True(t, safe.HasPID(int32(os.Getpid())), "our own pid must be protected")
	assert.True(t, safe.HasName("genesis"))
	assert.True(t, safe.HasName("systemd"))
	assert.True(t, safe.HasName("NetworkManager"))
	assert.False(t, safe.HasName("chromium"))
}

func TestProtected(t *testing.T) {
	safe := NewSafeSet([]string{"plasmashell", "bash"}, []int32{1, 42})

	tests := []struct {
		name string
		proc *fakeProcess
		want bool
	}{
		{
			name: "protected pid",
			proc: &fakeProcess{pid: 42, name: "leaky-app"},
			want: true,
		},
		{
			name: "protected name",
			proc: &fakeProcess{pid: 2000, name: "plasmashell"},
			want: true,
		},
		{
			name: "kernel thread naming",
			proc: &fakeProcess{pid: 2001, name: "[kworker/0:1]"},
			want: true,
		},
		{
			name: "name with surrounding whitespace",
			proc: &fakeProcess{pid: 2002, name: " bash "},
			want: true,
		},
		{
			name: "unreadable name defaults to protected",
			proc: &fakeProcess{pid: 2003, nameErr: errors.New("access denied")},
			want: true,
		},
		{
			name: "ordinary process",
			proc: &fakeProcess{pid: 2004, name: "chromium"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Protected(tt.proc, safe))
		})
	}
}
