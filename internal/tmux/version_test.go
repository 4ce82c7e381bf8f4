package tmux

import (
	"context"
	"testing"

	"github.com/sisi-cmux/sisi/internal/executor"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		popup   bool
		wantErr bool
	}{
		{output: "tmux 3.3a", want: "3.3.0", popup: true},
		{output: "tmux 3.2", want: "3.2.0", popup: true},
		{output: "tmux 3.1c", want: "3.1.0", popup: false},
		{output: "tmux 2.9", want: "2.9.0", popup: false},
		{output: "tmux next-3.5", want: "3.5.0", popup: true},
		{output: "tmux master", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			v, err := ParseVersion(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				require.False(t, SupportsPopup(v))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, v.String())
			require.Equal(t, tt.popup, SupportsPopup(v))
		})
	}
}

func TestVersion(t *testing.T) {
	c, mock, _ := newTestClient(t, nil)
	mock.AddExactMatch("tmux", []string{"-V"}, executor.MockResponse{Stdout: []byte("tmux 3.4\n")})

	v, raw, err := c.Version(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tmux 3.4", raw)
	require.Equal(t, uint64(3), v.Major())
	require.Equal(t, uint64(4), v.Minor())
}
