package flagx

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-d", "-l"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps allowed flag and its value",
			args:    []string{"-a", ":9090", "-c", "taskkeeper.json"},
			allowed: serverFlags,
			want:    []string{"-a", ":9090"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=memory", "--config=taskkeeper.json"},
			allowed: serverFlags,
			want:    []string{"-d=memory"},
		},
		{
			name:    "value with equals inside is not split",
			args:    []string{"-d", "postgres://u:p@db/taskkeeper?sslmode=disable"},
			allowed: serverFlags,
			want:    []string{"-d", "postgres://u:p@db/taskkeeper?sslmode=disable"},
		},
		{
			name:    "next flag is not taken as value",
			args:    []string{"-l", "-a", ":8080"},
			allowed: serverFlags,
			want:    []string{"-l", "-a", ":8080"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-x", "1", "-l"},
			allowed: serverFlags,
			want:    []string{"-l"},
		},
		{
			name:    "positional arguments dropped",
			args:    []string{"serve", "now"},
			allowed: serverFlags,
			want:    []string{},
		},
		{
			name:    "repeated flag kept in order",
			args:    []string{"-l", "info", "-l", "debug"},
			allowed: serverFlags,
			want:    []string{"-l", "info", "-l", "debug"},
		},
		{
			name:    "nil args",
			args:    nil,
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("FilterArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookupString_UnknownFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"taskkeeper", "-unknown", "-name", "value", "-k", "secret"}
	assert.Equal(t, "value", LookupString("name"))
	assert.Empty(t, LookupString("missing"))
}

func Test_JsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"taskkeeper", "-c", "/etc/taskkeeper/short.json"}
		assert.Equal(t, "/etc/taskkeeper/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"taskkeeper", "-config", "/etc/taskkeeper/long.json"}
		assert.Equal(t, "/etc/taskkeeper/long.json", JsonConfigFlags())
	})

	t.Run("equals form", func(t *testing.T) {
		os.Args = []string{"taskkeeper", "--config=/etc/taskkeeper/eq.json", "-a", ":8080"}
		assert.Equal(t, "/etc/taskkeeper/eq.json", JsonConfigFlags())
	})

	t.Run("server flags are ignored", func(t *testing.T) {
		os.Args = []string{"taskkeeper", "-a", ":8080", "-d", "memory"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"taskkeeper", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}

func Test_EnvFileFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"taskkeeper", "-c", "conf.json", "-env", "/srv/.env"}
	assert.Equal(t, "/srv/.env", EnvFileFlags())

	os.Args = []string{"taskkeeper"}
	assert.Empty(t, EnvFileFlags())
}
