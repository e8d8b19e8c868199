package file_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YoshitsuguKoike/tdd/internal/infra/persistence/file"
)

func TestWriteFileAtomic(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		data    string
		setupFS func(t *testing.T, fs afero.Fs)
	}{
		{
			name: "Write new file and create parents",
			path: "tdd/coverage/auth/login.md",
			data: "# Login\n",
		},
		{
			name: "Overwrite existing file",
			path: "tdd/coverage/login.md",
			data: "new content\n",
			setupFS: func(t *testing.T, fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "tdd/coverage/login.md", []byte("old content\n"), 0o644))
			},
		},
		{
			name: "Empty content",
			path: "empty.md",
			data: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.setupFS != nil {
				tt.setupFS(t, fs)
			}

			require.NoError(t, file.WriteFileAtomic(fs, tt.path, []byte(tt.data), file.DefaultPerm))

			got, err := afero.ReadFile(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.data, string(got))

			info, err := fs.Stat(tt.path)
			require.NoError(t, err)
			assert.Equal(t, file.DefaultPerm, info.Mode().Perm())
		})
	}
}

func TestWriteFileAtomic_LeavesNoTempFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, file.WriteFileAtomic(fs, "dir/a.md", []byte("a"), file.DefaultPerm))
	require.NoError(t, file.WriteFileAtomic(fs, "dir/a.md", []byte("b"), file.DefaultPerm))

	entries, err := afero.ReadDir(fs, "dir")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.md", entries[0].Name())
}

func TestWriteFileAtomic_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := file.WriteFileAtomic(fs, "dir/a.md", []byte("a"), file.DefaultPerm)
	assert.Error(t, err)
}

func TestWriteFileIfAbsent(t *testing.T) {
	fs := afero.NewMemMapFs()

	written, err := file.WriteFileIfAbsent(fs, "tdd/config.yaml", []byte("schema: test-driven\n"), file.DefaultPerm)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = file.WriteFileIfAbsent(fs, "tdd/config.yaml", []byte("schema: other\n"), file.DefaultPerm)
	require.NoError(t, err)
	assert.False(t, written)

	got, err := afero.ReadFile(fs, "tdd/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "schema: test-driven\n", string(got))
}
