package gitstatus

import (
	"context"
	"errors"
	"testing"

	"github.com/chmouel/nuprompt/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	files     []models.StatusFile
	statusErr error
	ref       string
	refErr    error
}

func (f *fakeProvider) Status(context.Context, string) ([]models.StatusFile, error) {
	return f.files, f.statusErr
}

func (f *fakeProvider) HeadRef(context.Context, string) (string, error) {
	return f.ref, f.refErr
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()

	t.Run("not a repository", func(t *testing.T) {
		p := &fakeProvider{statusErr: ErrNotARepository}
		assert.Nil(t, Summarize(ctx, p, "/tmp"))
	})

	t.Run("other status failure", func(t *testing.T) {
		p := &fakeProvider{statusErr: errors.New("corrupt index")}
		assert.Nil(t, Summarize(ctx, p, "/tmp"))
	})

	t.Run("clean branch", func(t *testing.T) {
		p := &fakeProvider{ref: "main"}
		got := Summarize(ctx, p, "/repo")
		require.NotNil(t, got)
		assert.Equal(t, models.GitSummary{RefName: "main"}, *got)
		assert.False(t, got.Dirty())
	})

	t.Run("no head keeps dirty flags", func(t *testing.T) {
		p := &fakeProvider{
			files:  []models.StatusFile{{Filename: "new", Flags: models.WorktreeNew | models.IndexNew}},
			refErr: ErrNoHead,
		}
		got := Summarize(ctx, p, "/repo")
		require.NotNil(t, got)
		assert.Equal(t, models.GitSummary{
			RefName:        models.NoHeadRef,
			IndexModified:  true,
			UntrackedFiles: true,
		}, *got)
	})

	t.Run("unexpected head failure", func(t *testing.T) {
		p := &fakeProvider{refErr: errors.New("boom")}
		got := Summarize(ctx, p, "/repo")
		require.NotNil(t, got)
		assert.Equal(t, models.NoHeadRef, got.RefName)
	})
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider("")
	require.NoError(t, err)
	assert.IsType(t, &GoGitProvider{}, p)

	p, err = NewProvider(BackendCLI)
	require.NoError(t, err)
	assert.IsType(t, &CLIProvider{}, p)

	_, err = NewProvider("svn")
	assert.Error(t, err)
}
