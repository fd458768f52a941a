package archive_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/offwiki/pkg/archive"
	"github.com/matzehuels/offwiki/pkg/errors"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := archive.NewMemory("Test wiki").
		Add("Go", "Go", "<p>Go</p>").
		Add("Gopher", "Gopher", "<p>rodent</p>").
		Add("Rust", "Rust", "<p>crab</p>").
		AddRaw("Broken", "Broken", []byte{0xff}).
		SetMain("Go")

	t.Run("search matches title and path words", func(t *testing.T) {
		got, err := m.Search(ctx, "GO", 10)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "Gopher"}, got)

		got, err = m.Search(ctx, "go", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, got)

		got, err = m.Search(ctx, " ", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("article lookups", func(t *testing.T) {
		a, err := m.Article(ctx, "Rust")
		require.NoError(t, err)
		assert.Equal(t, "<p>crab</p>", a.HTML)

		_, err = m.Article(ctx, "Missing")
		assert.Equal(t, errors.ErrCodeNotFound, errors.GetCode(err))

		_, err = m.Article(ctx, "Broken")
		assert.Equal(t, errors.ErrCodeDecode, errors.GetCode(err))
	})

	t.Run("random path is stored", func(t *testing.T) {
		p, err := m.RandomPath(ctx)
		require.NoError(t, err)
		assert.Contains(t, []string{"Go", "Gopher", "Rust", "Broken"}, p)
	})

	t.Run("info", func(t *testing.T) {
		info, err := m.Info(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Test wiki", info.Title)
		assert.Equal(t, "Go", info.MainTitle)
		assert.Equal(t, 4, info.ArticleCount)
		assert.NotEmpty(t, info.UUID)
	})

	t.Run("empty archive has no random article", func(t *testing.T) {
		_, err := archive.NewMemory("empty").RandomPath(ctx)
		assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
	})
}
