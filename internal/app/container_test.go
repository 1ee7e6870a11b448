package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eslsoft/phraser/internal/entity"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "phraser.db")
	viper.Set("store.path", path)
	viper.Set("phonetic.language", "zh")

	c, cleanup, err := Initialize()
	require.NoError(t, err)

	ctx := context.Background()
	item, err := c.Items.Create(ctx, "你好", "hello")
	require.NoError(t, err)
	assert.Equal(t, "nǐ hǎo", item.PhoneticHint)

	_, err = c.Settings.Set(ctx, entity.SettingActiveInput, true)
	require.NoError(t, err)
	card, ok := c.Review.Next(ctx)
	require.True(t, ok)
	out, err := c.Review.Answer(ctx, card, "Hello")
	require.NoError(t, err)
	assert.True(t, out.Correct)
	cleanup()

	// A second container over the same file sees the persisted state.
	c, cleanup, err = Initialize()
	require.NoError(t, err)
	defer cleanup()
	got, ok := c.Items.Get(ctx, item.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.CorrectCount)
	assert.True(t, c.Settings.Load(ctx).ActiveInputEnabled)
}
