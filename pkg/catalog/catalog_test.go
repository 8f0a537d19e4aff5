package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
)

func TestMatchHarness(t *testing.T) {
	l := Default()

	t.Run("exact spacing", func(t *testing.T) {
		p, err := l.MatchHarness(2, types.PolarityPositive, 33, "10")
		require.NoError(t, err)
		assert.Equal(t, 2, p.StringCount)
		assert.Equal(t, types.PolarityPositive, p.Polarity)
		assert.Equal(t, 33, p.SpacingFt)
		assert.Equal(t, "10", p.TrunkAWG)
	})

	t.Run("spacing within tolerance", func(t *testing.T) {
		p, err := l.MatchHarness(3, types.PolarityNegative, 34, "8")
		require.NoError(t, err)
		assert.Equal(t, 33, p.SpacingFt)
	})

	t.Run("spacing out of tolerance", func(t *testing.T) {
		_, err := l.MatchHarness(3, types.PolarityNegative, 40, "8")
		assert.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("unknown string count", func(t *testing.T) {
		_, err := l.MatchHarness(9, types.PolarityPositive, 33, "10")
		assert.ErrorIs(t, err, ErrNoMatch)
	})
}

func TestMatchCable(t *testing.T) {
	l := Default()

	t.Run("smallest sufficient length", func(t *testing.T) {
		p, err := l.MatchCable(CableWhip, "8", types.PolarityPositive, 42)
		require.NoError(t, err)
		assert.Equal(t, 50, p.LengthFt)
		assert.Equal(t, CableWhip, p.Kind)
	})

	t.Run("exact length", func(t *testing.T) {
		p, err := l.MatchCable(CableExtender, "10", types.PolarityNegative, 40)
		require.NoError(t, err)
		assert.Equal(t, 40, p.LengthFt)
	})

	t.Run("longer than longest part", func(t *testing.T) {
		_, err := l.MatchCable(CableWhip, "10", types.PolarityPositive, 300)
		assert.ErrorIs(t, err, ErrNoMatch)
	})
}

func TestMatchFuse(t *testing.T) {
	l := Default()

	p, err := l.MatchFuse(35)
	require.NoError(t, err)
	assert.Equal(t, "FUSE-35A", p.PartNumber)

	_, err = l.MatchFuse(60)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestMatchCombiner(t *testing.T) {
	l := Default()

	t.Run("smallest box with integrated whips preferred", func(t *testing.T) {
		p, err := l.MatchCombiner(10, 100, 30)
		require.NoError(t, err)
		assert.Equal(t, 12, p.MaxInputs)
		assert.True(t, p.IntegratedWhips)
	})

	t.Run("breaker frame rounds up", func(t *testing.T) {
		p, err := l.MatchCombiner(8, 180, 30)
		require.NoError(t, err)
		assert.Equal(t, 200, p.BreakerA)
	})

	t.Run("fuse holder rating filters", func(t *testing.T) {
		p, err := l.MatchCombiner(8, 100, 45)
		require.NoError(t, err)
		// only the large boxes carry 60A holders
		assert.GreaterOrEqual(t, p.MaxInputs, 24)
	})

	t.Run("too many inputs", func(t *testing.T) {
		_, err := l.MatchCombiner(40, 100, 30)
		assert.ErrorIs(t, err, ErrNoMatch)
	})
}

func TestPrice(t *testing.T) {
	l := Default()

	base, ok := l.Price("FUSE-35A", BaseTier)
	require.True(t, ok)
	assert.Greater(t, base, 0.0)

	high, ok := l.Price("FUSE-35A", "high")
	require.True(t, ok)
	assert.Greater(t, high, base)

	t.Run("unknown tier falls back to base", func(t *testing.T) {
		p, ok := l.Price("FUSE-35A", "spot")
		require.True(t, ok)
		assert.Equal(t, base, p)
	})

	t.Run("unknown part", func(t *testing.T) {
		_, ok := l.Price("XYZ-1", BaseTier)
		assert.False(t, ok)
	})
}

func TestLoadDir(t *testing.T) {
	t.Run("roundtrip", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, Default().WriteDir(dir))
		l, err := LoadDir(dir)
		require.NoError(t, err)
		assert.Equal(t, Default().Fuses, l.Fuses)
		assert.Equal(t, Default().Harnesses, l.Harnesses)
	})

	t.Run("partial override keeps defaults", func(t *testing.T) {
		dir := t.TempDir()
		custom := []FusePart{{PartNumber: "ACME-F60", RatingA: 60}}
		b, err := json.Marshal(custom)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "fuses.json"), b, 0o644))

		l, err := LoadDir(dir)
		require.NoError(t, err)
		assert.Equal(t, custom, l.Fuses)
		assert.Equal(t, Default().Combiners, l.Combiners)
	})

	t.Run("missing dir", func(t *testing.T) {
		l, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Equal(t, Default().Fuses, l.Fuses)
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cables.json"), []byte("{"), 0o644))
		_, err := LoadDir(dir)
		assert.Error(t, err)
	})
}
