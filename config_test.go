package juicebottler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_ShouldMatchDocumentedDefaults(t *testing.T) {
	t.Parallel()
	// Arrange
	// Act
	cfg := DefaultConfig()

	// Assert
	assert.Equal(t, 2, cfg.Plants)
	assert.Equal(t, 2, cfg.WorkersPerPlant)
	assert.Equal(t, 3, cfg.OrangesPerBottle)
	assert.Equal(t, 5*time.Second, cfg.RunDuration)
	assert.Len(t, cfg.Stages, 5)
	require.NoError(t, cfg.Validate())
}

func TestWithDefaults_WhenZeroFields_ShouldFillThem(t *testing.T) {
	t.Parallel()
	// Arrange
	// Act
	cfg := Config{}.withDefaults()

	// Assert
	assert.Equal(t, defaultPlants, cfg.Plants)
	assert.Equal(t, defaultWorkersPerPlant, cfg.WorkersPerPlant)
	assert.Equal(t, defaultOrangesPerBottle, cfg.OrangesPerBottle)
	assert.Equal(t, defaultRunDuration, cfg.RunDuration)
	assert.Len(t, cfg.Stages, 5)
}

func TestWithDefaults_WhenFieldsSet_ShouldKeepThem(t *testing.T) {
	t.Parallel()
	// Arrange
	in := Config{Plants: 7, WorkersPerPlant: 1, OrangesPerBottle: 4, RunDuration: time.Second}

	// Act
	cfg := in.withDefaults()

	// Assert
	assert.Equal(t, 7, cfg.Plants)
	assert.Equal(t, 1, cfg.WorkersPerPlant)
	assert.Equal(t, 4, cfg.OrangesPerBottle)
	assert.Equal(t, time.Second, cfg.RunDuration)
}

func TestConfigValidate_WhenOutOfRange_ShouldReturnErrInvalidConfig(t *testing.T) {
	t.Parallel()
	// Arrange
	cases := map[string]Config{
		"negative plants":  func() Config { c := DefaultConfig(); c.Plants = -1; return c }(),
		"no workers":       func() Config { c := DefaultConfig(); c.WorkersPerPlant = -2; return c }(),
		"bad bottle size":  func() Config { c := DefaultConfig(); c.OrangesPerBottle = -3; return c }(),
		"negative runtime": func() Config { c := DefaultConfig(); c.RunDuration = -time.Second; return c }(),
		"short stages":     func() Config { c := DefaultConfig(); c.Stages = c.Stages[:1]; return c }(),
	}

	for name, cfg := range cases {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			// Act
			err := cfg.Validate()

			// Assert
			require.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestApplyPlantOptions_NoOptions_ReturnsDefaults(t *testing.T) {
	t.Parallel()
	// Arrange
	// Act
	pc := applyPlantOptions()

	// Assert
	assert.Same(t, defaultLogger, pc.logger)
	assert.Nil(t, pc.progress)
	assert.Equal(t, 0, pc.produceLimit)
}

func TestApplyPlantOptions_WithNilLogger_KeepsDefault(t *testing.T) {
	t.Parallel()
	// Arrange
	// Act
	pc := applyPlantOptions(WithPlantLogger(nil))

	// Assert
	assert.Same(t, defaultLogger, pc.logger)
}

func TestApplyPlantOptions_WithProduceLimit_SetsField(t *testing.T) {
	t.Parallel()
	// Arrange
	// Act
	pc := applyPlantOptions(WithProduceLimit(7))

	// Assert
	assert.Equal(t, 7, pc.produceLimit)
}

func TestLoadConfig_WhenValidYAML_ShouldParse(t *testing.T) {
	t.Parallel()
	// Arrange
	raw := `
plants: 3
workers_per_plant: 4
oranges_per_bottle: 2
run_duration: 2000000000
stages:
  - name: wash
    duration: 1000000
  - name: pack
    duration: 1000000
`
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Plants)
	assert.Equal(t, 4, cfg.WorkersPerPlant)
	assert.Equal(t, 2, cfg.OrangesPerBottle)
	assert.Equal(t, 2*time.Second, cfg.RunDuration)
	require.Len(t, cfg.Stages, 2)
	assert.Equal(t, "wash", cfg.Stages[0].Name)
	assert.Equal(t, time.Millisecond, cfg.Stages[0].Duration)
}

func TestLoadConfig_WhenPartialYAML_ShouldApplyDefaults(t *testing.T) {
	t.Parallel()
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("plants: 1\n"), 0o644))

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Plants)
	assert.Equal(t, defaultWorkersPerPlant, cfg.WorkersPerPlant)
	assert.Len(t, cfg.Stages, 5)
}

func TestLoadConfig_WhenMissingFile_ShouldError(t *testing.T) {
	t.Parallel()
	// Arrange
	path := filepath.Join(t.TempDir(), "nope.yml")

	// Act
	_, err := LoadConfig(path)

	// Assert
	require.Error(t, err)
}

func TestLoadConfig_WhenInvalidValues_ShouldError(t *testing.T) {
	t.Parallel()
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("plants: -2\n"), 0o644))

	// Act
	_, err := LoadConfig(path)

	// Assert
	require.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestLoadConfig_WhenMalformedYAML_ShouldError(t *testing.T) {
	t.Parallel()
	// Arrange
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("plants: [not a number\n"), 0o644))

	// Act
	_, err := LoadConfig(path)

	// Assert
	require.Error(t, err)
}
