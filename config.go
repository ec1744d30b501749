package juicebottler

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// defaultPlants is the number of plants when not configured.
	defaultPlants = 2
	// defaultWorkersPerPlant is the size of each plant's worker pool.
	defaultWorkersPerPlant = 2
	// defaultOrangesPerBottle is how many processed oranges fill one bottle.
	defaultOrangesPerBottle = 3
	// defaultRunDuration is how long plants produce before being stopped.
	defaultRunDuration = 5 * time.Second
)

// Config holds the adjustable parameters of a simulation. Zero fields fall
// back to defaults, so a partial config (e.g. from a YAML file that only sets
// plants) is usable as-is.
type Config struct {
	// Plants is the number of producer plants.
	Plants int `yaml:"plants"`
	// WorkersPerPlant is the number of consumer workers per plant.
	WorkersPerPlant int `yaml:"workers_per_plant"`
	// OrangesPerBottle is the batch size: processed oranges per bottle.
	// Leftovers below a full bottle are counted as waste.
	OrangesPerBottle int `yaml:"oranges_per_bottle"`
	// RunDuration is how long plants produce before the simulation stops them.
	RunDuration time.Duration `yaml:"run_duration"`
	// Stages is the ordered stage table every orange moves through.
	Stages StageTable `yaml:"stages"`
}

// DefaultConfig returns the standard simulation parameters: 2 plants, 2
// workers each, 3 oranges per bottle, a 5 second run, and the default stages.
func DefaultConfig() Config {
	return Config{
		Plants:           defaultPlants,
		WorkersPerPlant:  defaultWorkersPerPlant,
		OrangesPerBottle: defaultOrangesPerBottle,
		RunDuration:      defaultRunDuration,
		Stages:           DefaultStages(),
	}
}

// withDefaults fills zero fields with defaults. Negative values are left for
// Validate to reject.
func (c Config) withDefaults() Config {
	if c.Plants == 0 {
		c.Plants = defaultPlants
	}
	if c.WorkersPerPlant == 0 {
		c.WorkersPerPlant = defaultWorkersPerPlant
	}
	if c.OrangesPerBottle == 0 {
		c.OrangesPerBottle = defaultOrangesPerBottle
	}
	if c.RunDuration == 0 {
		c.RunDuration = defaultRunDuration
	}
	if len(c.Stages) == 0 {
		c.Stages = DefaultStages()
	}
	return c
}

// Validate checks the config after defaults have been applied. Errors wrap
// ErrInvalidConfig for errors.Is checks.
func (c Config) Validate() error {
	if c.Plants < 1 {
		return fmt.Errorf("plants must be at least 1, got %d: %w", c.Plants, ErrInvalidConfig)
	}
	if c.WorkersPerPlant < 1 {
		return fmt.Errorf("workers per plant must be at least 1, got %d: %w", c.WorkersPerPlant, ErrInvalidConfig)
	}
	if c.OrangesPerBottle < 1 {
		return fmt.Errorf("oranges per bottle must be at least 1, got %d: %w", c.OrangesPerBottle, ErrInvalidConfig)
	}
	if c.RunDuration < 0 {
		return fmt.Errorf("run duration must not be negative, got %s: %w", c.RunDuration, ErrInvalidConfig)
	}
	return c.Stages.Validate()
}

// LoadConfig reads a YAML config file, applies defaults for unset fields, and
// validates the result.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c = c.withDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
