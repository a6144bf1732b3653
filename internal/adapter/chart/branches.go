package chart

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed branches.yaml
var defaultBranches []byte

type branchFile struct {
	Branches []models.Branch `yaml:"branches" validate:"required,min=1,dive"`
}

// LoadBranches reads the branch directory from a yaml file.
// An empty path selects the built-in directory.
func LoadBranches(path string) (*models.BranchDirectory, error) {
	data := defaultBranches
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read branch directory: %w", err)
		}
	}

	return ParseBranches(data)
}

// ParseBranches decodes and validates a yaml branch directory.
func ParseBranches(data []byte) (*models.BranchDirectory, error) {
	var f branchFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidBranches, err)
	}

	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidBranches, err)
	}

	return models.NewBranchDirectory(f.Branches)
}
