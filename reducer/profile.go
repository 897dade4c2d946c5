package reducer

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/rmoseley/steptools/steperrors"
)

// Profile is a reduction policy loaded from a YAML document. Archival
// pipelines keep one profile per CAD source so reductions stay reproducible
// across tool versions. Absent fields leave the engine defaults in place.
//
// Example:
//
//	# strict AP214 archival profile
//	use_step_precision: true
//	keep_orphans: false
//	identity_types:
//	  - PRODUCT
//	  - PRODUCT_DEFINITION
type Profile struct {
	// IdentityTypes overrides the default set of never-merged entity types.
	IdentityTypes []string `yaml:"identity_types"`
	// GCRoots overrides the default orphan-removal root types.
	GCRoots []string `yaml:"gc_roots"`
	// MaxDecimals bounds numeric comparison precision.
	MaxDecimals *int `yaml:"max_decimals"`
	// UseStepPrecision derives comparison precision from the file's
	// uncertainty declaration.
	UseStepPrecision *bool `yaml:"use_step_precision"`
	// KeepOrphans disables orphan removal.
	KeepOrphans *bool `yaml:"keep_orphans"`
	// MaskNames blanks leading name strings during comparison.
	MaskNames *bool `yaml:"mask_names"`
	// PreserveHeaderComments keeps /* */ comments in the emitted header.
	PreserveHeaderComments *bool `yaml:"preserve_header_comments"`
}

// LoadProfile reads and parses a YAML reduction profile from disk.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &steperrors.ConfigError{
			Option:  "profile",
			Message: fmt.Sprintf("reading %s", path),
			Cause:   err,
		}
	}
	return ParseProfile(data)
}

// ParseProfile parses a YAML reduction profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &steperrors.ConfigError{
			Option:  "profile",
			Message: "cannot decode profile",
			Cause:   err,
		}
	}
	if p.MaxDecimals != nil && *p.MaxDecimals < 0 {
		return nil, &steperrors.ConfigError{
			Option:  "max_decimals",
			Message: fmt.Sprintf("must not be negative: %d", *p.MaxDecimals),
		}
	}
	return &p, nil
}

// apply copies the profile's set fields onto a reduce configuration.
func (p *Profile) apply(cfg *reduceConfig) {
	if p.IdentityTypes != nil {
		cfg.identityTypes = p.IdentityTypes
	}
	if p.GCRoots != nil {
		cfg.gcRootTypes = p.GCRoots
	}
	if p.MaxDecimals != nil {
		cfg.maxDecimals = *p.MaxDecimals
		cfg.truncate = true
	}
	if p.UseStepPrecision != nil {
		cfg.useStepPrecision = *p.UseStepPrecision
	}
	if p.KeepOrphans != nil {
		cfg.keepOrphans = *p.KeepOrphans
	}
	if p.MaskNames != nil {
		cfg.maskNames = *p.MaskNames
	}
	if p.PreserveHeaderComments != nil {
		cfg.preserveHeaderComments = *p.PreserveHeaderComments
	}
}
