package doctor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/ntc/internal/config"
	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/family"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/registry"
	"github.com/thoreinstein/ntc/internal/target"
)

// Check categories.
const (
	CategoryToolchain = "toolchain"
	CategoryConfig    = "config"
)

// LocateCheck reports whether an external toolchain bundle is discoverable
// and has the layout its family needs.
type LocateCheck struct {
	bc   *locator.BuildContext
	kind locator.Kind
}

var _ Check = (*LocateCheck)(nil)

// NewLocateCheck creates a check for kind.
func NewLocateCheck(bc *locator.BuildContext, kind locator.Kind) *LocateCheck {
	return &LocateCheck{bc: bc, kind: kind}
}

// Name returns the unique identifier for this check.
func (c *LocateCheck) Name() string {
	return string(c.kind)
}

// Category returns the grouping for this check.
func (c *LocateCheck) Category() string {
	return CategoryToolchain
}

// Run locates the bundle and inspects its layout.
func (c *LocateCheck) Run() *CheckResult {
	hints := locator.HintsFor(c.kind)
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	res, ok := c.bc.LocateKind(c.kind)
	if !ok {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%s not found, %s", hints.DisplayName, hints.Consequence)
		result.FixHint = locator.Advisory(hints, c.bc.WorkingDir)
		return result
	}

	result.Details = map[string]any{
		"path":   res.Path,
		"source": string(res.Source),
		"hint":   res.Detail,
	}
	if len(res.Candidates) > 0 {
		result.Details["candidates"] = res.Candidates
	}

	var layoutErr error
	switch c.kind {
	case locator.KindAndroidNDK:
		var bin string
		bin, layoutErr = family.NDKBinDir(c.bc, res.Path)
		if layoutErr == nil {
			result.Details["bin"] = bin
		}
	case locator.KindOsxcross:
		bin := family.OsxcrossBinDir(res)
		result.Details["bin"] = bin
		layoutErr = c.checkSDK(bin, result)
	}

	if layoutErr != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%s found at %s but unusable: %v", hints.DisplayName, res.Path, layoutErr)
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s found at %s (%s)", hints.DisplayName, res.Path, res.Source)
	return result
}

func (c *LocateCheck) checkSDK(bin string, result *CheckResult) error {
	sdkDir := filepath.Join(filepath.Dir(bin), "SDK")
	sdks, err := c.bc.SubDirs(sdkDir)
	if err != nil || len(sdks) == 0 {
		return errors.Mark(errors.Newf("no macOS SDK under %s", sdkDir), errors.ErrNotFound)
	}
	result.Details["sdks"] = sdks
	return nil
}

// MingwCheck reports which mingw-w64 g++ front-ends are on PATH.
type MingwCheck struct {
	bc     *locator.BuildContext
	suffix string
}

var _ Check = (*MingwCheck)(nil)

// NewMingwCheck creates a mingw front-end check. suffix is the configured
// wrapper suffix, e.g. "-faker".
func NewMingwCheck(bc *locator.BuildContext, suffix string) *MingwCheck {
	return &MingwCheck{bc: bc, suffix: suffix}
}

// Name returns the unique identifier for this check.
func (c *MingwCheck) Name() string {
	return "mingw-w64"
}

// Category returns the grouping for this check.
func (c *MingwCheck) Category() string {
	return CategoryToolchain
}

// Run searches PATH for each front-end and, when configured, its wrapper.
func (c *MingwCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}
	if c.bc.Host != target.HostLinux {
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("not used on %s hosts", c.bc.Host)
		return result
	}

	var found, missing, missingWrappers []string
	details := map[string]any{}
	for _, t := range []target.Triple{target.WindowsX86_64, target.WindowsX86} {
		prefix, _ := family.MingwPrefix(t)
		gxx := prefix + "-g++"
		path, err := c.bc.LookPath(gxx)
		if err != nil {
			missing = append(missing, t.String())
			continue
		}
		found = append(found, t.String())
		details[t.String()] = path

		if c.suffix != "" {
			if _, err := c.bc.LookPath(gxx + c.suffix); err != nil {
				missingWrappers = append(missingWrappers, gxx+c.suffix)
			}
		}
	}
	if len(details) > 0 {
		result.Details = details
	}

	switch {
	case len(missingWrappers) > 0:
		result.Status = SeverityWarning
		result.Message = "wrapper not on PATH: " + strings.Join(missingWrappers, ", ")
		result.FixHint = "install gxx-faker under each wrapper name, e.g. ln -s $(command -v gxx-faker) /usr/local/bin/" + missingWrappers[0]
	case len(found) == 0:
		result.Status = SeverityInfo
		result.Message = "mingw-w64 not installed, windows targets unavailable"
		result.FixHint = "install mingw-w64 (e.g. apt install g++-mingw-w64)"
	case len(missing) > 0:
		result.Status = SeverityInfo
		result.Message = fmt.Sprintf("available for %s, unavailable for %s", strings.Join(found, ", "), strings.Join(missing, ", "))
	default:
		result.Status = SeverityPass
		result.Message = "available for " + strings.Join(found, ", ")
	}
	return result
}

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a config validation check. path names the file
// the config was read from and is only used in messages.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return CategoryConfig
}

// Run validates the configuration.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	errs := config.Validate(c.cfg)
	if len(errs) == 0 {
		result.Status = SeverityPass
		result.Message = "configuration is valid"
		return result
	}

	problems := make([]string, len(errs))
	for i, err := range errs {
		problems[i] = err.Error()
	}
	result.Status = SeverityError
	result.Message = fmt.Sprintf("%d configuration problem(s)", len(errs))
	result.Details = map[string]any{"file": c.path, "problems": problems}
	result.FixHint = "edit " + c.path
	return result
}

// ConfigureCheck runs a full configuration without writing anything.
type ConfigureCheck struct {
	bc   *locator.BuildContext
	opts family.Options
}

var _ Check = (*ConfigureCheck)(nil)

// NewConfigureCheck creates a dry-run configure check.
func NewConfigureCheck(bc *locator.BuildContext, opts family.Options) *ConfigureCheck {
	return &ConfigureCheck{bc: bc, opts: opts}
}

// Name returns the unique identifier for this check.
func (c *ConfigureCheck) Name() string {
	return "configure"
}

// Category returns the grouping for this check.
func (c *ConfigureCheck) Category() string {
	return CategoryToolchain
}

// Run configures the registry and summarizes the outcome.
func (c *ConfigureCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	r, report, err := registry.Configure(c.bc, c.opts)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		return result
	}

	tuples := r.Tuples()
	targets := make([]string, len(tuples))
	for i, tu := range tuples {
		targets[i] = tu.String()
	}
	result.Details = map[string]any{"toolchains": r.Names(), "targets": targets}
	if len(report.Skipped) > 0 {
		skipped := make([]string, len(report.Skipped))
		for i, s := range report.Skipped {
			skipped[i] = string(s.Family)
		}
		result.Details["skipped"] = skipped
	}

	if r.Len() == 0 {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("no toolchains available on %s", c.bc.Host)
		return result
	}
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d toolchain(s) serving %d target(s)", r.Len(), len(r.Triples()))
	return result
}
