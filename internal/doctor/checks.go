package doctor

import (
	"os"
	"path/filepath"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/git"
	"github.com/otawire/otawire/internal/paths"
	"github.com/otawire/otawire/internal/platform/android"
	"github.com/otawire/otawire/internal/platform/ios"
	"github.com/otawire/otawire/internal/project"
	"github.com/otawire/otawire/internal/updates"
	"github.com/otawire/otawire/pkg/fileutil"
)

// ProjectCheck verifies the JavaScript-side project descriptors.
type ProjectCheck struct {
	root string
}

// NewProjectCheck creates a check for the project at root.
func NewProjectCheck(root string) *ProjectCheck {
	return &ProjectCheck{root: root}
}

func (c *ProjectCheck) Name() string     { return "project-descriptors" }
func (c *ProjectCheck) Category() string { return "project" }

// Run validates package.json and app.json.
func (c *ProjectCheck) Run() []*CheckResult {
	var results []*CheckResult

	pkg, err := project.ReadPackageJSON(c.root)
	if err != nil {
		return append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: "package.json: " + err.Error(),
			FixHint: "Run from the project root containing package.json",
		})
	}

	if !pkg.HasUpdatesPackage() {
		results = append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityWarning,
			Message: "expo-updates is not a dependency, configure would be a no-op",
			FixHint: "Install expo-updates first",
		})
	} else {
		results = append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityPass,
			Message: "expo-updates is installed",
		})
	}

	app, err := project.ReadAppConfig(c.root)
	if err != nil {
		return append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: "app.json: " + err.Error(),
		})
	}
	if app.Slug == "" {
		results = append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityWarning,
			Message: "app.json has no expo.slug, the update URL cannot be derived",
			FixHint: "Set expo.slug in app.json or pass --update-url",
		})
	}
	if app.Owner == "" {
		results = append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityInfo,
			Message: "app.json has no expo.owner, the account must come from --account or config",
		})
	}

	return results
}

// IOSCheck verifies the Xcode project is locatable and editable.
type IOSCheck struct {
	root string
}

// NewIOSCheck creates a check for the project at root.
func NewIOSCheck(root string) *IOSCheck {
	return &IOSCheck{root: root}
}

func (c *IOSCheck) Name() string     { return "xcode-project" }
func (c *IOSCheck) Category() string { return "ios" }

// Run locates the pbxproj and verifies the bundle build phase exists.
func (c *IOSCheck) Run() []*CheckResult {
	if info, err := os.Stat(filepath.Join(c.root, paths.PlatformDir(paths.PlatformIOS))); err != nil || !info.IsDir() {
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityInfo,
			Message: "no ios/ directory, platform skipped",
		}}
	}

	loc, err := ios.Locate(c.root, nil)
	if err != nil {
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: err.Error(),
		}}
	}

	data, err := fileutil.ReadFileWithLimit(loc.PbxprojPath)
	if err != nil {
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: "reading project.pbxproj: " + err.Error(),
		}}
	}

	proj, err := ios.ParseProject(data)
	if err != nil {
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: err.Error(),
		}}
	}

	phase, err := proj.FindBuildPhase(ios.BundlePhaseName)
	if err != nil {
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: err.Error(),
			FixHint: "The bundle build phase must exist; it is never synthesized",
		}}
	}

	if proj.HasScriptInvocation(phase, ios.CreateManifestScriptPath) {
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityPass,
			Message: loc.Name + ": bundle build phase already invokes create-manifest-ios.sh",
		}}
	}
	return []*CheckResult{{
		Name: c.Name(), Category: c.Category(), Status: SeverityInfo,
		Message: loc.Name + ": bundle build phase found, not yet configured",
	}}
}

// AndroidCheck verifies the Gradle descriptor and manifest are editable.
type AndroidCheck struct {
	root string
}

// NewAndroidCheck creates a check for the project at root.
func NewAndroidCheck(root string) *AndroidCheck {
	return &AndroidCheck{root: root}
}

func (c *AndroidCheck) Name() string     { return "android-build-files" }
func (c *AndroidCheck) Category() string { return "android" }

// Run verifies build.gradle and AndroidManifest.xml.
func (c *AndroidCheck) Run() []*CheckResult {
	if info, err := os.Stat(filepath.Join(c.root, paths.PlatformDir(paths.PlatformAndroid))); err != nil || !info.IsDir() {
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityInfo,
			Message: "no android/ directory, platform skipped",
		}}
	}

	var results []*CheckResult

	gradleData, err := fileutil.ReadFileWithLimit(filepath.Join(c.root, paths.AndroidBuildGradle))
	switch {
	case err != nil:
		results = append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: paths.AndroidBuildGradle + ": " + err.Error(),
		})
	default:
		if _, changed := android.EnsureApplyFrom(string(gradleData)); !changed {
			results = append(results, &CheckResult{
				Name: c.Name(), Category: c.Category(), Status: SeverityPass,
				Message: "build.gradle already applies create-manifest-android.gradle",
			})
		} else {
			results = append(results, &CheckResult{
				Name: c.Name(), Category: c.Category(), Status: SeverityInfo,
				Message: "build.gradle found, not yet configured",
			})
		}
	}

	manifestData, err := fileutil.ReadFileWithLimit(filepath.Join(c.root, paths.AndroidManifest))
	if err != nil {
		return append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: paths.AndroidManifest + ": " + err.Error(),
		})
	}

	man, err := android.ParseManifest(manifestData)
	if err != nil {
		return append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: err.Error(),
		})
	}

	if !man.HasApplication() {
		return append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: "AndroidManifest.xml: " + errors.ErrApplicationNotFound.Error(),
			FixHint: "AndroidManifest.xml needs an <application> element",
		})
	}

	if man.HasMetaData(updates.AndroidUpdateURLKey) {
		results = append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityPass,
			Message: "manifest carries the update URL meta-data",
		})
	} else {
		results = append(results, &CheckResult{
			Name: c.Name(), Category: c.Category(), Status: SeverityInfo,
			Message: "manifest found, update meta-data not yet written",
		})
	}

	return results
}

// VCSCheck verifies the version-control state of the project.
type VCSCheck struct {
	root string
}

// NewVCSCheck creates a check for the project at root.
func NewVCSCheck(root string) *VCSCheck {
	return &VCSCheck{root: root}
}

func (c *VCSCheck) Name() string     { return "working-tree" }
func (c *VCSCheck) Category() string { return "vcs" }

// Run reports whether the project is a git repository with a clean tree.
func (c *VCSCheck) Run() []*CheckResult {
	if !git.IsRepo(c.root) {
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityInfo,
			Message: "not a git repository, edits will not be offered for commit",
		}}
	}

	if err := git.NewClient(c.root).EnsureClean(); err != nil {
		if errors.Is(err, errors.ErrDirtyTree) {
			return []*CheckResult{{
				Name: c.Name(), Category: c.Category(), Status: SeverityWarning,
				Message: "working tree has uncommitted changes",
				FixHint: "Commit or stash before configuring to keep the review diff clean",
			}}
		}
		return []*CheckResult{{
			Name: c.Name(), Category: c.Category(), Status: SeverityError,
			Message: err.Error(),
		}}
	}

	return []*CheckResult{{
		Name: c.Name(), Category: c.Category(), Status: SeverityPass,
		Message: "working tree is clean",
	}}
}
