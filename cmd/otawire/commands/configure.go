package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/otawire/otawire/internal/cli/status"
	"github.com/otawire/otawire/internal/config"
	"github.com/otawire/otawire/internal/configure"
	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/git"
	"github.com/otawire/otawire/internal/logging"
	"github.com/otawire/otawire/internal/platform"
	"github.com/otawire/otawire/internal/project"
)

var (
	updateURLFlag      string
	sdkVersionFlag     string
	runtimeVersionFlag string
	accountFlag        string
	projectDirFlag     string
	nonInteractiveFlag bool
)

func init() {
	configureCmd.Flags().StringVar(&updateURLFlag, "update-url", "",
		"update URL to write (default: derived from app.json)")
	configureCmd.Flags().StringVar(&sdkVersionFlag, "sdk-version", "",
		"SDK version selector (default: expo.sdkVersion from app.json)")
	configureCmd.Flags().StringVar(&runtimeVersionFlag, "runtime-version", "",
		"runtime version selector, supersedes --sdk-version")
	configureCmd.Flags().StringVar(&accountFlag, "account", "",
		"account for the derived update URL when app.json has no owner")
	configureCmd.Flags().StringVar(&projectDirFlag, "project-dir", ".",
		"project root containing package.json")
	configureCmd.Flags().BoolVar(&nonInteractiveFlag, "non-interactive", false,
		"commit edited files without showing a review prompt")
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Wire the update mechanism into the native build files",
	Long: `Configure edits the project's native build files so the app checks for
and applies over-the-air updates:

  iOS      ios/*.xcodeproj/project.pbxproj (bundle build phase) and
           ios/<ProjectName>/Supporting/Expo.plist (regenerated)
  Android  android/app/build.gradle (apply-from line) and
           android/app/src/main/AndroidManifest.xml (meta-data entries)

A project without the expo-updates dependency is left untouched. Inside a
git repository the edited files are shown for review and committed on
confirmation; declining leaves them in the working tree.`,
	Example: `  # Configure all detected platforms
  otawire configure

  # Pin a runtime version and skip the review prompt
  otawire configure --runtime-version 1.0.0 --non-interactive

  # Derive the URL for a team account
  otawire configure --account myteam

See Also: otawire doctor`,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	log := logging.FromContext(cmd.Context())

	root, err := filepath.Abs(projectDirFlag)
	if err != nil {
		return errors.NewUserError(err, "pass a valid --project-dir")
	}

	overrides, err := config.LoadProjectOverrides(root)
	if err != nil {
		return errors.NewConfigError(err)
	}

	updateURL := updateURLFlag
	if updateURL == "" {
		updateURL = overrides.UpdateURL
	}
	account := accountFlag
	if account == "" {
		account = overrides.Account
	}
	if account == "" {
		account = os.Getenv("EXPO_ACCOUNT")
	}
	if account == "" {
		account = viper.GetString("default_account")
	}
	nonInteractive := nonInteractiveFlag || overrides.NonInteractive

	registry := platform.DefaultRegistry(log, !nonInteractive && logging.IsTTY(os.Stdout))
	platforms, err := resolvePlatforms(registry, root)
	if err != nil {
		return err
	}

	var vcs configure.VCS
	if git.IsRepo(root) {
		vcs = git.NewReviewer(git.NewClient(root))
	} else {
		log.Debug("project is not a git repository, skipping review step")
	}

	flow := configure.New(log, status.New(quiet), vcs)
	res, err := flow.Run(configure.Options{
		ProjectDir:     root,
		Platforms:      platforms,
		UpdateURL:      updateURL,
		SDKVersion:     sdkVersionFlag,
		RuntimeVersion: runtimeVersionFlag,
		Account:        account,
		UpdateHost:     viper.GetString("update_host"),
		NonInteractive: nonInteractive,
	})
	if err != nil {
		return asExitError(err)
	}

	switch {
	case res.Committed:
		log.Info("configuration committed", "files", len(res.ChangedPaths))
	case len(res.ChangedPaths) > 0:
		log.Info("configuration written, review pending in working tree",
			"files", len(res.ChangedPaths))
	default:
		log.Info("project already configured, nothing to do")
	}
	return nil
}

// resolvePlatforms picks the editors to run: the --platform flag when given,
// otherwise every registered platform whose layout is present under root.
func resolvePlatforms(registry *platform.Registry, root string) ([]platform.Platform, error) {
	if len(platformFlag) > 0 {
		platforms, err := registry.Select(platformFlag)
		if err != nil {
			return nil, errors.NewUserError(err, "valid platforms: ios, android")
		}
		return platforms, nil
	}

	platforms := registry.Detected(root)
	if len(platforms) == 0 {
		return nil, errors.NewUserError(
			errors.New("no ios/ or android/ directory found"),
			"Run from the project root, or pass --project-dir")
	}
	return platforms, nil
}

// asExitError maps flow errors to exit codes: problems the user can fix in
// the project are user errors, everything else is a system error.
func asExitError(err error) error {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	switch {
	case errors.Is(err, errors.ErrCommitAborted):
		return errors.NewUserError(err, "Re-run and accept the review, or commit the files manually")
	case errors.Is(err, errors.ErrProjectNotFound),
		errors.Is(err, errors.ErrFileNotFound),
		errors.Is(err, errors.ErrParse),
		errors.Is(err, errors.ErrBuildPhaseNotFound),
		errors.Is(err, errors.ErrApplicationNotFound),
		errors.Is(err, project.ErrNoSlug),
		errors.Is(err, project.ErrNoAccount):
		return errors.NewConfigError(err)
	default:
		return errors.NewSystemError(err, "")
	}
}
