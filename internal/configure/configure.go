// Package configure orchestrates the end-to-end wiring flow: gate on the
// updates package being installed, resolve the desired configuration, run
// each platform editor, then hand the changed files to version control for
// review. Steps are strictly ordered and there is no rollback: every edit
// is idempotent, so the recovery path for any failure is to re-run.
package configure

import (
	"log/slog"

	"github.com/otawire/otawire/internal/cli/status"
	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/platform"
	"github.com/otawire/otawire/internal/project"
	"github.com/otawire/otawire/internal/updates"
)

// State is the phase the flow is in. Transitions are linear:
// Idle → Configuring → AwaitingVCS → Done, with Failed reachable from any
// phase.
type State string

// Flow states.
const (
	StateIdle        State = "idle"
	StateConfiguring State = "configuring"
	StateAwaitingVCS State = "awaiting_vcs"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// CommitMessage is used when the flow commits the edited files.
const CommitMessage = "Configure expo-updates"

// VCS is the version-control collaborator the flow hands changed files to.
type VCS interface {
	ReviewAndCommit(message string, paths []string, nonInteractive bool) error
}

// Options collects the flow's inputs, already merged from CLI flags, the
// project override file, and user configuration by the command layer.
type Options struct {
	// ProjectDir is the project root containing package.json.
	ProjectDir string

	// Platforms are the resolved platform editors to run, in order.
	Platforms []platform.Platform

	// UpdateURL overrides the derived update URL when non-empty.
	UpdateURL string

	// SDKVersion and RuntimeVersion override app.json values when non-empty.
	SDKVersion     string
	RuntimeVersion string

	// Account is the fallback account when app.json has no owner field.
	Account string

	// UpdateHost serves published updates; used when deriving the URL.
	UpdateHost string

	// NonInteractive commits without prompting.
	NonInteractive bool
}

// Result reports what the flow did.
type Result struct {
	State        State
	ChangedPaths []string
	Committed    bool
}

// Flow runs the configuration steps.
type Flow struct {
	log      *slog.Logger
	reporter *status.Reporter
	vcs      VCS
}

// New creates a Flow. vcs may be nil when the project is not under version
// control; edited files are then left in place without review.
func New(log *slog.Logger, reporter *status.Reporter, vcs VCS) *Flow {
	return &Flow{log: log, reporter: reporter, vcs: vcs}
}

// Run executes the flow against opts.ProjectDir. The returned Result is
// valid even on error and carries the state the flow failed in.
func (f *Flow) Run(opts Options) (*Result, error) {
	res := &Result{State: StateIdle}

	pkg, err := project.ReadPackageJSON(opts.ProjectDir)
	if err != nil {
		res.State = StateFailed
		return res, err
	}
	if !pkg.HasUpdatesPackage() {
		f.log.Info("expo-updates is not a dependency, nothing to configure",
			"project", pkg.Name)
		f.reporter.Info("expo-updates not installed, nothing to do")
		res.State = StateDone
		return res, nil
	}

	cfg, err := f.resolveConfig(opts)
	if err != nil {
		res.State = StateFailed
		return res, err
	}

	res.State = StateConfiguring
	for _, p := range opts.Platforms {
		f.reporter.Start("Configuring " + p.DisplayName())
		changed, err := p.Configure(opts.ProjectDir, cfg)
		if err != nil {
			f.reporter.Fail(p.DisplayName() + " configuration failed")
			res.State = StateFailed
			return res, err
		}
		if len(changed) == 0 {
			f.reporter.Succeed(p.DisplayName() + " already configured")
		} else {
			f.reporter.Succeed(p.DisplayName() + " configured")
		}
		res.ChangedPaths = append(res.ChangedPaths, changed...)
	}

	if len(res.ChangedPaths) == 0 || f.vcs == nil {
		res.State = StateDone
		return res, nil
	}

	res.State = StateAwaitingVCS
	if err := f.vcs.ReviewAndCommit(CommitMessage, res.ChangedPaths, opts.NonInteractive); err != nil {
		res.State = StateFailed
		return res, err
	}
	res.Committed = true
	res.State = StateDone
	return res, nil
}

// resolveConfig merges app.json with the option overrides into the desired
// update configuration. Overrides win over app.json field for field.
func (f *Flow) resolveConfig(opts Options) (updates.Config, error) {
	app, err := project.ReadAppConfig(opts.ProjectDir)
	if err != nil {
		return updates.Config{}, err
	}

	cfg := updates.Config{
		SDKVersion:     app.SDKVersion,
		RuntimeVersion: app.RuntimeVersion,
		UpdateURL:      opts.UpdateURL,
	}
	if opts.SDKVersion != "" {
		cfg.SDKVersion = opts.SDKVersion
	}
	if opts.RuntimeVersion != "" {
		cfg.RuntimeVersion = opts.RuntimeVersion
	}

	if cfg.UpdateURL == "" {
		if app.Slug == "" {
			return updates.Config{}, project.ErrNoSlug
		}
		account, err := app.ResolveAccount(opts.Account)
		if err != nil {
			return updates.Config{}, errors.NewUserError(err,
				"Set the owner field in app.json or pass --account")
		}
		cfg.UpdateURL = project.UpdateURL(opts.UpdateHost, account, app.Slug)
	}

	if err := cfg.Validate(); err != nil {
		return updates.Config{}, errors.NewUserError(err,
			"Pass --sdk-version or --runtime-version, or set them in app.json")
	}

	f.log.Debug("resolved update configuration",
		"url", cfg.UpdateURL,
		"runtime_version", cfg.RuntimeVersion,
		"sdk_version", cfg.SDKVersion)
	return cfg, nil
}
