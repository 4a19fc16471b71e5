package ios

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/otawire/otawire/internal/errors"
	"github.com/otawire/otawire/internal/logging"
	"github.com/otawire/otawire/internal/paths"
	"github.com/otawire/otawire/internal/updates"
)

func TestDetect(t *testing.T) {
	p := New(logging.NewDiscard())

	root := t.TempDir()
	writePbxproj(t, root, "MyApp")
	if !p.Detect(root) {
		t.Error("expected Detect to find ios/ directory")
	}
	if p.Detect(t.TempDir()) {
		t.Error("expected Detect to fail without ios/ directory")
	}
}

func TestConfigure(t *testing.T) {
	p := New(logging.ForTest(t))
	root := t.TempDir()
	writePbxproj(t, root, "MyApp")
	cfg := updates.Config{SDKVersion: "40.0.0", UpdateURL: "https://exp.host/@u/s"}

	changed, err := p.Configure(root, cfg)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if len(changed) != 2 {
		t.Fatalf("changed = %v, want project and plist", changed)
	}

	proj, err := os.ReadFile(filepath.Join(root, "ios", "MyApp.xcodeproj", "project.pbxproj"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(proj), CreateManifestScriptPath) {
		t.Error("build phase missing manifest script invocation")
	}

	if _, err := os.Stat(paths.ExpoPlistPath(root, "MyApp")); err != nil {
		t.Errorf("Expo.plist not written: %v", err)
	}
}

func TestConfigureIdempotent(t *testing.T) {
	p := New(logging.ForTest(t))
	root := t.TempDir()
	writePbxproj(t, root, "MyApp")
	cfg := updates.Config{SDKVersion: "40.0.0", UpdateURL: "https://exp.host/@u/s"}

	if _, err := p.Configure(root, cfg); err != nil {
		t.Fatal(err)
	}

	projPath := filepath.Join(root, "ios", "MyApp.xcodeproj", "project.pbxproj")
	projOnce, _ := os.ReadFile(projPath)
	plistOnce, _ := os.ReadFile(paths.ExpoPlistPath(root, "MyApp"))

	changed, err := p.Configure(root, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 0 {
		t.Errorf("second run reported changes: %v", changed)
	}

	projTwice, _ := os.ReadFile(projPath)
	plistTwice, _ := os.ReadFile(paths.ExpoPlistPath(root, "MyApp"))

	if string(projOnce) != string(projTwice) {
		t.Error("project.pbxproj changed on second run")
	}
	if string(plistOnce) != string(plistTwice) {
		t.Error("Expo.plist changed on second run")
	}
}

func TestConfigureNoProject(t *testing.T) {
	p := New(logging.NewDiscard())
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "ios"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := p.Configure(root, updates.Config{SDKVersion: "40.0.0", UpdateURL: "u"})
	if !errors.Is(err, errors.ErrProjectNotFound) {
		t.Fatalf("error = %v, want ErrProjectNotFound", err)
	}
	if _, err := os.Stat(paths.ExpoPlistPath(root, "MyApp")); !os.IsNotExist(err) {
		t.Error("Expo.plist written despite missing project")
	}
}

func TestConfigureMissingBuildPhase(t *testing.T) {
	p := New(logging.NewDiscard())
	root := t.TempDir()

	dir := filepath.Join(root, "ios", "MyApp.xcodeproj")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	// A valid project with no bundle phase at all.
	noPhase := "// !$*UTF8*$!\n{\n\tisa = PBXProject;\n\trootObject = ABC;\n}\n"
	if err := os.WriteFile(filepath.Join(dir, "project.pbxproj"), []byte(noPhase), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := p.Configure(root, updates.Config{SDKVersion: "40.0.0", UpdateURL: "u"})
	if !errors.Is(err, errors.ErrBuildPhaseNotFound) {
		t.Fatalf("error = %v, want ErrBuildPhaseNotFound", err)
	}
	if _, err := os.Stat(paths.ExpoPlistPath(root, "MyApp")); !os.IsNotExist(err) {
		t.Error("Expo.plist written despite aborted build-phase edit")
	}
}
