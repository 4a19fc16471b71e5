package ios

import (
	"strings"
	"testing"

	"github.com/otawire/otawire/internal/errors"
)

const samplePbxproj = `// !$*UTF8*$!
{
	archiveVersion = 1;
	objectVersion = 46;
	objects = {

/* Begin PBXShellScriptBuildPhase section */
		00DD1BFF1BD5951E006B06BC /* Bundle React Native code and images */ = {
			isa = PBXShellScriptBuildPhase;
			buildActionMask = 2147483647;
			files = (
			);
			inputPaths = (
			);
			name = "Bundle React Native code and images";
			outputPaths = (
			);
			runOnlyForDeploymentPostprocessing = 0;
			shellPath = /bin/sh;
			shellScript = "export NODE_BINARY=node\n../node_modules/react-native/scripts/react-native-xcode.sh";
		};
		FD10A7F022414F080027D42C /* Start Packager */ = {
			isa = PBXShellScriptBuildPhase;
			buildActionMask = 2147483647;
			files = (
			);
			name = "Start Packager";
			runOnlyForDeploymentPostprocessing = 0;
			shellPath = /bin/sh;
			shellScript = "export RCT_METRO_PORT=8081\nopen launchPackager.command";
		};
/* End PBXShellScriptBuildPhase section */

	};
	rootObject = 83CBB9F71A601CBA00E9B192;
}
`

func TestParseProjectRejectsGarbage(t *testing.T) {
	_, err := ParseProject([]byte("not an xcode project"))
	if !errors.Is(err, errors.ErrParse) {
		t.Fatalf("error = %v, want ErrParse", err)
	}
}

func TestFindBuildPhase(t *testing.T) {
	proj, err := ParseProject([]byte(samplePbxproj))
	if err != nil {
		t.Fatal(err)
	}

	phase, err := proj.FindBuildPhase(BundlePhaseName)
	if err != nil {
		t.Fatalf("FindBuildPhase() error = %v", err)
	}
	if got := proj.Script(phase); !strings.Contains(got, "react-native-xcode.sh") {
		t.Errorf("located wrong phase, script = %q", got)
	}
}

func TestFindBuildPhaseBracedVariables(t *testing.T) {
	// Customized projects expand build settings inside the phase script;
	// the ${...} braces must not hide the phase.
	input := strings.Replace(samplePbxproj,
		`shellScript = "export NODE_BINARY=node\n`,
		`shellScript = "export SRC=${SRCROOT}\nexport NODE_BINARY=node\n`,
		1)
	proj, err := ParseProject([]byte(input))
	if err != nil {
		t.Fatal(err)
	}

	phase, err := proj.FindBuildPhase(BundlePhaseName)
	if err != nil {
		t.Fatalf("FindBuildPhase() error = %v", err)
	}
	if got := proj.Script(phase); !strings.Contains(got, "${SRCROOT}") {
		t.Errorf("located wrong phase, script = %q", got)
	}

	if !proj.EnsureScriptInvocation(phase, CreateManifestScriptPath) {
		t.Fatal("expected changed = true")
	}
	want := strings.Replace(input,
		`react-native-xcode.sh"`,
		`react-native-xcode.sh\n`+CreateManifestScriptPath+`"`,
		1)
	if got := string(proj.Serialize()); got != want {
		t.Errorf("serialized project diverged beyond the script field:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFindBuildPhaseMissing(t *testing.T) {
	proj, err := ParseProject([]byte(samplePbxproj))
	if err != nil {
		t.Fatal(err)
	}

	_, err = proj.FindBuildPhase("Upload Debug Symbols")
	if !errors.Is(err, errors.ErrBuildPhaseNotFound) {
		t.Fatalf("error = %v, want ErrBuildPhaseNotFound", err)
	}
}

func TestEnsureScriptInvocationAppends(t *testing.T) {
	proj, err := ParseProject([]byte(samplePbxproj))
	if err != nil {
		t.Fatal(err)
	}
	phase, err := proj.FindBuildPhase(BundlePhaseName)
	if err != nil {
		t.Fatal(err)
	}

	if !proj.EnsureScriptInvocation(phase, CreateManifestScriptPath) {
		t.Fatal("expected changed = true for unconfigured project")
	}

	// The edit must be exactly one insertion inside the shellScript value;
	// every other byte of the file stays put.
	want := strings.Replace(samplePbxproj,
		`../node_modules/react-native/scripts/react-native-xcode.sh"`,
		`../node_modules/react-native/scripts/react-native-xcode.sh\n`+CreateManifestScriptPath+`"`,
		1)
	if got := string(proj.Serialize()); got != want {
		t.Errorf("serialized project diverged beyond the script field:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestEnsureScriptInvocationIdempotent(t *testing.T) {
	proj, err := ParseProject([]byte(samplePbxproj))
	if err != nil {
		t.Fatal(err)
	}
	phase, err := proj.FindBuildPhase(BundlePhaseName)
	if err != nil {
		t.Fatal(err)
	}

	proj.EnsureScriptInvocation(phase, CreateManifestScriptPath)
	once := string(proj.Serialize())

	if proj.EnsureScriptInvocation(phase, CreateManifestScriptPath) {
		t.Error("expected changed = false on second application")
	}
	if twice := string(proj.Serialize()); twice != once {
		t.Error("second application altered the project")
	}
	if strings.Count(once, CreateManifestScriptPath) != 1 {
		t.Errorf("invocation duplicated:\n%s", once)
	}
}

func TestEnsureScriptInvocationOtherPhaseUntouched(t *testing.T) {
	proj, err := ParseProject([]byte(samplePbxproj))
	if err != nil {
		t.Fatal(err)
	}
	phase, err := proj.FindBuildPhase(BundlePhaseName)
	if err != nil {
		t.Fatal(err)
	}
	proj.EnsureScriptInvocation(phase, CreateManifestScriptPath)

	out := string(proj.Serialize())
	if !strings.Contains(out, `"export RCT_METRO_PORT=8081\nopen launchPackager.command"`) {
		t.Error("unrelated build phase was modified")
	}
}
