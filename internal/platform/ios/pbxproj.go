package ios

import (
	"regexp"
	"strings"

	"github.com/otawire/otawire/internal/errors"
)

// BundlePhaseName is the shell-script build phase the update script is
// appended to. A project without it fails; the phase is never synthesized.
const BundlePhaseName = "Bundle React Native code and images"

// CreateManifestScriptPath is the invocation appended to the build phase,
// relative to the ios/ directory.
const CreateManifestScriptPath = "../node_modules/expo-updates/scripts/create-manifest-ios.sh"

var (
	// A phase entry ends at the first line-initial closing brace after its
	// isa line. Scanning by lines rather than by brace pairing tolerates
	// ${VAR} expansions inside the shellScript value.
	phaseEndRe = regexp.MustCompile(`(?m)^[ \t]*\};`)

	phaseNameRe   = regexp.MustCompile(`(?m)^\s*name\s*=\s*("(?:[^"\\]|\\.)*"|[^";\s]+)\s*;`)
	shellScriptRe = regexp.MustCompile(`(?s)shellScript\s*=\s*"((?:[^"\\]|\\.)*)"\s*;`)
)

// Project is a parsed Xcode project descriptor. Parsing is deliberately
// shallow: the file is kept as raw text and edits splice byte ranges, so
// everything outside the targeted field survives serialization unchanged.
type Project struct {
	src string
}

// ParseProject wraps pbxproj text after a sanity check.
func ParseProject(data []byte) (*Project, error) {
	src := string(data)
	if !strings.Contains(src, "isa = ") {
		return nil, errors.Wrapf(errors.ErrParse, "project.pbxproj: not a recognizable Xcode project")
	}
	return &Project{src: src}, nil
}

// BuildPhase is a located shell-script phase: the byte range of its
// shellScript string contents within the project source.
type BuildPhase struct {
	scriptStart int
	scriptEnd   int
}

// Script returns the phase's script field as stored (escape sequences
// like \n are kept literal).
func (p *Project) Script(phase *BuildPhase) string {
	return p.src[phase.scriptStart:phase.scriptEnd]
}

// FindBuildPhase returns the first PBXShellScriptBuildPhase whose name
// equals name. Absence is fatal: ErrBuildPhaseNotFound.
func (p *Project) FindBuildPhase(name string) (*BuildPhase, error) {
	section := p.src
	offset := 0
	// Narrow to the PBXShellScriptBuildPhase section when markers exist.
	if begin := strings.Index(section, "/* Begin PBXShellScriptBuildPhase section */"); begin >= 0 {
		end := strings.Index(section[begin:], "/* End PBXShellScriptBuildPhase section */")
		if end >= 0 {
			offset = begin
			section = section[begin : begin+end]
		}
	}

	for pos := 0; ; {
		isa := strings.Index(section[pos:], "isa = PBXShellScriptBuildPhase;")
		if isa < 0 {
			break
		}
		isa += pos

		blockStart := strings.LastIndexByte(section[:isa], '{')
		endLoc := phaseEndRe.FindStringIndex(section[isa:])
		if blockStart < 0 || endLoc == nil {
			break
		}
		blockEnd := isa + endLoc[1]
		block := section[blockStart:blockEnd]
		pos = blockEnd

		nameMatch := phaseNameRe.FindStringSubmatch(block)
		if nameMatch == nil {
			continue
		}
		if strings.Trim(nameMatch[1], `"`) != name {
			continue
		}

		scriptLoc := shellScriptRe.FindStringSubmatchIndex(block)
		if scriptLoc == nil {
			continue
		}

		return &BuildPhase{
			scriptStart: offset + blockStart + scriptLoc[2],
			scriptEnd:   offset + blockStart + scriptLoc[3],
		}, nil
	}

	return nil, errors.Wrapf(errors.ErrBuildPhaseNotFound, "%q", name)
}

// HasScriptInvocation reports whether the phase's script already invokes
// scriptPath.
func (p *Project) HasScriptInvocation(phase *BuildPhase, scriptPath string) bool {
	return strings.Contains(p.Script(phase), scriptPath)
}

// EnsureScriptInvocation appends scriptPath to the phase's script unless it
// is already present (substring containment). Existing content is never
// truncated or reordered; the new invocation lands on its own line using
// the field's \n escape convention.
func (p *Project) EnsureScriptInvocation(phase *BuildPhase, scriptPath string) bool {
	script := p.Script(phase)
	if strings.Contains(script, scriptPath) {
		return false
	}

	appended := script
	if appended != "" && !strings.HasSuffix(appended, `\n`) {
		appended += `\n`
	}
	appended += scriptPath

	p.src = p.src[:phase.scriptStart] + appended + p.src[phase.scriptEnd:]
	phase.scriptEnd = phase.scriptStart + len(appended)
	return true
}

// Serialize returns the full project text.
func (p *Project) Serialize() []byte {
	return []byte(p.src)
}
