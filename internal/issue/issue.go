// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry. Each bootstrap failure kind has exactly one.
type Id int

const (
	RuntimeMissingId Id = iota + 1
	ConfigMissingId
	ProvisioningFailedId
	ActivationFailedId
	InstallationFailedId
	LaunchFailedId
	HookFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

// Issue is a single catalog entry: operator-facing Markdown guidance for one
// failure kind, plus optional documentation links.
type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // pointers to fuller documentation
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render produces the terminal-ready guidance text for this issue.
// When Markdown rendering fails, callers should fall back to the raw
// MarkdownMsg so the remediation steps are never lost.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	// render is a package variable so tests can substitute a fake renderer.
	render = glamour.Render

	runtimeMissingIssue = &Issue{
		id: RuntimeMissingId,
		mdMsg: `
# Python interpreter not found!

pyboot needs a Python 3.10+ interpreter on your PATH before it can prepare
the application environment. None of the expected binaries (python3, python)
could be located.

## Things you can try:
- Install Python 3.10 or newer from https://www.python.org/downloads/
- On Windows, tick **"Add Python to PATH"** in the installer
- On Linux/macOS, make sure the directory containing the python3 binary is
  listed in your PATH environment variable, then open a fresh terminal
- Verify the installation:
~~~
$ python3 --version
~~~`,
		extLinks: []HttpLink{"https://www.python.org/downloads/"},
	}

	configMissingIssue = &Issue{
		id: ConfigMissingId,
		mdMsg: `
# No .env file found!

The application reads its credentials and settings from a .env file in the
project directory. pyboot never creates or edits this file for you — it
holds secrets that must come from you.

## First-run checklist:
1. Locate the template file ` + "`.env.example`" + ` in the project directory
2. Copy it: ` + "`cp .env.example .env`" + `
3. Make sure the copy is named exactly ` + "`.env`" + `
4. Open ` + "`.env`" + ` and fill in your API credentials
5. Run pyboot again

See the project README for a description of every setting.`,
	}

	provisioningFailedIssue = &Issue{
		id: ProvisioningFailedId,
		mdMsg: `
# Could not create the virtual environment!

Creating the isolated Python environment (.venv) failed. This usually means
a disk or permission problem, not a bug in the application.

## Things you can try:
- Check free disk space
- Check that you can write to the project directory
- Re-run from a terminal with sufficient permissions
- If a half-created .venv directory exists, delete it and run pyboot again`,
	}

	activationFailedIssue = &Issue{
		id: ActivationFailedId,
		mdMsg: `
# Could not activate the virtual environment!

The .venv directory exists but does not look like a usable virtual
environment (its interpreter or bin directory is missing). pyboot never
deletes environments on its own.

## Things you can try:
- Delete the .venv directory yourself:
~~~
$ rm -rf .venv
~~~
- Run pyboot again — it will recreate the environment from scratch`,
	}

	installationFailedIssue = &Issue{
		id: InstallationFailedId,
		mdMsg: `
# Dependency installation failed!

pip exited with an error while installing the packages listed in
requirements.txt.

## Things you can try:
- Check your network connection (pip downloads from PyPI)
- Re-run behind a different network if a proxy or firewall blocks PyPI
- Read pip's output above for the specific package that failed
- Run pyboot again once the underlying problem is fixed`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# The application exited with an error!

The web application stopped with a non-zero exit status. Common causes:

- **Bad credentials** — check the values in your .env file
- **Port already in use** — another process is bound to port 5000
- **No network access** — the app could not reach its upstream APIs

Fix the one that applies and run pyboot again.`,
	}

	hookFailedIssue = &Issue{
		id: HookFailedId,
		mdMsg: `
# Pre-launch hook failed!

The hooks.pre_launch script from your pyboot configuration exited with a
non-zero status, so the application was not started.

## Things you can try:
- Read the hook's output above
- Fix or remove the hooks.pre_launch entry in your config.cue`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load pyboot configuration!

Your config.cue file could not be loaded or does not match the expected
schema. pyboot falls back to built-in defaults when no config file exists.

## Things you can try:
- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/pyboot/config.cue
~~~

## Example configuration:
~~~cue
env_file: ".env"
venv_dir: ".venv"
marker_package: "flask"

ui: {
  verbose: false
}
~~~`,
	}

	issues = map[Id]*Issue{
		runtimeMissingIssue.Id():     runtimeMissingIssue,
		configMissingIssue.Id():      configMissingIssue,
		provisioningFailedIssue.Id(): provisioningFailedIssue,
		activationFailedIssue.Id():   activationFailedIssue,
		installationFailedIssue.Id(): installationFailedIssue,
		launchFailedIssue.Id():       launchFailedIssue,
		hookFailedIssue.Id():         hookFailedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
