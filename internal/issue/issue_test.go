// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestCatalogCoversAllIds(t *testing.T) {
	t.Parallel()

	ids := []Id{
		RuntimeMissingId,
		ConfigMissingId,
		ProvisioningFailedId,
		ActivationFailedId,
		InstallationFailedId,
		LaunchFailedId,
		HookFailedId,
		ConfigLoadFailedId,
	}

	for _, id := range ids {
		if Get(id) == nil {
			t.Errorf("Get(%d) = nil, want a catalog entry for every failure kind", id)
		}
	}

	if len(Values()) != len(ids) {
		t.Errorf("catalog has %d entries, want %d", len(Values()), len(ids))
	}
}

func TestRuntimeMissingGuidance(t *testing.T) {
	t.Parallel()

	msg := string(Get(RuntimeMissingId).MarkdownMsg())
	for _, want := range []string{"python.org", "PATH", "3.10"} {
		if !strings.Contains(msg, want) {
			t.Errorf("RuntimeMissing guidance does not mention %q", want)
		}
	}
}

func TestConfigMissingChecklistHasFiveSteps(t *testing.T) {
	t.Parallel()

	msg := string(Get(ConfigMissingId).MarkdownMsg())
	for _, step := range []string{"1.", "2.", "3.", "4.", "5."} {
		if !strings.Contains(msg, step) {
			t.Errorf("ConfigMissing checklist is missing step %q", step)
		}
	}
	if !strings.Contains(msg, "README") {
		t.Error("ConfigMissing guidance does not point at fuller documentation")
	}
}

func TestLaunchFailedListsAllThreeHints(t *testing.T) {
	t.Parallel()

	msg := string(Get(LaunchFailedId).MarkdownMsg())
	for _, hint := range []string{"credentials", "Port", "network"} {
		if !strings.Contains(msg, hint) {
			t.Errorf("LaunchFailed hint list is missing %q", hint)
		}
	}
}

func TestRenderUsesRenderer(t *testing.T) {
	orig := render
	defer func() { render = orig }()

	var gotInput string
	render = func(in string, stylePath string) (string, error) {
		gotInput = in
		return "rendered", nil
	}

	out, err := Get(RuntimeMissingId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered" {
		t.Errorf("Render() = %q, want %q", out, "rendered")
	}
	if !strings.Contains(gotInput, "See also") {
		t.Error("Render() did not append the See also section for an issue with links")
	}
}
