package sysconfig

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleOSRelease = `NAME="Tumbleweed"
# comment line
ID=opensuse-tumbleweed
PRETTY_NAME="openSUSE Tumbleweed"
VERSION_ID='20260829'
ANSI_COLOR="0;32"
`

func writeOSRelease(t *testing.T, root, content string) {
	t.Helper()
	etc := filepath.Join(root, "etc")
	if err := os.MkdirAll(etc, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(etc, "os-release"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestReadOSRelease(t *testing.T) {
	root := t.TempDir()
	writeOSRelease(t, root, sampleOSRelease)
	release, err := ReadOSRelease(root)
	if err != nil {
		t.Fatalf("ReadOSRelease returned error: %v", err)
	}
	if release["PRETTY_NAME"] != "openSUSE Tumbleweed" {
		t.Fatalf("double quotes must be stripped, got %q", release["PRETTY_NAME"])
	}
	if release["VERSION_ID"] != "20260829" {
		t.Fatalf("single quotes must be stripped, got %q", release["VERSION_ID"])
	}
	if release["ID"] != "opensuse-tumbleweed" {
		t.Fatalf("unquoted value must pass through, got %q", release["ID"])
	}
	if _, ok := release["# comment line"]; ok {
		t.Fatal("comment lines must be ignored")
	}
}

func TestReadOSReleaseFallsBackToUsrLib(t *testing.T) {
	root := t.TempDir()
	usrLib := filepath.Join(root, "usr", "lib")
	if err := os.MkdirAll(usrLib, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(usrLib, "os-release"), []byte("PRETTY_NAME=Fallback\n"), 0644); err != nil {
		t.Fatal(err)
	}
	release, err := ReadOSRelease(root)
	if err != nil {
		t.Fatalf("ReadOSRelease returned error: %v", err)
	}
	if release["PRETTY_NAME"] != "Fallback" {
		t.Fatalf("expected /usr/lib fallback, got %q", release["PRETTY_NAME"])
	}
}

func TestBannerUsesPrettyName(t *testing.T) {
	root := t.TempDir()
	writeOSRelease(t, root, sampleOSRelease)
	if got := Banner(root); got != "openSUSE Tumbleweed" {
		t.Fatalf("expected PRETTY_NAME banner, got %q", got)
	}
}

func TestBannerVendorOverride(t *testing.T) {
	root := t.TempDir()
	writeOSRelease(t, root, sampleOSRelease+`VENDOR_NAME="ACME Appliance"
VENDOR_VERSION="3.1"
`)
	if got := Banner(root); got != "ACME Appliance 3.1" {
		t.Fatalf("expected vendor override banner, got %q", got)
	}
}

func TestBannerVendorOverrideNeedsBothVariables(t *testing.T) {
	root := t.TempDir()
	writeOSRelease(t, root, sampleOSRelease+"VENDOR_NAME=ACME\n")
	if got := Banner(root); got != "openSUSE Tumbleweed" {
		t.Fatalf("single vendor variable must not override, got %q", got)
	}
}

func TestBannerFallbackWithoutOSRelease(t *testing.T) {
	if got := Banner(t.TempDir()); got != fallbackBanner {
		t.Fatalf("expected fallback banner, got %q", got)
	}
}
