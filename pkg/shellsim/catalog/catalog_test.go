package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/shellsim/pkg/shellsim/catalog"
	"github.com/arthur-debert/shellsim/pkg/shellsim/core"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := catalog.Default()
	require.NotNil(t, c)
	assert.Equal(t, 165, c.Len())

	for _, e := range c.Entries() {
		assert.NotEmpty(t, e.Verb(), "entry %q", e.Cmd)
		assert.Contains(t, catalog.Categories, e.Category, "entry %q", e.Cmd)
	}
}

func TestLookupRespectsPlatform(t *testing.T) {
	c := catalog.Default()

	testCases := []struct {
		verb     string
		platform core.Platform
		found    bool
		desc     string
	}{
		{"brew", core.PlatformMac, true, "Install package (Homebrew)"},
		{"brew", core.PlatformWindows, false, ""},
		{"brew", core.PlatformLinux, false, ""},
		{"history", core.PlatformLinux, true, "View previously run commands"},
		{"history", core.PlatformWindows, true, "View previously run commands"},
		{"tasklist", core.PlatformWindows, true, "List running processes"},
		{"tasklist", core.PlatformMac, false, ""},
		{"BREW", core.PlatformMac, true, "Install package (Homebrew)"},
		{"br", core.PlatformMac, false, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.verb+"/"+string(tc.platform), func(t *testing.T) {
			e, ok := c.Lookup(tc.verb, tc.platform)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.desc, e.Desc)
		})
	}
}

func TestSearch(t *testing.T) {
	c := catalog.New(
		catalog.Entry{Cmd: "ls -la", Desc: "List all files", Category: "File System", Platform: core.PlatformUniversal},
		catalog.Entry{Cmd: "brew update", Desc: "Update Homebrew", Category: "Package Management", Platform: core.PlatformMac},
		catalog.Entry{Cmd: "apt update", Desc: "Refresh package index", Category: "Package Management", Platform: core.PlatformLinux},
	)

	t.Run("category", func(t *testing.T) {
		got := c.Search(catalog.Query{Category: "package management"})
		assert.Len(t, got, 2)
	})

	t.Run("text overrides category", func(t *testing.T) {
		got := c.Search(catalog.Query{Text: "UPDATE", Category: "File System"})
		assert.Len(t, got, 2)
	})

	t.Run("platform includes universal", func(t *testing.T) {
		got := c.Search(catalog.Query{Platform: core.PlatformLinux})
		require.Len(t, got, 2)
		assert.Equal(t, "ls -la", got[0].Cmd)
		assert.Equal(t, "apt update", got[1].Cmd)
	})

	t.Run("categories in display order", func(t *testing.T) {
		cats := catalog.CategoriesFor(c.Entries())
		assert.Equal(t, []string{"File System", "Package Management"}, cats)
	})
}

func TestLoadRejectsBadData(t *testing.T) {
	_, err := catalog.Load(strings.NewReader("entries:\n  - cmd: ''\n    platform: Mac\n"))
	assert.Error(t, err)

	_, err = catalog.Load(strings.NewReader("entries:\n  - cmd: ls\n    platform: BeOS\n"))
	assert.Error(t, err)

	c, err := catalog.Load(strings.NewReader("entries:\n  - cmd: ls\n    desc: list\n    category: File System\n    platform: Universal\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLoadNormalizesPlatformNames(t *testing.T) {
	c, err := catalog.Load(strings.NewReader("entries:\n  - cmd: pbcopy\n    desc: copy\n    category: Essential\n    platform: macos\n"))
	require.NoError(t, err)

	e, ok := c.Lookup("pbcopy", core.PlatformMac)
	require.True(t, ok)
	assert.Equal(t, core.PlatformMac, e.Platform)
}
