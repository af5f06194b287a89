package resolve

import (
	"io"
	"log/slog"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/greenroute/hopper/core"
	"github.com/greenroute/hopper/itdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRanges(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRangesAWS(t *testing.T) {
	path := writeRanges(t, "ip-ranges.aws.json", `{
	  "prefixes": [
	    {"ip_prefix": "3.5.140.0/22", "region": "ap-northeast-2", "service": "AMAZON"},
	    {"ip_prefix": "52.94.76.0/22", "region": "us-west-2", "service": "AMAZON"}
	  ]
	}`)

	ranges, err := LoadRanges(ProviderAWS, path, "")
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, RegionKey{Provider: "aws", Region: "ap-northeast-2"}, ranges[0].Key)

	ranges, err = LoadRanges(ProviderAWS, path, "us-west-2")
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, netip.MustParsePrefix("52.94.76.0/22"), ranges[0].Prefix)
}

func TestLoadRangesGCloud(t *testing.T) {
	path := writeRanges(t, "ip-ranges.gcloud.json", `{
	  "prefixes": [
	    {"ipv4Prefix": "8.34.208.0/20", "service": "Google Cloud", "scope": "us-central1"},
	    {"ipv6Prefix": "2600:1900::/35", "service": "Google Cloud", "scope": "us-central1"}
	  ]
	}`)

	ranges, err := LoadRanges(ProviderGCloud, path, "")
	require.NoError(t, err)
	// the IPv6 entry is skipped
	require.Len(t, ranges, 1)
	assert.Equal(t, RegionKey{Provider: "gcloud", Region: "us-central1"}, ranges[0].Key)
}

func TestLoadRangesUnsupportedProvider(t *testing.T) {
	path := writeRanges(t, "x.json", `{"prefixes": [{"ip_prefix": "1.0.0.0/8", "region": "r"}]}`)
	_, err := LoadRanges("azure", path, "")
	assert.Error(t, err)
}

func TestTableLookup(t *testing.T) {
	tbl := NewTable([]Range{
		{Prefix: netip.MustParsePrefix("10.0.0.0/8"), Key: RegionKey{"aws", "wide"}},
		{Prefix: netip.MustParsePrefix("10.1.0.0/16"), Key: RegionKey{"aws", "narrow"}},
	})
	assert.Equal(t, 2, tbl.Size())

	mustAddr := func(s string) uint32 {
		n, err := core.ParseAddr(s)
		require.NoError(t, err)
		return n
	}

	r, ok := tbl.Lookup(mustAddr("10.1.2.3"))
	require.True(t, ok)
	assert.Equal(t, "narrow", r.Key.Region, "longest prefix must win")

	r, ok = tbl.Lookup(mustAddr("10.9.2.3"))
	require.True(t, ok)
	assert.Equal(t, "wide", r.Key.Region)

	_, ok = tbl.Lookup(mustAddr("192.168.1.1"))
	assert.False(t, ok)
}

func TestMatchNodes(t *testing.T) {
	usWest := RegionKey{Provider: "aws", Region: "us-west-1"}
	usEast := RegionKey{Provider: "aws", Region: "us-east-1"}
	tbl := NewTable([]Range{
		{Prefix: netip.MustParsePrefix("10.1.0.0/16"), Key: usWest},
		{Prefix: netip.MustParsePrefix("10.2.0.0/16"), Key: usEast},
	})
	nodes := itdk.Nodes{
		"N1": {0x0a010001, 0x0a020001}, // 10.1.0.1, 10.2.0.1
		"N2": {0x0a010002},             // 10.1.0.2
		"N3": {0xc0a80001},             // 192.168.0.1, no match
	}

	matches := tbl.MatchNodes(slog.New(slog.NewTextHandler(io.Discard, nil)), nodes)

	assert.Equal(t, []RegionKey{usEast, usWest}, matches.Keys())
	assert.ElementsMatch(t, []uint32{0x0a010001, 0x0a010002}, matches.Addrs(usWest))
	assert.ElementsMatch(t, []uint32{0x0a020001}, matches.Addrs(usEast))
}
