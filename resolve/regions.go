// Package resolve maps interface addresses onto cloud provider regions
// using the providers' published IP range files, so that a query batch
// can be expressed as "every known router interface inside region X".
package resolve

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/gaissmai/bart"
	"github.com/greenroute/hopper/itdk"
)

// Providers whose published range files we can read.
const (
	ProviderAWS    = "aws"
	ProviderGCloud = "gcloud"
)

// RegionKey identifies one cloud region of one provider.
type RegionKey struct {
	Provider string
	Region   string
}

func (k RegionKey) String() string {
	return k.Provider + ":" + k.Region
}

// Range is one published prefix and the region it belongs to.
type Range struct {
	Prefix netip.Prefix
	Key    RegionKey
}

// rangeFile covers both the AWS ip-ranges.json and the gcloud
// cloud.json layouts; the provider decides which fields apply.
type rangeFile struct {
	Prefixes []struct {
		IPPrefix   string `json:"ip_prefix"`   // aws
		Region     string `json:"region"`      // aws
		IPv4Prefix string `json:"ipv4Prefix"`  // gcloud
		Scope      string `json:"scope"`       // gcloud
	} `json:"prefixes"`
}

// LoadRanges reads a provider range file. If region is non-empty only
// that region's prefixes are returned. GCloud entries without an
// ipv4Prefix (IPv6 ranges) are skipped.
func LoadRanges(provider, path, region string) ([]Range, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s ranges: %w", provider, err)
	}
	var file rangeFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s ranges: %w", provider, err)
	}

	var ranges []Range
	for _, p := range file.Prefixes {
		var cidr, reg string
		switch provider {
		case ProviderAWS:
			cidr, reg = p.IPPrefix, p.Region
		case ProviderGCloud:
			cidr, reg = p.IPv4Prefix, p.Scope
		default:
			return nil, fmt.Errorf("unsupported provider %q", provider)
		}
		if cidr == "" {
			continue
		}
		if region != "" && reg != region {
			continue
		}
		pfx, err := netip.ParsePrefix(cidr)
		if err != nil {
			return nil, fmt.Errorf("parse %s prefix %q: %w", provider, cidr, err)
		}
		ranges = append(ranges, Range{Prefix: pfx, Key: RegionKey{Provider: provider, Region: reg}})
	}
	return ranges, nil
}

// Table answers longest-prefix-match region lookups for interface
// addresses. It is immutable after New and safe for concurrent reads.
type Table struct {
	tbl  bart.Table[Range]
	size int
}

func NewTable(ranges []Range) *Table {
	t := &Table{}
	for _, r := range ranges {
		t.tbl.Insert(r.Prefix, r)
		t.size++
	}
	return t
}

func (t *Table) Size() int {
	return t.size
}

// Lookup returns the most specific range covering addr.
func (t *Table) Lookup(addr uint32) (Range, bool) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], addr)
	return t.tbl.Lookup(netip.AddrFrom4(b))
}

// NodeMatch records that an interface of an ITDK node fell inside a
// published region prefix.
type NodeMatch struct {
	Node   string
	Addr   uint32
	Prefix netip.Prefix
}

// Matches groups matched interfaces by region.
type Matches map[RegionKey][]NodeMatch

// Addrs returns the matched interface addresses of one region.
func (m Matches) Addrs(key RegionKey) []uint32 {
	matches := m[key]
	addrs := make([]uint32, len(matches))
	for i, match := range matches {
		addrs[i] = match.Addr
	}
	return addrs
}

// Keys returns the matched regions in stable order.
func (m Matches) Keys() []RegionKey {
	keys := make([]RegionKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b RegionKey) int {
		if a.Provider != b.Provider {
			if a.Provider < b.Provider {
				return -1
			}
			return 1
		}
		if a.Region != b.Region {
			if a.Region < b.Region {
				return -1
			}
			return 1
		}
		return 0
	})
	return keys
}

// MatchNodes scans every known interface of every node against the
// table and groups the hits by region.
func (t *Table) MatchNodes(log *slog.Logger, nodes itdk.Nodes) Matches {
	matches := make(Matches)
	var ifaceCount, hitCount int64
	for id, addrs := range nodes {
		for _, addr := range addrs {
			ifaceCount++
			r, ok := t.Lookup(addr)
			if !ok {
				continue
			}
			hitCount++
			matches[r.Key] = append(matches[r.Key], NodeMatch{Node: id, Addr: addr, Prefix: r.Prefix})
		}
	}
	log.Info("matched ITDK interfaces against cloud ranges",
		"interfaces", humanize.Comma(ifaceCount),
		"matched", humanize.Comma(hitCount),
		"regions", len(matches))
	return matches
}
